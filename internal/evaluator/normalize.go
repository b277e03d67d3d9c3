package evaluator

import (
	"regexp"
	"strings"
)

var symbolReplacer = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"^", "**",
	"π", "pi",
)

var (
	// A number, a percent sign and optional blanks. Only rewritten as a
	// percent-of chain when an operand follows, which RE2 cannot express as
	// lookahead, so rewritePercentOf checks the next byte itself.
	percentOfPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)[ \t]*%[ \t]*`)
	percentPattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
)

// Normalize rewrites display notation into the canonical operator syntax
// accepted by the parser:
//
//	×  ÷  ^   π     →  *  /  **  pi
//	50%2            →  (50/100)*2
//	50%             →  (50/100)
//
// Everything else, whitespace included, passes through unchanged.
func Normalize(expression string) string {
	s := symbolReplacer.Replace(expression)
	s = rewritePercentOf(s)
	return percentPattern.ReplaceAllString(s, "($1/100)")
}

func rewritePercentOf(s string) string {
	matches := percentOfPattern.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		end := m[1]
		if end >= len(s) || !(isDigit(s[end]) || s[end] == '(') {
			continue
		}
		b.WriteString(s[last:m[0]])
		b.WriteString("(")
		b.WriteString(s[m[2]:m[3]])
		b.WriteString("/100)*")
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
