package cli

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"integer collapse", []string{"eval", "2^10"}, "1024\n"},
		{"joined args", []string{"eval", "3", "×", "4"}, "12\n"},
		{"percent of", []string{"eval", "50%2"}, "1\n"},
		{"degrees", []string{"eval", "--deg", "sin(90)"}, "1\n"},
		{"leading minus", []string{"eval", "--", "-5+10"}, "5\n"},
		{"fraction", []string{"eval", "7/2"}, "3.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, "", tt.args...)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1/0", "division by zero is not allowed"},
		{"foo(1)", `use of "foo" not allowed`},
		{"2+*3", "invalid expression"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			out, err := run(t, "", "eval", tt.expr)
			if err == nil {
				t.Fatalf("expected error, got output %q", out)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %q", tt.want, err)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"convert", "weight", "1", "kg", "g"}, "1000\n"},
		{[]string{"convert", "length", "1", "ft", "in"}, "12\n"},
		{[]string{"convert", "temperature", "100", "C", "F"}, "212\n"},
		{[]string{"convert", "temperature", "0", "C", "K"}, "273.15\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args[1:], " "), func(t *testing.T) {
			got, err := run(t, "", tt.args...)
			if err != nil {
				t.Fatalf("convert: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestConvertInvalid(t *testing.T) {
	if _, err := run(t, "", "convert", "weight", "abc", "kg", "g"); err == nil || !strings.Contains(err.Error(), "invalid input") {
		t.Fatalf("expected invalid input error, got %v", err)
	}
	if _, err := run(t, "", "convert", "volume", "1", "l", "ml"); err == nil {
		t.Fatal("expected unknown category error")
	}
	if out, err := run(t, "", "convert", "weight", "1e308", "kg", "g"); err == nil || !strings.Contains(err.Error(), "out of range") || strings.Contains(out, "Inf") {
		t.Fatalf("expected out of range error, got %v with output %q", err, out)
	}
	if _, err := run(t, "", "convert", "weight", "1"); err == nil {
		t.Fatal("expected argument count error")
	}
}

func TestUnits(t *testing.T) {
	out, err := run(t, "", "units", "length")
	if err != nil {
		t.Fatalf("units: %v", err)
	}
	for _, sym := range []string{"m", "cm", "mm", "km", "in", "ft"} {
		if !strings.Contains(out, " "+sym+" ") {
			t.Fatalf("expected unit %q in output:\n%s", sym, out)
		}
	}
	if strings.Contains(out, "weight") {
		t.Fatalf("expected only length units, got:\n%s", out)
	}

	all, err := run(t, "", "units")
	if err != nil {
		t.Fatalf("units: %v", err)
	}
	for _, category := range []string{"weight", "length", "temperature"} {
		if !strings.Contains(all, category) {
			t.Fatalf("expected category %q in output:\n%s", category, all)
		}
	}
}

func TestRepl(t *testing.T) {
	input := strings.Join([]string{
		"1+1",
		":deg",
		"sin(90)",
		"1/0",
		":history",
		"!1",
		":clear",
		":history",
		"quit",
		"2+2",
	}, "\n")

	out, err := run(t, input, "repl")
	if err != nil {
		t.Fatalf("repl: %v", err)
	}

	for _, want := range []string{
		"[rad]> 2\n",
		"[deg]> 1\n",
		"Error: division by zero is not allowed",
		"  0  sin(90) = 1\n",
		"  1  1+1 = 2\n",
		"1+1\n2\n",
		"cleared 3 entries",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "4\n") {
		t.Fatalf("expected input after quit to be ignored:\n%s", out)
	}
}

func TestReplBadRecall(t *testing.T) {
	out, err := run(t, "!x\n!5\n", "repl")
	if err != nil {
		t.Fatalf("repl: %v", err)
	}
	if !strings.Contains(out, `Error: "x" is not a history index`) {
		t.Fatalf("expected bad index error:\n%s", out)
	}
	if strings.Count(out, "Error:") != 2 {
		t.Fatalf("expected two errors:\n%s", out)
	}
}
