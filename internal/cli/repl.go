package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scicalc/internal/evaluator"
	"scicalc/internal/history"
)

const replHelp = `Type an expression and press enter.
  :deg / :rad   switch angle mode
  :history      list previous calculations, newest first
  :clear        clear the history
  !N            re-run history entry N
  quit          leave`

func newReplCmd() *cobra.Command {
	var (
		deg   bool
		limit int
	)

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive calculator with history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &session{
				out:     cmd.OutOrStdout(),
				mode:    angleModeFlag(deg),
				history: history.NewStore(limit),
			}
			return s.run(cmd.InOrStdin())
		},
	}
	cmd.Flags().BoolVarP(&deg, "deg", "d", false, "start in degree mode")
	cmd.Flags().IntVar(&limit, "history", history.DefaultLimit, "number of calculations to remember")
	return cmd
}

// session is one interactive run. A failed line leaves the history and the
// angle mode untouched.
type session struct {
	out     io.Writer
	mode    evaluator.AngleMode
	history *history.Store
}

func (s *session) run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	s.prompt()
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "quit" || line == "exit" {
			return nil
		}
		s.handle(line)
		s.prompt()
	}
	return sc.Err()
}

func (s *session) prompt() {
	fmt.Fprintf(s.out, "[%s]> ", s.mode)
}

func (s *session) handle(line string) {
	switch {
	case line == "":
	case line == ":help":
		fmt.Fprintln(s.out, replHelp)
	case line == ":deg":
		s.mode = evaluator.Degrees
	case line == ":rad":
		s.mode = evaluator.Radians
	case line == ":history":
		for i, e := range s.history.Entries() {
			fmt.Fprintf(s.out, "%3d  %s\n", i, e)
		}
	case line == ":clear":
		fmt.Fprintf(s.out, "cleared %d entries\n", s.history.Clear())
	case strings.HasPrefix(line, "!"):
		n, err := strconv.Atoi(line[1:])
		if err != nil {
			fmt.Fprintf(s.out, "Error: %q is not a history index\n", line[1:])
			return
		}
		e, err := s.history.Get(n)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		fmt.Fprintln(s.out, e.Expression)
		s.evaluate(e.Expression)
	default:
		s.evaluate(line)
	}
}

func (s *session) evaluate(expression string) {
	result, err := evaluator.Evaluate(expression, s.mode)
	logEvaluation(expression, s.mode, result, err)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", describeError(err))
		return
	}
	s.history.Add(expression, result, s.mode)
	fmt.Fprintln(s.out, result)
}
