package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scicalc/internal/evaluator"
)

func newEvalCmd() *cobra.Command {
	var deg bool

	cmd := &cobra.Command{
		Use:   "eval EXPRESSION...",
		Short: "Evaluate an expression and print the result",
		Example: `  calc eval "2^10"
  calc eval --deg "sin(30) × 2"
  calc eval -- -5 + 10`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expression := strings.Join(args, " ")
			mode := angleModeFlag(deg)

			result, err := evaluator.Evaluate(expression, mode)
			logEvaluation(expression, mode, result, err)
			if err != nil {
				return describeError(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&deg, "deg", "d", false, "interpret trigonometric angles in degrees")
	return cmd
}
