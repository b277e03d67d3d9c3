// Package cli is the terminal front end of the calculator.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"scicalc/internal/convert"
	"scicalc/internal/evaluator"
	"scicalc/internal/observability"
)

// NewRootCommand builds the calc command tree.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "calc",
		Short: "Scientific calculator and unit converter",
		Long: `Evaluate calculator expressions and convert between units.

Expressions accept + - × ÷ * / ^ ** % // parentheses, π, and functions
such as sin, cos, tan, asin, sqrt, ln, log, fact and gamma. "50%2" means
50 percent of 2; a trailing "50%" is 0.5. Expressions starting with a
minus sign go after "--", e.g. calc eval -- -5+10.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				return nil
			}
			return observability.InitLogger(zapcore.DebugLevel)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.SyncLogger()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every evaluation to stderr as JSON")

	root.AddCommand(
		newEvalCmd(),
		newConvertCmd(convert.Default()),
		newUnitsCmd(convert.Default()),
		newReplCmd(),
	)
	return root
}

func angleModeFlag(deg bool) evaluator.AngleMode {
	if deg {
		return evaluator.Degrees
	}
	return evaluator.Radians
}

// describeError turns an evaluator failure into the message shown to the user.
func describeError(err error) error {
	if errors.Is(err, evaluator.ErrDivisionByZero) {
		return errors.New("division by zero is not allowed")
	}
	return fmt.Errorf("invalid expression: %w", err)
}

func logEvaluation(expression string, mode evaluator.AngleMode, result evaluator.Result, err error) {
	if err != nil {
		observability.Logger.Debug("evaluation failed",
			zap.String("expression", expression),
			zap.Stringer("angle_mode", mode),
			zap.Stringer("kind", evaluator.KindOf(err)),
			zap.Error(err),
		)
		return
	}
	observability.Logger.Debug("expression evaluated",
		zap.String("expression", expression),
		zap.Stringer("angle_mode", mode),
		zap.Float64("result", result.Value),
	)
}
