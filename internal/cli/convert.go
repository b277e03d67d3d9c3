package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"scicalc/internal/convert"
)

func newConvertCmd(reg *convert.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "convert CATEGORY VALUE FROM TO",
		Short: "Convert a value between units of one category",
		Example: `  calc convert weight 5 lb kg
  calc convert temperature 100 C F`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, from, to := args[0], args[2], args[3]

			value, err := convert.ParseValue(args[1])
			if err != nil {
				return err
			}
			result, err := reg.Convert(category, value, from, to)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), convert.Format(result))
			return nil
		},
	}
}

func newUnitsCmd(reg *convert.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "units [CATEGORY]",
		Short: "List conversion categories and their units",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := reg.Categories()
			if len(args) == 1 {
				categories = args
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, category := range categories {
				units, err := reg.Units(category)
				if err != nil {
					return err
				}
				for _, u := range units {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", category, u.Symbol, u.Name)
				}
			}
			return tw.Flush()
		},
	}
}
