package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the layout of a newly generated board as YAML",
	Long: `Print the layout of a newly generated board as YAML.

The output can be passed back with --layout to replay the same board.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		board, err := config.CreateBoard()
		if err != nil {
			return err
		}

		out, err := board.Layout().Serialize()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}
