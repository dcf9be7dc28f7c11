package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <layout.json...>",
	Short: "Checks that layout files can be loaded into the editor",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			_, layout, err := loadLayout(path)
			if err != nil {
				failed++
				fmt.Fprintf(out, "%s %v\n", failText("FAIL"), err)
				continue
			}
			fmt.Fprintf(out, "%s %s (%d elements)\n", okText("OK  "), path, len(layout.Elements))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed validation", failed, len(args))
		}
		return nil
	},
}

func init() {
	AddCommand(validateCmd)
}
