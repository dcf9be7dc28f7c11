package commands

import (
	"encoding/json"
	"fmt"

	"blueprint/internal/blueprint/catalog"

	"github.com/spf13/cobra"
)

var templatesDump int

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Lists the built-in templates or dumps one as a layout draft",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if templatesDump >= 0 {
			draft, ok := catalog.Template(templatesDump)
			if !ok {
				return fmt.Errorf("no template at index %d", templatesDump)
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(draft)
		}

		for i, t := range catalog.Templates() {
			fmt.Fprintf(out, "%d  %s %s\n", i, t.Description, dimText(fmt.Sprintf("(%d elements)", len(t.Elements))))
		}
		return nil
	},
}

func init() {
	templatesCmd.Flags().IntVar(&templatesDump, "dump", -1, "Print the template at this index as JSON")
	AddCommand(templatesCmd)
}
