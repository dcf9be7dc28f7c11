package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"blueprint/internal/blueprint/export"

	"github.com/spf13/cobra"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export <layout.json>",
	Short: "Assigns identifiers and writes the design as a downloadable JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, layout, err := loadLayout(args[0])
		if err != nil {
			return err
		}

		name, data, notice, err := export.Download(layout)
		if err != nil {
			return fmt.Errorf("%s: %w", notice.Title, err)
		}

		path := filepath.Join(exportDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", okText("exported"), path, dimText(notice.Description))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", ".", "Directory to write the exported file to")
	AddCommand(exportCmd)
}
