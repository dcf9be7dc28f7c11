package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"blueprint/internal/blueprint/models"
	"blueprint/internal/blueprint/store"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "blueprintctl",
	Short: "Offline tools for Blueprint design documents",
	Long: `blueprintctl validates, renders and exports Blueprint design layouts
without running the editor service.`,
	SilenceUsage: true,
}

var (
	okText   = color.New(color.FgGreen).SprintFunc()
	failText = color.New(color.FgRed).SprintFunc()
	dimText  = color.New(color.Faint).SprintFunc()
)

// Execute запускает корневую команду.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// AddCommand регистрирует подкоманду из другого файла пакета.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// loadLayout читает черновик макета из файла и допускает его в новое
// хранилище. Идентификаторы из файла не сохраняются.
func loadLayout(path string) (*store.Store, *models.DesignLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var draft models.LayoutDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, nil, fmt.Errorf("%s: invalid json: %w", path, err)
	}

	s := store.New(nil)
	layout, err := s.Load(draft)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, layout, nil
}
