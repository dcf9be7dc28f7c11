package commands

import (
	"encoding/json"
	"fmt"

	"blueprint/internal/blueprint/geometry"
	"blueprint/internal/blueprint/render"

	"github.com/spf13/cobra"
)

var (
	renderWidth    float64
	renderSelected int
	renderJSON     bool
)

var renderCmd = &cobra.Command{
	Use:   "render <layout.json>",
	Short: "Renders a layout to HTML at the given container width",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, layout, err := loadLayout(args[0])
		if err != nil {
			return err
		}

		if renderSelected >= 0 {
			if renderSelected >= len(layout.Elements) {
				return fmt.Errorf("--selected %d: layout has %d elements", renderSelected, len(layout.Elements))
			}
			s.Select(layout.Elements[renderSelected].ID)
		}

		t := geometry.NewTransform()
		t.Resize(renderWidth)
		current, selectedID := s.Snapshot()
		frame := render.NewRenderer().Render(current, selectedID, t)

		out := cmd.OutOrStdout()
		if renderJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(frame)
		}
		_, err = fmt.Fprintln(out, frame.HTML())
		return err
	},
}

func init() {
	renderCmd.Flags().Float64VarP(&renderWidth, "width", "w", 1000, "Container width in pixels")
	renderCmd.Flags().IntVar(&renderSelected, "selected", -1, "Index of the element to render as selected")
	renderCmd.Flags().BoolVar(&renderJSON, "json", false, "Print the render frame as JSON instead of HTML")
	AddCommand(renderCmd)
}
