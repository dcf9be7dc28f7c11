package catalog

import (
	"errors"
	"fmt"

	"blueprint/internal/blueprint/models"
)

var (
	ErrUnknownElement = errors.New("unknown element kind")
	ErrComingSoon     = errors.New("coming soon")
)

// ============================================================
// Element library
// ============================================================

// Новые элементы появляются около центра полотна 1000x1000.
var defaultPosition = models.Position{X: 450, Y: 450}

// Entry: элемент библиотеки и сообщение после добавления.
type Entry struct {
	Name   string
	Draft  models.ElementDraft
	Notice models.Notice
}

// Element возвращает черновик элемента библиотеки по виду.
func Element(kind string) (Entry, error) {
	switch kind {
	case models.TypeText:
		return Entry{
			Name: "Text",
			Draft: models.ElementDraft{
				Type:     models.TypeText,
				Position: defaultPosition,
				Size:     models.Size{Width: 150, Height: 50},
				Content:  "New Text",
				Style:    models.Style{"fontFamily": "Inter, sans-serif", "fontSize": "24px", "color": "#333333", "textAlign": "center"},
			},
			Notice: models.Info("Text Element Added", "A new text element has been added to the canvas."),
		}, nil
	case models.TypeShape:
		return Entry{
			Name: "Shape",
			Draft: models.ElementDraft{
				Type:     models.TypeShape,
				Position: defaultPosition,
				Size:     models.Size{Width: 100, Height: 100},
				Style:    models.Style{"backgroundColor": "#cccccc", "borderRadius": "0px", "opacity": 1.0},
			},
			Notice: models.Info("Shape Element Added", "A new shape element has been added to the canvas."),
		}, nil
	case models.TypeImage:
		return Entry{
			Name: "Image",
			Draft: models.ElementDraft{
				Type:     models.TypeImage,
				Position: defaultPosition,
				Size:     models.Size{Width: 200, Height: 150},
				Source:   "https://placehold.co/200x150.png",
				Content:  "Placeholder image",
				Style:    models.Style{},
			},
			Notice: models.Info("Image Placeholder Added", "A placeholder image has been added. Update its source in the properties panel."),
		}, nil
	case "icon":
		return Entry{}, fmt.Errorf("%w: icon library is not yet implemented", ErrComingSoon)
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrUnknownElement, kind)
}
