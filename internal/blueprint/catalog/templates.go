package catalog

import (
	"strings"

	"blueprint/internal/blueprint/models"
)

// ============================================================
// Template catalog
// ============================================================

const placeholderHost = "https://placehold.co"

func color(c string) *string { return &c }

func text(x, y, w, h float64, content string, style models.Style) models.ElementDraft {
	return models.ElementDraft{
		Type:     models.TypeText,
		Position: models.Position{X: x, Y: y},
		Size:     models.Size{Width: w, Height: h},
		Content:  content,
		Style:    style,
	}
}

func shape(x, y, w, h float64, style models.Style) models.ElementDraft {
	return models.ElementDraft{
		Type:     models.TypeShape,
		Position: models.Position{X: x, Y: y},
		Size:     models.Size{Width: w, Height: h},
		Style:    style,
	}
}

// Templates возвращает свежую копию встроенных шаблонов.
func Templates() []models.LayoutDraft {
	return []models.LayoutDraft{
		{
			Description:           "Simple Title and Subtitle",
			CanvasBackgroundColor: color("#FFFFFF"),
			Elements: []models.ElementDraft{
				text(50, 100, 900, 100, "Main Title", models.Style{"fontSize": "72px", "fontWeight": "bold", "textAlign": "center", "fontFamily": "Space Grotesk, sans-serif"}),
				text(100, 220, 800, 50, "A catchy subtitle goes here.", models.Style{"fontSize": "24px", "textAlign": "center", "fontFamily": "Inter, sans-serif"}),
			},
		},
		{
			Description:           "Image with a Caption",
			CanvasBackgroundColor: color("#F0F0F0"),
			Elements: []models.ElementDraft{
				{
					Type:     models.TypeImage,
					Position: models.Position{X: 100, Y: 100},
					Size:     models.Size{Width: 800, Height: 600},
					Source:   "https://placehold.co/800x600.png",
					Content:  "placeholder image",
					Style:    models.Style{},
				},
				text(100, 720, 800, 50, "Image Caption Text", models.Style{"fontSize": "18px", "textAlign": "center", "fontFamily": "Inter, sans-serif"}),
			},
		},
		{
			Description:           "Basic Three Column Layout",
			CanvasBackgroundColor: color("#E6E6FA"),
			Elements: []models.ElementDraft{
				text(50, 50, 900, 50, "Three Column Section", models.Style{"fontSize": "36px", "fontWeight": "bold", "textAlign": "center", "fontFamily": "Space Grotesk, sans-serif"}),
				shape(50, 150, 280, 700, models.Style{"backgroundColor": "#D3D3D3", "borderRadius": "8px"}),
				text(60, 160, 260, 50, "Column 1", models.Style{"fontSize": "20px", "textAlign": "center"}),
				shape(360, 150, 280, 700, models.Style{"backgroundColor": "#C0C0C0", "borderRadius": "8px"}),
				text(370, 160, 260, 50, "Column 2", models.Style{"fontSize": "20px", "textAlign": "center"}),
				shape(670, 150, 280, 700, models.Style{"backgroundColor": "#A9A9A9", "borderRadius": "8px"}),
				text(680, 160, 260, 50, "Column 3", models.Style{"fontSize": "20px", "textAlign": "center"}),
			},
		},
	}
}

// Template возвращает шаблон по индексу, подготовленный к загрузке:
// изображения-плейсхолдеры получают подсказку для подбора картинки.
func Template(index int) (models.LayoutDraft, bool) {
	all := Templates()
	if index < 0 || index >= len(all) {
		return models.LayoutDraft{}, false
	}
	draft := all[index]
	for i, el := range draft.Elements {
		if el.Type == models.TypeImage && strings.HasPrefix(el.Source, placeholderHost) {
			draft.Elements[i].Style = el.Style.With(models.StyleAIHint, "illustration")
		}
	}
	return draft, true
}
