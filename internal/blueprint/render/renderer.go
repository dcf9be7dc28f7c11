package render

import (
	"fmt"
	"html"
	"math"
	"sort"
	"strings"

	"blueprint/internal/blueprint/geometry"
	"blueprint/internal/blueprint/models"
)

// ============================================================
// Render description
// ============================================================

// PlaceholderSentinel: адрес-заглушка, который генераторы подставляют
// вместо настоящего изображения.
const PlaceholderSentinel = "https://example.com/image.jpg"

const emptyCanvasMessage = "No design loaded. Use the AI tool or templates to start."

// ElementBox: готовое к отрисовке описание одного элемента.
type ElementBox struct {
	ElementID string            `json:"elementId"`
	Type      string            `json:"type"`
	Box       geometry.Box      `json:"box"`
	Style     map[string]string `json:"style"`
	Selected  bool              `json:"selected"`
	ZIndex    int               `json:"zIndex"`
	Rotation  float64           `json:"rotation,omitempty"`

	Text string `json:"text,omitempty"`

	ImageSrc    string  `json:"imageSrc,omitempty"`
	ImageAlt    string  `json:"imageAlt,omitempty"`
	ImageWidth  float64 `json:"imageWidth,omitempty"`
	ImageHeight float64 `json:"imageHeight,omitempty"`
	Unoptimized bool    `json:"unoptimized,omitempty"`
	AIHint      string  `json:"aiHint,omitempty"`

	Fallback bool `json:"fallback,omitempty"`

	order int
	decl  *Declarations
}

// Frame: отрисованное полотно: размер, фон и элементы в порядке
// документа. Порядок наложения определяет PaintOrder.
type Frame struct {
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Scale      float64      `json:"scale"`
	Background string       `json:"background"`
	Empty      bool         `json:"empty"`
	Elements   []ElementBox `json:"elements"`
}

// ============================================================
// Renderer
// ============================================================

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render строит кадр полотна. layout == nil даёт пустое полотно с
// подсказкой. Документ не изменяется.
func (r *Renderer) Render(layout *models.DesignLayout, selectedID string, t *geometry.Transform) *Frame {
	size := t.CanvasSize()
	frame := &Frame{
		Width:      size.Width,
		Height:     size.Height,
		Scale:      t.Scale(),
		Background: models.DefaultCanvasBackground,
		Empty:      layout == nil,
	}
	if layout == nil {
		return frame
	}
	if layout.CanvasBackgroundColor != "" {
		frame.Background = layout.CanvasBackgroundColor
	}

	frame.Elements = make([]ElementBox, 0, len(layout.Elements))
	for i, el := range layout.Elements {
		box := r.renderElement(el, t, selectedID != "" && el.ID == selectedID)
		box.order = i
		frame.Elements = append(frame.Elements, box)
	}
	return frame
}

func (r *Renderer) renderElement(el models.DesignElement, t *geometry.Transform, selected bool) ElementBox {
	scale := t.Scale()
	decl := ResolveStyle(el, scale, selected)
	controlled := Controlled(el.Style)

	box := ElementBox{
		ElementID: el.ID,
		Type:      el.Type,
		Box:       t.BoxFor(el.Position, el.Size),
		Selected:  selected,
		Rotation:  controlled.Rotation,
		decl:      decl,
	}
	if controlled.ZIndex != nil {
		box.ZIndex = *controlled.ZIndex
	}

	switch el.Type {
	case models.TypeText:
		box.Text = el.Content
	case models.TypeImage:
		box.ImageSrc = ImageSource(el)
		box.ImageAlt = el.Content
		if box.ImageAlt == "" {
			box.ImageAlt = "Design image"
		}
		box.ImageWidth = math.Max(1, el.Size.Width*scale)
		box.ImageHeight = math.Max(1, el.Size.Height*scale)
		box.Unoptimized = strings.HasPrefix(el.Source, "data:")
		box.AIHint = "graphic design"
		if hint, ok := el.Style.String(models.StyleAIHint); ok {
			box.AIHint = hint
		}
	case models.TypeShape:
	default:
		box.Fallback = true
		decl.Set("border", fallbackBorder)
	}

	box.Style = decl.Map()
	return box
}

// ImageSource возвращает адрес изображения. Отсутствующий источник или
// заглушка заменяются сгенерированным плейсхолдером по размеру элемента.
func ImageSource(el models.DesignElement) string {
	if el.Source != "" && el.Source != PlaceholderSentinel {
		return el.Source
	}
	return fmt.Sprintf("https://placehold.co/%dx%d.png",
		int(math.Round(el.Size.Width)), int(math.Round(el.Size.Height)))
}

// ============================================================
// Paint order & hit testing
// ============================================================

// PaintOrder возвращает элементы снизу вверх: по z-index, при равенстве
// по порядку документа.
func (f *Frame) PaintOrder() []ElementBox {
	out := append([]ElementBox(nil), f.Elements...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ZIndex != out[j].ZIndex {
			return out[i].ZIndex < out[j].ZIndex
		}
		return out[i].order < out[j].order
	})
	return out
}

// HitTest определяет цель клика в пикселях полотна. Клик по элементу
// никогда не уходит фону: побеждает самый верхний элемент под точкой.
func (f *Frame) HitTest(x, y float64) (string, bool) {
	if f.Empty {
		return "", false
	}
	painted := f.PaintOrder()
	for i := len(painted) - 1; i >= 0; i-- {
		el := painted[i]
		if el.Box.Contains(x, y, el.Rotation) {
			return el.ElementID, true
		}
	}
	return "", false
}

// ============================================================
// HTML output
// ============================================================

// HTML собирает разметку полотна с абсолютным позиционированием элементов.
func (f *Frame) HTML() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf(`<div class="blueprint-canvas" data-scale="%s" style="width: %s; height: %s; position: relative; background-color: %s; box-shadow: 0 4px 6px -1px rgba(0,0,0,0.1), 0 2px 4px -1px rgba(0,0,0,0.06);">`,
		models.FormatFloat(f.Scale), px(f.Width), px(f.Height), html.EscapeString(f.Background)))
	b.WriteString("\n")

	if f.Empty {
		b.WriteString(`  <div class="blueprint-empty"><p>`)
		b.WriteString(emptyCanvasMessage)
		b.WriteString("</p></div>\n")
	}

	for _, el := range f.Elements {
		b.WriteString("  ")
		b.WriteString(el.html())
		b.WriteString("\n")
	}

	b.WriteString("</div>")
	return b.String()
}

func (el ElementBox) html() string {
	style := ""
	if el.decl != nil {
		style = el.decl.CSS()
	}
	open := fmt.Sprintf(`<div data-element-id="%s" data-type="%s" style="%s"`,
		html.EscapeString(el.ElementID), html.EscapeString(el.Type), html.EscapeString(style))

	switch {
	case el.Fallback:
		return open + `><span class="text-xs">Unknown type: ` + html.EscapeString(el.Type) + `</span></div>`
	case el.Type == models.TypeText:
		return open + ` class="flex items-center justify-center p-1 overflow-hidden"><span style="white-space: pre-wrap; word-break: break-word;">` +
			html.EscapeString(el.Text) + `</span></div>`
	case el.Type == models.TypeImage:
		img := fmt.Sprintf(`<img src="%s" alt="%s" width="%s" height="%s" style="object-fit: cover; width: 100%%; height: 100%%;" data-ai-hint="%s"`,
			html.EscapeString(el.ImageSrc), html.EscapeString(el.ImageAlt),
			models.FormatFloat(round(el.ImageWidth)), models.FormatFloat(round(el.ImageHeight)), html.EscapeString(el.AIHint))
		if el.Unoptimized {
			img += ` data-unoptimized="true"`
		}
		return open + ` class="overflow-hidden">` + img + ` /></div>`
	default:
		return open + `></div>`
	}
}
