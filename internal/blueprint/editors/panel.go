package editors

import (
	"math"
	"regexp"
	"strings"

	"blueprint/internal/blueprint/models"
)

// ============================================================
// Canvas background form
// ============================================================

// PickerFallback: значение палитры, когда сохранённый цвет не в hex.
const PickerFallback = "#FFFFFF"

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// CanvasForm: состояние редактора фона. Палитра умеет только hex, поэтому
// для других форматов показывается нейтральное значение, а реальное
// остаётся в Stored.
type CanvasForm struct {
	Picker        string `json:"picker"`
	Stored        string `json:"stored"`
	Representable bool   `json:"representable"`
	Readout       string `json:"readout,omitempty"`
}

func BuildCanvasForm(stored string) CanvasForm {
	if stored == "" {
		stored = models.DefaultCanvasBackground
	}
	if hexColor.MatchString(stored) {
		return CanvasForm{Picker: stored, Stored: stored, Representable: true}
	}
	return CanvasForm{
		Picker:  PickerFallback,
		Stored:  stored,
		Readout: "Current: " + stored + ". Color picker shows best with HEX.",
	}
}

// BackgroundSetter: операция хранилища для фона полотна.
type BackgroundSetter interface {
	SetCanvasBackgroundColor(color string)
}

// SetCanvasBackground пишет цвет только по явному вводу пользователя.
func SetCanvasBackground(target BackgroundSetter, color string) error {
	color = strings.TrimSpace(color)
	if color == "" {
		return ErrInvalidValue
	}
	target.SetCanvasBackgroundColor(color)
	return nil
}

// ============================================================
// Element forms
// ============================================================

type GeometryForm struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type TextForm struct {
	Content       string     `json:"content"`
	FontSize      string     `json:"fontSize"`
	Color         string     `json:"color"`
	FontFamily    string     `json:"fontFamily"`
	FontWeight    string     `json:"fontWeight"`
	LineHeight    string     `json:"lineHeight"`
	LetterSpacing string     `json:"letterSpacing"`
	TextAlign     string     `json:"textAlign"`
	Shadow        TextShadow `json:"shadow"`
	FontWeights   []Option   `json:"fontWeights"`
	Alignments    []Option   `json:"alignments"`
}

type ShapeForm struct {
	BackgroundColor string  `json:"backgroundColor"`
	BorderColor     string  `json:"borderColor"`
	BorderWidth     float64 `json:"borderWidth"`
	BorderRadius    string  `json:"borderRadius"`
	Opacity         float64 `json:"opacity"`
	OpacityPercent  int     `json:"opacityPercent"`
}

type ImageForm struct {
	Source      string `json:"source"`
	Placeholder string `json:"placeholder"`
}

// Panel: модель правой панели свойств.
type Panel struct {
	Hint      string        `json:"hint,omitempty"`
	Canvas    *CanvasForm   `json:"canvas,omitempty"`
	Title     string        `json:"title,omitempty"`
	ElementID string        `json:"elementId,omitempty"`
	Type      string        `json:"type,omitempty"`
	Geometry  *GeometryForm `json:"geometry,omitempty"`
	Text      *TextForm     `json:"text,omitempty"`
	Shape     *ShapeForm    `json:"shape,omitempty"`
	Image     *ImageForm    `json:"image,omitempty"`
	Notice    string        `json:"notice,omitempty"`
}

// BuildPanel собирает панель: без выделения только форма фона полотна,
// иначе форма типа элемента и общая форма геометрии.
func BuildPanel(selected *models.DesignElement, background string) Panel {
	if selected == nil {
		canvas := BuildCanvasForm(background)
		return Panel{
			Hint:   "Select an element on the canvas to edit its properties.",
			Canvas: &canvas,
		}
	}

	el := *selected
	panel := Panel{
		Title:     el.Type + " Properties",
		ElementID: el.ID,
		Type:      el.Type,
		Geometry: &GeometryForm{
			X:      el.Position.X,
			Y:      el.Position.Y,
			Width:  el.Size.Width,
			Height: el.Size.Height,
		},
	}

	switch el.Type {
	case models.TypeText:
		form := buildTextForm(el)
		panel.Text = &form
	case models.TypeShape:
		form := buildShapeForm(el)
		panel.Shape = &form
	case models.TypeImage:
		panel.Image = &ImageForm{
			Source:      el.Source,
			Placeholder: "https://example.com/image.png or upload",
		}
	default:
		panel.Notice = "No specific editor for type: " + el.Type
	}
	return panel
}

func buildTextForm(el models.DesignElement) TextForm {
	form := TextForm{
		Content:       el.Content,
		Color:         styleOr(el.Style, models.StyleColor, "#000000"),
		FontFamily:    styleOr(el.Style, models.StyleFontFamily, "Inter"),
		FontWeight:    styleOr(el.Style, models.StyleFontWeight, "400"),
		LineHeight:    styleOr(el.Style, models.StyleLineHeight, ""),
		LetterSpacing: styleOr(el.Style, models.StyleLetterSpacing, ""),
		TextAlign:     styleOr(el.Style, models.StyleTextAlign, "left"),
		FontWeights:   FontWeights,
		Alignments:    TextAlignments,
	}
	if size, ok := el.Style.Number(models.StyleFontSize); ok {
		form.FontSize = models.FormatFloat(size)
	}
	raw, _ := el.Style.String(models.StyleTextShadow)
	form.Shadow = ParseTextShadow(raw)
	return form
}

func buildShapeForm(el models.DesignElement) ShapeForm {
	form := ShapeForm{
		BackgroundColor: styleOr(el.Style, models.StyleBackgroundColor, "#cccccc"),
		BorderColor:     styleOr(el.Style, models.StyleBorderColor, "#333333"),
		BorderRadius:    styleOr(el.Style, models.StyleBorderRadius, "0px"),
		Opacity:         1,
	}
	if w, ok := el.Style.Number(models.StyleBorderWidth); ok {
		form.BorderWidth = w
	}
	// прозрачность учитывается, только если это число
	if v, ok := el.Style[models.StyleOpacity].(float64); ok {
		form.Opacity = v
	}
	form.OpacityPercent = int(math.Round(form.Opacity * 100))
	return form
}

func styleOr(style models.Style, key, def string) string {
	if v, ok := style.String(key); ok {
		return v
	}
	return def
}
