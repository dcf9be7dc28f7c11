package editors

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"blueprint/internal/blueprint/models"
)

// ============================================================
// Property Editor
// ============================================================

var (
	ErrUnknownField    = errors.New("unknown field")
	ErrInvalidValue    = errors.New("invalid value")
	ErrElementNotFound = models.ErrElementNotFound
	ErrWrongType       = errors.New("editor does not apply to this element type")
)

// ElementModifier: операция хранилища, через которую редакторы пишут
// изменения. fn получает актуальный элемент под блокировкой хранилища.
type ElementModifier interface {
	ModifyElement(id string, fn func(*models.DesignElement) error) (models.DesignElement, error)
}

// Editor применяет правки форм свойств к элементу через хранилище.
// Каждая правка сливается с текущим набором стилей, а не заменяет его.
type Editor struct {
	target ElementModifier
}

func New(target ElementModifier) *Editor {
	return &Editor{target: target}
}

func (e *Editor) modify(id string, fn func(*models.DesignElement) error) (models.DesignElement, error) {
	return e.target.ModifyElement(id, fn)
}

// modifyTyped отклоняет правку, если элемент другого типа.
func (e *Editor) modifyTyped(id, kind string, fn func(*models.DesignElement) error) (models.DesignElement, error) {
	return e.modify(id, func(el *models.DesignElement) error {
		if el.Type != kind {
			return ErrWrongType
		}
		return fn(el)
	})
}

func setStyle(el *models.DesignElement, key string, value any) error {
	el.Style = el.Style.With(key, value)
	return nil
}

// ============================================================
// Generic geometry editor
// ============================================================

type GeometryField string

const (
	FieldX      GeometryField = "x"
	FieldY      GeometryField = "y"
	FieldWidth  GeometryField = "width"
	FieldHeight GeometryField = "height"
)

// CoerceNumber разбирает ввод числового поля. Пустой или нечисловой ввод
// даёт 0.
func CoerceNumber(raw string) float64 {
	n, ok := models.ParseFloatPrefix(raw)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func (e *Editor) SetGeometry(id string, field GeometryField, raw string) (models.DesignElement, error) {
	value := CoerceNumber(raw)
	return e.modify(id, func(el *models.DesignElement) error {
		switch field {
		case FieldX:
			el.Position.X = value
		case FieldY:
			el.Position.Y = value
		case FieldWidth:
			el.Size.Width = value
		case FieldHeight:
			el.Size.Height = value
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		return nil
	})
}

// ============================================================
// Text editor
// ============================================================

type TextField string

const (
	TextContent       TextField = "content"
	TextFontSize      TextField = "fontSize"
	TextColor         TextField = "color"
	TextFontFamily    TextField = "fontFamily"
	TextFontWeight    TextField = "fontWeight"
	TextLineHeight    TextField = "lineHeight"
	TextLetterSpacing TextField = "letterSpacing"
	TextAlign         TextField = "textAlign"
)

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

var FontWeights = []Option{
	{Label: "Light", Value: "300"},
	{Label: "Normal", Value: "400"},
	{Label: "Medium", Value: "500"},
	{Label: "Semi-Bold", Value: "600"},
	{Label: "Bold", Value: "700"},
	{Label: "Extra-Bold", Value: "800"},
}

var TextAlignments = []Option{
	{Label: "Left", Value: "left"},
	{Label: "Center", Value: "center"},
	{Label: "Right", Value: "right"},
	{Label: "Justify", Value: "justify"},
}

func (e *Editor) SetText(id string, field TextField, value string) (models.DesignElement, error) {
	return e.modifyTyped(id, models.TypeText, func(el *models.DesignElement) error {
		switch field {
		case TextContent:
			el.Content = value
			return nil
		case TextFontSize:
			// пустой или нечисловой размер снимает свойство
			size, ok := models.ParseFloatPrefix(value)
			if !ok {
				return setStyle(el, models.StyleFontSize, nil)
			}
			return setStyle(el, models.StyleFontSize, models.FormatFloat(size)+"px")
		case TextFontWeight:
			if !hasOption(FontWeights, value) {
				return fmt.Errorf("%w: font weight %q", ErrInvalidValue, value)
			}
			return setStyle(el, models.StyleFontWeight, value)
		case TextAlign:
			if !hasOption(TextAlignments, value) {
				return fmt.Errorf("%w: text align %q", ErrInvalidValue, value)
			}
			return setStyle(el, models.StyleTextAlign, value)
		case TextColor, TextFontFamily, TextLineHeight, TextLetterSpacing:
			return setStyle(el, string(field), value)
		}
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	})
}

// SetTextShadow меняет одну часть тени и пересобирает сокращённую запись
// из текущего значения в хранилище.
func (e *Editor) SetTextShadow(id string, part ShadowPart, value string) (models.DesignElement, error) {
	return e.modifyTyped(id, models.TypeText, func(el *models.DesignElement) error {
		if !validShadowPart(part) {
			return fmt.Errorf("%w: %q", ErrUnknownField, part)
		}
		raw, _ := el.Style.String(models.StyleTextShadow)
		shadow := ParseTextShadow(raw).With(part, strings.TrimSpace(value))
		return setStyle(el, models.StyleTextShadow, shadow.String())
	})
}

// ============================================================
// Shape editor
// ============================================================

type ShapeField string

const (
	ShapeBackgroundColor ShapeField = "backgroundColor"
	ShapeBorderColor     ShapeField = "borderColor"
	ShapeBorderWidth     ShapeField = "borderWidth"
	ShapeBorderRadius    ShapeField = "borderRadius"
	ShapeOpacity         ShapeField = "opacity"
)

func (e *Editor) SetShape(id string, field ShapeField, value string) (models.DesignElement, error) {
	return e.modifyTyped(id, models.TypeShape, func(el *models.DesignElement) error {
		switch field {
		case ShapeBackgroundColor, ShapeBorderColor, ShapeBorderRadius:
			return setStyle(el, string(field), value)
		case ShapeBorderWidth:
			width, ok := models.ParseFloatPrefix(value)
			if !ok || width < 0 {
				return setStyle(el, models.StyleBorderWidth, "0px")
			}
			return setStyle(el, models.StyleBorderWidth, models.FormatFloat(width)+"px")
		case ShapeOpacity:
			opacity, ok := models.ParseFloatPrefix(value)
			if !ok {
				return fmt.Errorf("%w: opacity %q", ErrInvalidValue, value)
			}
			return setStyle(el, models.StyleOpacity, math.Min(1, math.Max(0, opacity)))
		}
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	})
}

// ============================================================
// Image editor
// ============================================================

func (e *Editor) SetImageSource(id, source string) (models.DesignElement, error) {
	return e.modifyTyped(id, models.TypeImage, func(el *models.DesignElement) error {
		el.Source = source
		return nil
	})
}

func hasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
