package render

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"blueprint/internal/blueprint/models"
)

// ============================================================
// Declarations
// ============================================================

// Declarations: упорядоченный набор CSS-объявлений. Повторная установка
// ключа сохраняет исходную позицию, как у объекта стилей в браузере.
type Declarations struct {
	keys   []string
	values map[string]string
}

func NewDeclarations() *Declarations {
	return &Declarations{values: make(map[string]string)}
}

func (d *Declarations) Set(key, value string) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

func (d *Declarations) Get(key string) (string, bool) {
	v, ok := d.values[key]
	return v, ok
}

func (d *Declarations) Delete(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

func (d *Declarations) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Map возвращает объявления в виде карты (camelCase ключи).
func (d *Declarations) Map() map[string]string {
	out := make(map[string]string, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

// CSS собирает инлайн-строку стиля с kebab-case свойствами.
func (d *Declarations) CSS() string {
	var b strings.Builder
	for i, k := range d.keys {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(cssProperty(k))
		b.WriteString(": ")
		b.WriteString(d.values[k])
		b.WriteString(";")
	}
	return b.String()
}

// ============================================================
// Controlled style subset
// ============================================================

// ControlledStyle: типизированное подмножество стилей, которым управляют
// редакторы. Оно применяется поверх сырого набора, поэтому посторонние
// ключи не могут его перекрыть.
type ControlledStyle struct {
	FontFamily      string
	FontSize        string
	Color           string
	BackgroundColor string
	FontWeight      string
	LetterSpacing   string
	LineHeight      string
	TextAlign       string
	TextShadow      string
	ZIndex          *int
	Rotation        float64
}

// Controlled извлекает управляемое подмножество из набора стилей.
// Пустые и нулевые значения считаются отсутствующими.
func Controlled(style models.Style) ControlledStyle {
	var c ControlledStyle
	if style == nil {
		return c
	}
	c.FontFamily, _ = style.String(models.StyleFontFamily)
	c.FontSize, _ = style.String(models.StyleFontSize)
	c.Color, _ = style.String(models.StyleColor)
	c.BackgroundColor, _ = style.String(models.StyleBackgroundColor)
	c.FontWeight, _ = style.String(models.StyleFontWeight)
	c.LetterSpacing, _ = style.String(models.StyleLetterSpacing)
	c.LineHeight, _ = style.String(models.StyleLineHeight)
	c.TextAlign, _ = style.String(models.StyleTextAlign)
	c.TextShadow, _ = style.String(models.StyleTextShadow)

	if z, ok := style.Number(models.StyleZIndex); ok && z != 0 && !math.IsNaN(z) {
		zi := int(z)
		c.ZIndex = &zi
	}
	if r, ok := style.Number(models.StyleRotation); ok && !math.IsNaN(r) {
		c.Rotation = r
	}
	return c
}

// ============================================================
// Resolver
// ============================================================

const (
	selectedBorder   = "2px solid hsl(var(--accent))"
	unselectedBorder = "1px dashed hsl(var(--border))"
	fallbackBorder   = "1px dashed red"
)

// ResolveStyle строит итоговые объявления элемента:
// рамка элемента -> сырой набор стилей -> управляемые свойства.
func ResolveStyle(el models.DesignElement, scale float64, selected bool) *Declarations {
	decl := NewDeclarations()

	decl.Set("position", "absolute")
	decl.Set("left", px(el.Position.X*scale))
	decl.Set("top", px(el.Position.Y*scale))
	decl.Set("width", px(el.Size.Width*scale))
	decl.Set("height", px(el.Size.Height*scale))
	decl.Set("boxSizing", "border-box")
	if selected {
		decl.Set("border", selectedBorder)
	} else {
		decl.Set("border", unselectedBorder)
	}
	decl.Set("transition", "border 0.2s ease-in-out, transform 0.2s ease-in-out")
	decl.Set("cursor", "pointer")

	applyRaw(decl, el.Style)
	applyControlled(decl, Controlled(el.Style), scale)
	return decl
}

// applyRaw переносит сырой набор как есть. Ключи идут в отсортированном
// порядке, чтобы отрисовка была детерминированной.
func applyRaw(decl *Declarations, style models.Style) {
	keys := make([]string, 0, len(style))
	for k := range style {
		if k == models.StyleRotation || k == models.StyleAIHint {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if v, ok := cssValue(k, style[k]); ok {
			decl.Set(k, v)
		}
	}
}

func applyControlled(decl *Declarations, c ControlledStyle, scale float64) {
	if c.FontFamily != "" {
		decl.Set("fontFamily", c.FontFamily)
	}
	if c.FontSize != "" {
		if size, ok := models.ParseFloatPrefix(c.FontSize); ok {
			decl.Set("fontSize", px(size*scale))
		} else {
			decl.Set("fontSize", c.FontSize)
		}
	}
	if c.Color != "" {
		decl.Set("color", c.Color)
	}
	if c.BackgroundColor != "" {
		decl.Set("backgroundColor", c.BackgroundColor)
	}
	if c.FontWeight != "" {
		decl.Set("fontWeight", c.FontWeight)
	}
	if c.LetterSpacing != "" {
		decl.Set("letterSpacing", c.LetterSpacing)
	}
	if c.LineHeight != "" {
		decl.Set("lineHeight", c.LineHeight)
	}
	if c.TextAlign != "" {
		decl.Set("textAlign", c.TextAlign)
	}
	if c.TextShadow != "" {
		decl.Set("textShadow", c.TextShadow)
	}
	if c.ZIndex != nil {
		decl.Set("zIndex", fmt.Sprintf("%d", *c.ZIndex))
	}
	if c.Rotation != 0 {
		existing, _ := decl.Get("transform")
		decl.Set("transform", strings.TrimSpace(existing+" rotate("+models.FormatFloat(c.Rotation)+"deg)"))
	}
}

// ============================================================
// CSS helpers
// ============================================================

// Свойства, для которых число не получает единицу "px".
var unitless = map[string]bool{
	"zIndex":        true,
	"opacity":       true,
	"fontWeight":    true,
	"lineHeight":    true,
	"flex":          true,
	"flexGrow":      true,
	"flexShrink":    true,
	"order":         true,
	"zoom":          true,
	"aspectRatio":   true,
	"fillOpacity":   true,
	"strokeOpacity": true,
	"columnCount":   true,
}

func cssValue(key string, v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case bool:
		return "", false
	case map[string]any, []any, models.Style:
		return "", false
	}
	if n, ok := models.ValueNumber(v); ok {
		if unitless[key] {
			return models.FormatFloat(n), true
		}
		return px(n), true
	}
	return "", false
}

func px(v float64) string {
	return models.FormatFloat(round(v)) + "px"
}

// round отрезает шум плавающей точки (0.1*3 -> 0.3).
func round(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// cssProperty переводит camelCase в kebab-case.
func cssProperty(key string) string {
	if strings.Contains(key, "-") {
		return key
	}
	var b strings.Builder
	for i, r := range key {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
