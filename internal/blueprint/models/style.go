package models

import (
	"regexp"
	"strconv"
	"strings"
)

// ============================================================
// Style bag
// ============================================================

// Style: открытый набор CSS-свойств (camelCase ключи). Неизвестные ключи
// проходят в отрисовку как есть.
type Style map[string]any

// Известные ключи стилей, которыми управляют редакторы.
const (
	StyleFontFamily      = "fontFamily"
	StyleFontSize        = "fontSize"
	StyleColor           = "color"
	StyleBackgroundColor = "backgroundColor"
	StyleFontWeight      = "fontWeight"
	StyleLetterSpacing   = "letterSpacing"
	StyleLineHeight      = "lineHeight"
	StyleTextAlign       = "textAlign"
	StyleTextShadow      = "textShadow"
	StyleZIndex          = "zIndex"
	StyleRotation        = "rotation"
	StyleTransform       = "transform"
	StyleBorderColor     = "borderColor"
	StyleBorderWidth     = "borderWidth"
	StyleBorderRadius    = "borderRadius"
	StyleOpacity         = "opacity"
	StyleAIHint          = "data-ai-hint"
)

// Normalize превращает пустой набор в отсутствующий (nil).
func (s Style) Normalize() Style {
	if len(s) == 0 {
		return nil
	}
	return s
}

// Clone делает глубокую копию, включая вложенные объекты и массивы.
func (s Style) Clone() Style {
	if s == nil {
		return nil
	}
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = cloneValue(inner)
		}
		return m
	case Style:
		return val.Clone()
	case []any:
		list := make([]any, len(val))
		for i, inner := range val {
			list[i] = cloneValue(inner)
		}
		return list
	default:
		return v
	}
}

// With возвращает копию набора с заменённым ключом. nil удаляет ключ.
func (s Style) With(key string, value any) Style {
	out := s.Clone()
	if out == nil {
		out = Style{}
	}
	if value == nil {
		delete(out, key)
	} else {
		out[key] = value
	}
	return out.Normalize()
}

// String возвращает значение ключа как строку. Числа форматируются без
// лишних нулей; отсутствующие и пустые значения дают ok == false.
func (s Style) String(key string) (string, bool) {
	v, ok := s[key]
	if !ok || v == nil {
		return "", false
	}
	str := ValueString(v)
	if str == "" {
		return "", false
	}
	return str, true
}

// Number возвращает числовое значение ключа. Строки разбираются по
// числовому префиксу ("24px" -> 24).
func (s Style) Number(key string) (float64, bool) {
	v, ok := s[key]
	if !ok || v == nil {
		return 0, false
	}
	return ValueNumber(v)
}

// ValueString приводит значение набора стилей к строке.
func ValueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return FormatFloat(val)
	case float32:
		return FormatFloat(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// ValueNumber приводит значение набора стилей к числу.
func ValueNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		return ParseFloatPrefix(val)
	default:
		return 0, false
	}
}

// ============================================================
// Number helpers
// ============================================================

var floatPrefix = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)

// ParseFloatPrefix разбирает ведущее число строки: "24px" -> 24, "1.5" -> 1.5.
// Строка без числового префикса даёт ok == false.
func ParseFloatPrefix(s string) (float64, bool) {
	match := floatPrefix.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func FormatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
