package editors

import (
	"strings"

	"blueprint/internal/blueprint/models"
)

// ============================================================
// Text shadow composite
// ============================================================

// NoShadow: маркер отсутствия тени.
const NoShadow = "none"

// TextShadow: разобранная запись "<offsetX> <offsetY> <blurRadius> <color>".
type TextShadow struct {
	OffsetX    string `json:"offsetX"`
	OffsetY    string `json:"offsetY"`
	BlurRadius string `json:"blurRadius"`
	Color      string `json:"color"`
}

type ShadowPart string

const (
	ShadowOffsetX    ShadowPart = "offsetX"
	ShadowOffsetY    ShadowPart = "offsetY"
	ShadowBlurRadius ShadowPart = "blurRadius"
	ShadowColor      ShadowPart = "color"
)

// DefaultShadow: значение полей, когда тени нет или строку не удалось разобрать.
var DefaultShadow = TextShadow{OffsetX: "0px", OffsetY: "0px", BlurRadius: "0px", Color: "#000000"}

// ParseTextShadow разбирает сокращённую запись. Всё, что не состоит ровно
// из четырёх токенов, даёт DefaultShadow.
func ParseTextShadow(raw string) TextShadow {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == NoShadow {
		return DefaultShadow
	}
	parts := strings.Fields(raw)
	if len(parts) != 4 {
		return DefaultShadow
	}
	return TextShadow{
		OffsetX:    parts[0],
		OffsetY:    parts[1],
		BlurRadius: parts[2],
		Color:      parts[3],
	}
}

// With возвращает тень с изменённой частью. Неизвестная часть ничего не меняет.
func (s TextShadow) With(part ShadowPart, value string) TextShadow {
	switch part {
	case ShadowOffsetX:
		s.OffsetX = value
	case ShadowOffsetY:
		s.OffsetY = value
	case ShadowBlurRadius:
		s.BlurRadius = value
	case ShadowColor:
		s.Color = value
	}
	return s
}

// String собирает сокращённую запись. Если все три длины нулевые,
// результат "none".
func (s TextShadow) String() string {
	if isZeroLength(s.OffsetX) && isZeroLength(s.OffsetY) && isZeroLength(s.BlurRadius) {
		return NoShadow
	}
	return s.OffsetX + " " + s.OffsetY + " " + s.BlurRadius + " " + s.Color
}

// isZeroLength: "0", "0px", "0.0em", "-0px" считаются нулевой длиной; пустая строка тоже.
func isZeroLength(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	n, ok := models.ParseFloatPrefix(v)
	return ok && n == 0
}

func validShadowPart(part ShadowPart) bool {
	switch part {
	case ShadowOffsetX, ShadowOffsetY, ShadowBlurRadius, ShadowColor:
		return true
	}
	return false
}
