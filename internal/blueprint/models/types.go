package models

// ============================================================
// Canvas
// ============================================================

// Логическое полотно всегда 1000x1000 независимо от размера отрисовки.
const (
	CanvasWidth  = 1000.0
	CanvasHeight = 1000.0
)

// DefaultCanvasBackground: фон темы, если макет его не задал.
const DefaultCanvasBackground = "hsl(var(--card))"

// ============================================================
// Element types
// ============================================================

const (
	TypeText  = "text"
	TypeImage = "image"
	TypeShape = "shape"
)

// ============================================================
// Geometry primitives
// ============================================================

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ============================================================
// Design document
// ============================================================

type DesignElement struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Size     Size     `json:"size"`
	Content  string   `json:"content,omitempty"`
	Source   string   `json:"source,omitempty"`
	Style    Style    `json:"style,omitempty"`
}

type DesignLayout struct {
	ID                    string          `json:"id"`
	Description           string          `json:"description"`
	Elements              []DesignElement `json:"elements"`
	CanvasBackgroundColor string          `json:"canvasBackgroundColor"`
}

// IndexOf возвращает позицию элемента с данным id или -1.
func (l *DesignLayout) IndexOf(id string) int {
	if l == nil || id == "" {
		return -1
	}
	for i := range l.Elements {
		if l.Elements[i].ID == id {
			return i
		}
	}
	return -1
}

// Element ищет элемент по id.
func (l *DesignLayout) Element(id string) (DesignElement, bool) {
	idx := l.IndexOf(id)
	if idx < 0 {
		return DesignElement{}, false
	}
	return l.Elements[idx].Clone(), true
}

func (e DesignElement) Clone() DesignElement {
	e.Style = e.Style.Clone()
	return e
}

func (l *DesignLayout) Clone() *DesignLayout {
	if l == nil {
		return nil
	}
	out := *l
	out.Elements = make([]DesignElement, len(l.Elements))
	for i, el := range l.Elements {
		out.Elements[i] = el.Clone()
	}
	return &out
}

// ============================================================
// Drafts (payloads without identifiers)
// ============================================================

// ElementDraft: элемент от внешнего производителя (AI, каталоги, API).
// Идентификатор назначает только хранилище.
type ElementDraft struct {
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Size     Size     `json:"size"`
	Content  string   `json:"content,omitempty"`
	Source   string   `json:"source,omitempty"`
	Style    Style    `json:"style,omitempty"`
}

// LayoutDraft: макет без идентификаторов. CanvasBackgroundColor == nil
// означает "поле отсутствует", а не "пустое значение".
type LayoutDraft struct {
	Description           string         `json:"description"`
	Elements              []ElementDraft `json:"elements"`
	CanvasBackgroundColor *string        `json:"canvasBackgroundColor,omitempty"`
}

// Draft отбрасывает идентификатор, оставляя полезную нагрузку элемента.
func (e DesignElement) Draft() ElementDraft {
	return ElementDraft{
		Type:     e.Type,
		Position: e.Position,
		Size:     e.Size,
		Content:  e.Content,
		Source:   e.Source,
		Style:    e.Style.Clone(),
	}
}

// Draft превращает сохранённый макет обратно в черновик (например, для CLI).
func (l *DesignLayout) Draft() LayoutDraft {
	elements := make([]ElementDraft, len(l.Elements))
	for i, el := range l.Elements {
		elements[i] = el.Draft()
	}
	bg := l.CanvasBackgroundColor
	return LayoutDraft{
		Description:           l.Description,
		Elements:              elements,
		CanvasBackgroundColor: &bg,
	}
}
