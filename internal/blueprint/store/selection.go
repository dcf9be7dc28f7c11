package store

// ============================================================
// Selection Controller
// ============================================================

// Selection хранит id выбранного элемента. Пустой id означает NoSelection.
type Selection struct {
	elementID string
}

func (s *Selection) Select(id string) {
	s.elementID = id
}

func (s *Selection) Clear() {
	s.elementID = ""
}

// ID возвращает id выбранного элемента; ok == false означает NoSelection.
func (s *Selection) ID() (string, bool) {
	return s.elementID, s.elementID != ""
}
