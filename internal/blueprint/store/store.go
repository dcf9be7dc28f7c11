package store

import (
	"fmt"
	"sync"

	"blueprint/internal/blueprint/models"
)

// ============================================================
// Design Document Store
// ============================================================

// Store хранит текущий макет (или его отсутствие) и выделение.
// Все операции атомарны относительно друг друга.
type Store struct {
	mu        sync.Mutex
	ids       IDIssuer
	layout    *models.DesignLayout
	selection Selection
}

func New(ids IDIssuer) *Store {
	if ids == nil {
		ids = UUIDIssuer{}
	}
	return &Store{ids: ids}
}

// ============================================================
// Admission
// ============================================================

// Admit проверяет черновик, нормализует стили и назначает идентификаторы
// макету и каждому элементу. Текущий документ не меняется.
func (s *Store) Admit(draft models.LayoutDraft) (*models.DesignLayout, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	layout := &models.DesignLayout{
		ID:                    s.ids.NewID(),
		Description:           draft.Description,
		Elements:              make([]models.DesignElement, 0, len(draft.Elements)),
		CanvasBackgroundColor: models.DefaultCanvasBackground,
	}
	// отсутствие поля, а не пустое значение, включает фон по умолчанию
	if draft.CanvasBackgroundColor != nil {
		layout.CanvasBackgroundColor = *draft.CanvasBackgroundColor
	}
	for _, el := range draft.Elements {
		layout.Elements = append(layout.Elements, s.materialize(el))
	}
	return layout, nil
}

func (s *Store) materialize(draft models.ElementDraft) models.DesignElement {
	return models.DesignElement{
		ID:       s.ids.NewID(),
		Type:     draft.Type,
		Position: draft.Position,
		Size:     draft.Size,
		Content:  draft.Content,
		Source:   draft.Source,
		Style:    draft.Style.Clone().Normalize(),
	}
}

// ============================================================
// Mutations
// ============================================================

// SetLayout заменяет документ целиком и снимает выделение.
func (s *Store) SetLayout(layout *models.DesignLayout) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.layout = layout.Clone()
	s.selection.Clear()
}

// Load допускает черновик и делает его текущим документом.
func (s *Store) Load(draft models.LayoutDraft) (*models.DesignLayout, error) {
	layout, err := s.Admit(draft)
	if err != nil {
		return nil, err
	}
	s.SetLayout(layout)
	return layout, nil
}

// UpdateElement заменяет элемент с тем же id на месте. Без документа или
// при промахе по id ничего не происходит. Тип элемента не меняется.
func (s *Store) UpdateElement(updated models.DesignElement) bool {
	_, err := s.ModifyElement(updated.ID, func(el *models.DesignElement) error {
		*el = updated.Clone()
		return nil
	})
	return err == nil
}

// ModifyElement применяет fn к актуальной копии элемента под блокировкой
// хранилища и сохраняет результат. Ошибка fn оставляет документ без
// изменений. Тип элемента не меняется.
func (s *Store) ModifyElement(id string, fn func(*models.DesignElement) error) (models.DesignElement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.layout.IndexOf(id)
	if idx < 0 {
		return models.DesignElement{}, models.ErrElementNotFound
	}

	next := s.layout.Elements[idx].Clone()
	if err := fn(&next); err != nil {
		return models.DesignElement{}, err
	}
	next.ID = s.layout.Elements[idx].ID
	next.Type = s.layout.Elements[idx].Type
	next.Style = next.Style.Normalize()
	s.layout.Elements[idx] = next
	return next.Clone(), nil
}

// AddElement назначает элементу новый id и добавляет его в конец документа.
// Без документа создаётся минимальный документ с единственным элементом.
func (s *Store) AddElement(draft models.ElementDraft) (models.DesignElement, error) {
	if err := draft.Validate(); err != nil {
		return models.DesignElement{}, fmt.Errorf("add element: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	el := s.materialize(draft)
	if s.layout == nil {
		s.layout = s.minimalLayout()
	}
	s.layout.Elements = append(s.layout.Elements, el)
	return el.Clone(), nil
}

// SetCanvasBackgroundColor задаёт фон полотна, при необходимости создавая
// минимальный документ.
func (s *Store) SetCanvasBackgroundColor(color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.layout == nil {
		s.layout = s.minimalLayout()
	}
	s.layout.CanvasBackgroundColor = color
}

func (s *Store) minimalLayout() *models.DesignLayout {
	return &models.DesignLayout{
		ID:                    s.ids.NewID(),
		Elements:              []models.DesignElement{},
		CanvasBackgroundColor: models.DefaultCanvasBackground,
	}
}

// ============================================================
// Queries
// ============================================================

// Layout возвращает копию текущего документа или nil.
func (s *Store) Layout() *models.DesignLayout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout.Clone()
}

// Snapshot возвращает копию документа и id выделенного элемента за одну
// блокировку.
func (s *Store) Snapshot() (*models.DesignLayout, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, _ := s.selectedID()
	return s.layout.Clone(), id
}

// Element ищет элемент текущего документа по id.
func (s *Store) Element(id string) (models.DesignElement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout.Element(id)
}

// ============================================================
// Selection
// ============================================================

// Select выделяет элемент, если он есть в текущем документе.
func (s *Store) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.layout.IndexOf(id) < 0 {
		return false
	}
	s.selection.Select(id)
	return true
}

func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
}

// Selected возвращает выделенный элемент. Если id больше не находится в
// документе, результат "нет выделения".
func (s *Store) Selected() (models.DesignElement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.selectedID()
	if !ok {
		return models.DesignElement{}, false
	}
	return s.layout.Element(id)
}

func (s *Store) selectedID() (string, bool) {
	id, ok := s.selection.ID()
	if !ok || s.layout.IndexOf(id) < 0 {
		return "", false
	}
	return id, true
}
