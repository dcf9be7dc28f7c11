package store

import (
	"errors"
	"fmt"
	"testing"

	"blueprint/internal/blueprint/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqIssuer struct{ n int }

func (s *seqIssuer) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func strPtr(s string) *string { return &s }

func textDraft(content string) models.ElementDraft {
	return models.ElementDraft{
		Type:     models.TypeText,
		Position: models.Position{X: 10, Y: 10},
		Size:     models.Size{Width: 100, Height: 40},
		Content:  content,
		Style:    models.Style{"color": "#333333"},
	}
}

func TestAdmitAssignsIDs(t *testing.T) {
	s := New(&seqIssuer{})
	layout, err := s.Admit(models.LayoutDraft{
		Description: "two",
		Elements:    []models.ElementDraft{textDraft("a"), textDraft("b")},
	})
	require.NoError(t, err)

	assert.Equal(t, "id-1", layout.ID)
	assert.Equal(t, "id-2", layout.Elements[0].ID)
	assert.Equal(t, "id-3", layout.Elements[1].ID)
	assert.Nil(t, s.Layout(), "admission does not change the document")
}

func TestAdmitBackgroundDefault(t *testing.T) {
	s := New(nil)

	absent, err := s.Admit(models.LayoutDraft{Description: "x"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCanvasBackground, absent.CanvasBackgroundColor)

	white, err := s.Admit(models.LayoutDraft{CanvasBackgroundColor: strPtr("#FFFFFF")})
	require.NoError(t, err)
	assert.Equal(t, "#FFFFFF", white.CanvasBackgroundColor)

	empty, err := s.Admit(models.LayoutDraft{CanvasBackgroundColor: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "", empty.CanvasBackgroundColor, "explicit value is never clobbered")
}

func TestAdmitRejectsNonPositiveSize(t *testing.T) {
	s := New(nil)
	bad := textDraft("bad")
	bad.Size.Height = 0

	_, err := s.Admit(models.LayoutDraft{Elements: []models.ElementDraft{textDraft("ok"), bad}})
	assert.ErrorIs(t, err, models.ErrNonPositiveSize)

	_, err = s.Load(models.LayoutDraft{Elements: []models.ElementDraft{bad}})
	assert.ErrorIs(t, err, models.ErrNonPositiveSize)
	assert.Nil(t, s.Layout())

	_, err = s.AddElement(bad)
	assert.ErrorIs(t, err, models.ErrNonPositiveSize)
	assert.Nil(t, s.Layout())
}

func TestAdmitNormalizesEmptyStyle(t *testing.T) {
	s := New(nil)
	d := textDraft("x")
	d.Style = models.Style{}

	layout, err := s.Admit(models.LayoutDraft{Elements: []models.ElementDraft{d}})
	require.NoError(t, err)
	assert.Nil(t, layout.Elements[0].Style)

	el, err := s.AddElement(d)
	require.NoError(t, err)
	assert.Nil(t, el.Style)
}

func TestAddElementOnEmptyStore(t *testing.T) {
	s := New(&seqIssuer{})
	el, err := s.AddElement(textDraft("only"))
	require.NoError(t, err)

	layout := s.Layout()
	require.NotNil(t, layout)
	require.Len(t, layout.Elements, 1)
	assert.Equal(t, el.ID, layout.Elements[0].ID)
	assert.Equal(t, "", layout.Description)
	assert.Equal(t, models.DefaultCanvasBackground, layout.CanvasBackgroundColor)
	assert.NotEqual(t, layout.ID, el.ID)
}

func TestAddElementAppendsWithFreshID(t *testing.T) {
	s := New(nil)
	_, err := s.Load(models.LayoutDraft{
		Description:           "keep me",
		CanvasBackgroundColor: strPtr("#000000"),
		Elements:              []models.ElementDraft{textDraft("a"), textDraft("b")},
	})
	require.NoError(t, err)

	seen := map[string]bool{}
	before := s.Layout()
	seen[before.ID] = true
	for _, el := range before.Elements {
		seen[el.ID] = true
	}

	for i := 0; i < 5; i++ {
		el, err := s.AddElement(textDraft("new"))
		require.NoError(t, err)
		assert.False(t, seen[el.ID])
		seen[el.ID] = true

		layout := s.Layout()
		assert.Equal(t, el.ID, layout.Elements[len(layout.Elements)-1].ID)
		assert.Equal(t, "keep me", layout.Description)
		assert.Equal(t, "#000000", layout.CanvasBackgroundColor)
		assert.Equal(t, before.ID, layout.ID)
	}
}

func TestUpdateElement(t *testing.T) {
	s := New(nil)
	layout, err := s.Load(models.LayoutDraft{Elements: []models.ElementDraft{textDraft("a"), textDraft("b"), textDraft("c")}})
	require.NoError(t, err)

	target := layout.Elements[1]
	target.Content = "changed"
	target.Type = models.TypeShape
	target.Style = models.Style{}
	assert.True(t, s.UpdateElement(target))

	got := s.Layout()
	assert.Equal(t, "a", got.Elements[0].Content)
	assert.Equal(t, "changed", got.Elements[1].Content)
	assert.Equal(t, "c", got.Elements[2].Content)
	assert.Equal(t, models.TypeText, got.Elements[1].Type, "type is immutable")
	assert.Nil(t, got.Elements[1].Style)

	assert.False(t, s.UpdateElement(models.DesignElement{ID: "missing"}))
	assert.Equal(t, got, s.Layout())
}

func TestModifyElement(t *testing.T) {
	s := New(nil)
	layout, err := s.Load(models.LayoutDraft{Elements: []models.ElementDraft{textDraft("a")}})
	require.NoError(t, err)
	id := layout.Elements[0].ID

	got, err := s.ModifyElement(id, func(el *models.DesignElement) error {
		el.Content = "b"
		el.Type = models.TypeShape
		el.Style = models.Style{}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "b", got.Content)
	assert.Equal(t, models.TypeText, got.Type, "type is immutable")
	assert.Nil(t, got.Style)

	boom := errors.New("boom")
	before := s.Layout()
	_, err = s.ModifyElement(id, func(el *models.DesignElement) error {
		el.Content = "half-applied"
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, s.Layout())

	_, err = s.ModifyElement("ghost", func(*models.DesignElement) error { return nil })
	assert.ErrorIs(t, err, models.ErrElementNotFound)

	_, err = New(nil).ModifyElement(id, func(*models.DesignElement) error { return nil })
	assert.ErrorIs(t, err, models.ErrElementNotFound)
}

func TestUpdateElementWithoutDocument(t *testing.T) {
	s := New(nil)
	assert.False(t, s.UpdateElement(models.DesignElement{ID: "x", Content: "y"}))
	assert.Nil(t, s.Layout())
}

func TestStoreReturnsCopies(t *testing.T) {
	s := New(nil)
	_, err := s.Load(models.LayoutDraft{Elements: []models.ElementDraft{textDraft("a")}})
	require.NoError(t, err)

	snapshot := s.Layout()
	snapshot.Elements[0].Content = "mutated"
	snapshot.Elements[0].Style["color"] = "red"

	again := s.Layout()
	assert.Equal(t, "a", again.Elements[0].Content)
	assert.Equal(t, "#333333", again.Elements[0].Style["color"])
}

func TestSetCanvasBackgroundColor(t *testing.T) {
	s := New(nil)
	s.SetCanvasBackgroundColor("#123456")

	layout := s.Layout()
	require.NotNil(t, layout)
	assert.Equal(t, "#123456", layout.CanvasBackgroundColor)
	assert.Empty(t, layout.Elements)
	assert.NotEmpty(t, layout.ID)

	s.SetCanvasBackgroundColor("#654321")
	assert.Equal(t, layout.ID, s.Layout().ID)
	assert.Equal(t, "#654321", s.Layout().CanvasBackgroundColor)
}

func TestSelectionTransitions(t *testing.T) {
	s := New(nil)
	layout, err := s.Load(models.LayoutDraft{Elements: []models.ElementDraft{textDraft("a"), textDraft("b")}})
	require.NoError(t, err)
	a, b := layout.Elements[0].ID, layout.Elements[1].ID

	_, ok := s.Selected()
	assert.False(t, ok)

	require.True(t, s.Select(a))
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, a, sel.ID)

	require.True(t, s.Select(b))
	sel, _ = s.Selected()
	assert.Equal(t, b, sel.ID)

	assert.False(t, s.Select("ghost"))
	sel, _ = s.Selected()
	assert.Equal(t, b, sel.ID)

	s.ClearSelection()
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestSetLayoutClearsSelection(t *testing.T) {
	s := New(nil)
	first, err := s.Load(models.LayoutDraft{Elements: []models.ElementDraft{textDraft("a")}})
	require.NoError(t, err)
	oldID := first.Elements[0].ID
	require.True(t, s.Select(oldID))

	blank, err := s.Admit(models.LayoutDraft{Description: "Blank Canvas"})
	require.NoError(t, err)
	s.SetLayout(blank)

	_, ok := s.Selected()
	assert.False(t, ok)

	stale := first.Elements[0]
	stale.Content = "late edit"
	assert.False(t, s.UpdateElement(stale))
	assert.Empty(t, s.Layout().Elements)

	s.SetLayout(nil)
	assert.Nil(t, s.Layout())
}

func TestSetLayoutClearsSelectionEvenForSameLayout(t *testing.T) {
	s := New(nil)
	layout, err := s.Load(models.LayoutDraft{Elements: []models.ElementDraft{textDraft("a")}})
	require.NoError(t, err)
	require.True(t, s.Select(layout.Elements[0].ID))

	s.SetLayout(layout)
	layoutNow, selected := s.Snapshot()
	assert.Equal(t, "", selected)
	assert.Equal(t, layout.ID, layoutNow.ID)
}
