package workspace

import (
	"log"
	"sync"

	"blueprint/internal/blueprint/aiflow"
	"blueprint/internal/blueprint/editors"
	"blueprint/internal/blueprint/geometry"
	"blueprint/internal/blueprint/models"
	"blueprint/internal/blueprint/render"
	"blueprint/internal/blueprint/store"
)

// ============================================================
// Workspace
// ============================================================

// Workspace: состояние редактора одного пользователя: документ,
// выделение, масштаб полотна и инструмент генерации.
type Workspace struct {
	Store  *store.Store
	Tool   *aiflow.Tool
	Editor *editors.Editor

	renderer *render.Renderer

	mu        sync.Mutex
	transform *geometry.Transform
}

func New(gen aiflow.Generator, ids store.IDIssuer) *Workspace {
	s := store.New(ids)
	return &Workspace{
		Store:     s,
		Tool:      aiflow.NewTool(gen, s),
		Editor:    editors.New(s),
		renderer:  render.NewRenderer(),
		transform: geometry.NewTransform(),
	}
}

// Resize пересчитывает масштаб по ширине контейнера и возвращает его.
func (w *Workspace) Resize(containerWidth float64) float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.transform.Resize(containerWidth)
}

func (w *Workspace) transformSnapshot() *geometry.Transform {
	w.mu.Lock()
	defer w.mu.Unlock()
	t := *w.transform
	return &t
}

// Frame отрисовывает текущий документ с текущим выделением.
func (w *Workspace) Frame() *render.Frame {
	layout, selectedID := w.Store.Snapshot()
	return w.renderer.Render(layout, selectedID, w.transformSnapshot())
}

// Click выделяет верхний элемент под точкой (в пикселях полотна);
// щелчок по пустому месту снимает выделение.
func (w *Workspace) Click(x, y float64) (string, bool) {
	id, ok := w.Frame().HitTest(x, y)
	if !ok || !w.Store.Select(id) {
		w.Store.ClearSelection()
		return "", false
	}
	return id, true
}

// Panel строит панель свойств для текущего выделения.
func (w *Workspace) Panel() editors.Panel {
	layout, _ := w.Store.Snapshot()
	background := models.DefaultCanvasBackground
	if layout != nil {
		background = layout.CanvasBackgroundColor
	}

	if el, ok := w.Store.Selected(); ok {
		return editors.BuildPanel(&el, background)
	}
	return editors.BuildPanel(nil, background)
}

// ============================================================
// Registry
// ============================================================

// Registry хранит рабочие пространства по идентификатору пользователя.
type Registry struct {
	gen aiflow.Generator
	ids store.IDIssuer

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

func NewRegistry(gen aiflow.Generator, ids store.IDIssuer) *Registry {
	return &Registry{
		gen:        gen,
		ids:        ids,
		workspaces: make(map[string]*Workspace),
	}
}

// Get возвращает рабочее пространство пользователя, создавая его при
// первом обращении.
func (r *Registry) Get(userID string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, ok := r.workspaces[userID]
	if !ok {
		ws = New(r.gen, r.ids)
		r.workspaces[userID] = ws
		log.Printf("[EDITOR] workspace created for user %s", userID)
	}
	return ws
}

// Drop удаляет рабочее пространство (выход из системы).
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.workspaces, userID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}
