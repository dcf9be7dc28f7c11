package aiflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"blueprint/internal/blueprint/models"
)

// ============================================================
// AI tool state
// ============================================================

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
)

const BlankDescription = "Blank Canvas"

var (
	ErrEmptyPrompt          = errors.New("prompt is empty")
	ErrGenerationInProgress = errors.New("generation already in progress")
	ErrNoLayouts            = errors.New("no layouts were returned")
	ErrGenerationFailed     = errors.New("layout generation failed")
	ErrNoSuchLayout         = errors.New("no generated layout at this index")
)

// Documents: хранилище документа, в которое попадают сгенерированные макеты.
type Documents interface {
	Admit(draft models.LayoutDraft) (*models.DesignLayout, error)
	SetLayout(layout *models.DesignLayout)
}

// Snapshot: состояние инструмента для отображения.
type Snapshot struct {
	State   State                  `json:"state"`
	Prompt  string                 `json:"prompt"`
	Layouts []*models.DesignLayout `json:"layouts"`
}

// Tool управляет генерацией: не более одного запроса одновременно,
// флаг загрузки снимается при любом исходе.
type Tool struct {
	gen  Generator
	docs Documents

	mu      sync.Mutex
	loading bool
	ran     bool
	prompt  string
	results []*models.DesignLayout
}

func NewTool(gen Generator, docs Documents) *Tool {
	if gen == nil {
		gen = Disabled{}
	}
	return &Tool{gen: gen, docs: docs}
}

func (t *Tool) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := StateIdle
	switch {
	case t.loading:
		state = StateLoading
	case t.ran:
		state = StateReady
	}
	layouts := make([]*models.DesignLayout, len(t.results))
	for i, l := range t.results {
		layouts[i] = l.Clone()
	}
	return Snapshot{State: state, Prompt: t.prompt, Layouts: layouts}
}

// Generate запрашивает макеты, назначает им идентификаторы и сохраняет как
// результаты. Макеты с недопустимыми элементами отбрасываются.
func (t *Tool) Generate(ctx context.Context, prompt string) ([]*models.DesignLayout, models.Notice, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, models.Failure("Prompt is empty", "Please enter a description of your design."), ErrEmptyPrompt
	}

	t.mu.Lock()
	if t.loading {
		t.mu.Unlock()
		return nil, models.Failure("Generation in progress", "Please wait for the current generation to finish."), ErrGenerationInProgress
	}
	t.loading = true
	t.prompt = prompt
	t.results = nil
	t.mu.Unlock()

	var admitted []*models.DesignLayout
	defer func() {
		t.mu.Lock()
		t.loading = false
		t.ran = true
		t.results = admitted
		t.mu.Unlock()
	}()

	log.Printf("[AI] generating layouts for prompt (%d chars)", len(prompt))
	resp, err := t.gen.GenerateLayouts(ctx, Request{Prompt: prompt})
	if err != nil {
		log.Printf("[AI] generation failed: %v", err)
		return nil, models.Failure("Generation Error", err.Error()), fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	noLayouts := models.Failure("Generation Failed", "No layouts were returned by the AI. Try a different prompt.")
	if resp == nil || len(resp.Layouts) == 0 {
		return nil, noLayouts, ErrNoLayouts
	}

	for i, draft := range resp.Layouts {
		layout, err := t.docs.Admit(draft)
		if err != nil {
			log.Printf("[AI] skipping layout %d: %v", i, err)
			continue
		}
		admitted = append(admitted, layout)
	}
	if len(admitted) == 0 {
		return nil, noLayouts, fmt.Errorf("%w: all %d layouts were invalid", ErrNoLayouts, len(resp.Layouts))
	}

	log.Printf("[AI] %d of %d layouts admitted", len(admitted), len(resp.Layouts))
	out := make([]*models.DesignLayout, len(admitted))
	for i, l := range admitted {
		out[i] = l.Clone()
	}
	return out, models.Info("Layouts Generated", fmt.Sprintf("%d layouts created successfully.", len(admitted))), nil
}

// Use делает выбранный результат активным документом.
func (t *Tool) Use(index int) (*models.DesignLayout, models.Notice, error) {
	t.mu.Lock()
	if index < 0 || index >= len(t.results) {
		t.mu.Unlock()
		return nil, models.Failure("Layout not found", "The selected layout is no longer available."), ErrNoSuchLayout
	}
	layout := t.results[index].Clone()
	t.mu.Unlock()

	t.docs.SetLayout(layout)
	return layout, models.Info("Layout Selected", fmt.Sprintf("Loaded %q onto the canvas.", layout.Description)), nil
}

// Blank начинает пустой документ и сбрасывает результаты генерации.
func (t *Tool) Blank() (*models.DesignLayout, models.Notice, error) {
	layout, err := t.docs.Admit(models.LayoutDraft{Description: BlankDescription})
	if err != nil {
		return nil, models.Failure("Blank Canvas", err.Error()), err
	}
	t.docs.SetLayout(layout)

	t.mu.Lock()
	if !t.loading {
		t.results = nil
		t.prompt = ""
		t.ran = false
	}
	t.mu.Unlock()

	return layout, models.Info("Blank Canvas", "Started a new empty design."), nil
}
