package aiflow

import (
	"context"
	"errors"

	"blueprint/internal/blueprint/models"
)

// ============================================================
// Layout generation contract
// ============================================================

// Request: запрос генерации: описание желаемого дизайна.
type Request struct {
	Prompt string `json:"prompt"`
}

// Response: варианты макетов без идентификаторов.
type Response struct {
	Layouts []models.LayoutDraft `json:"layouts"`
}

// Generator предлагает макеты по текстовому описанию.
type Generator interface {
	GenerateLayouts(ctx context.Context, req Request) (*Response, error)
}

var ErrUnavailable = errors.New("AI generation is not configured")

// Disabled: генератор-заглушка, когда ключ API не задан.
type Disabled struct{}

func (Disabled) GenerateLayouts(context.Context, Request) (*Response, error) {
	return nil, ErrUnavailable
}

// GeneratorFunc позволяет использовать функцию как Generator.
type GeneratorFunc func(ctx context.Context, req Request) (*Response, error)

func (f GeneratorFunc) GenerateLayouts(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}
