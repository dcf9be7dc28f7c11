package models

import (
	"errors"
	"fmt"
	"math"
)

// ============================================================
// Validation
// ============================================================

var (
	ErrNonPositiveSize = errors.New("element width and height must be greater than 0")
	ErrInvalidPosition = errors.New("element position must be a finite number")
	ErrElementNotFound = errors.New("element not found in current design")
)

// Validate проверяет черновик элемента перед допуском в документ.
func (d ElementDraft) Validate() error {
	if !(d.Size.Width > 0) || !(d.Size.Height > 0) || math.IsInf(d.Size.Width, 1) || math.IsInf(d.Size.Height, 1) {
		return fmt.Errorf("%w: got %sx%s", ErrNonPositiveSize, FormatFloat(d.Size.Width), FormatFloat(d.Size.Height))
	}
	if !isFinite(d.Position.X) || !isFinite(d.Position.Y) {
		return ErrInvalidPosition
	}
	return nil
}

// Validate проверяет размеры и положение готового элемента.
func (e DesignElement) Validate() error {
	return ElementDraft{Position: e.Position, Size: e.Size}.Validate()
}

// Validate проверяет все элементы макета; ошибка указывает индекс элемента.
func (d LayoutDraft) Validate() error {
	for i, el := range d.Elements {
		if err := el.Validate(); err != nil {
			return fmt.Errorf("element %d (%s): %w", i, el.Type, err)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
