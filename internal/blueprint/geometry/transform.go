package geometry

import (
	"math"

	"blueprint/internal/blueprint/models"
)

// ============================================================
// Scale Transform
// ============================================================

// Transform переводит логические координаты полотна (1000x1000) в пиксели
// отрисовки. Полотно всегда квадратное и подстраивается под ширину контейнера.
type Transform struct {
	scale float64
}

func NewTransform() *Transform {
	return &Transform{scale: 1}
}

// Resize пересчитывает масштаб по ширине контейнера. Неположительная или
// нечисловая ширина (контейнер ещё не размечен) оставляет прежний масштаб.
func (t *Transform) Resize(containerWidth float64) float64 {
	if containerWidth > 0 && !math.IsInf(containerWidth, 1) {
		t.scale = containerWidth / models.CanvasWidth
	}
	return t.scale
}

func (t *Transform) Scale() float64 {
	return t.scale
}

// CanvasSize возвращает размер отрисованного полотна в пикселях.
func (t *Transform) CanvasSize() models.Size {
	return models.Size{
		Width:  models.CanvasWidth * t.scale,
		Height: models.CanvasHeight * t.scale,
	}
}

func (t *Transform) ToPixels(p models.Position) models.Position {
	return models.Position{X: p.X * t.scale, Y: p.Y * t.scale}
}

func (t *Transform) ToLogical(p models.Position) models.Position {
	return models.Position{X: p.X / t.scale, Y: p.Y / t.scale}
}

// Box: прямоугольник элемента в пикселях.
type Box struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// BoxFor масштабирует позицию и размер элемента. Сохранённые логические
// значения не меняются.
func (t *Transform) BoxFor(pos models.Position, size models.Size) Box {
	return Box{
		Left:   pos.X * t.scale,
		Top:    pos.Y * t.scale,
		Width:  size.Width * t.scale,
		Height: size.Height * t.scale,
	}
}

// Center возвращает центр прямоугольника.
func (b Box) Center() (float64, float64) {
	return b.Left + b.Width/2, b.Top + b.Height/2
}

// Contains проверяет попадание точки в прямоугольник, повёрнутый на
// rotationDeg градусов вокруг своего центра.
func (b Box) Contains(px, py, rotationDeg float64) bool {
	if rotationDeg != 0 {
		cx, cy := b.Center()
		rad := -rotationDeg * math.Pi / 180
		sin := math.Sin(rad)
		cos := math.Cos(rad)
		dx := px - cx
		dy := py - cy
		px = cx + dx*cos - dy*sin
		py = cy + dx*sin + dy*cos
	}
	return px >= b.Left && px <= b.Left+b.Width && py >= b.Top && py <= b.Top+b.Height
}
