package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"blueprint/internal/blueprint/aiflow"
	"blueprint/internal/blueprint/catalog"
	"blueprint/internal/blueprint/editors"
	"blueprint/internal/blueprint/export"
	"blueprint/internal/blueprint/models"
	"blueprint/internal/editor/workspace"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Editor Handler
// ============================================================

type EditorHandler struct {
	workspaces *workspace.Registry
}

func NewEditorHandler(workspaces *workspace.Registry) *EditorHandler {
	return &EditorHandler{workspaces: workspaces}
}

// Register подключает маршруты редактора к роутеру.
func (h *EditorHandler) Register(r fiber.Router) {
	r.Get("/design", h.GetDesign)
	r.Put("/design", h.SetDesign)
	r.Post("/design/blank", h.BlankCanvas)
	r.Put("/design/background", h.SetBackground)
	r.Get("/design/properties", h.Properties)
	r.Get("/design/export", h.Export)

	r.Post("/design/elements", h.AddElement)
	r.Post("/design/elements/:kind", h.AddCatalogElement)
	r.Put("/design/elements/:id", h.UpdateElement)
	r.Patch("/design/elements/:id/geometry", h.PatchGeometry)
	r.Patch("/design/elements/:id/text", h.PatchText)
	r.Patch("/design/elements/:id/shadow", h.PatchShadow)
	r.Patch("/design/elements/:id/shape", h.PatchShape)
	r.Patch("/design/elements/:id/image", h.PatchImage)
	r.Post("/design/elements/:id/image", h.UploadImage)

	r.Post("/selection", h.Select)
	r.Post("/canvas/click", h.Click)
	r.Post("/canvas/resize", h.Resize)
	r.Get("/canvas/render", h.Render)

	r.Get("/templates", h.ListTemplates)
	r.Post("/templates/:index", h.LoadTemplate)

	r.Get("/ai", h.AIState)
	r.Post("/ai/generate", h.Generate)
	r.Post("/ai/layouts/:index", h.UseGenerated)
}

func (h *EditorHandler) ws(c fiber.Ctx) *workspace.Workspace {
	return h.workspaces.Get(sessionFrom(c).UserID)
}

// ============================================================
// Document
// ============================================================

func (h *EditorHandler) GetDesign(c fiber.Ctx) error {
	layout, selectedID := h.ws(c).Store.Snapshot()
	return c.JSON(fiber.Map{"design": layout, "selectedId": selectedID})
}

// SetDesign заменяет документ черновиком из тела запроса; тело null
// убирает документ.
func (h *EditorHandler) SetDesign(c fiber.Ctx) error {
	if strings.TrimSpace(string(c.Body())) == "null" {
		h.ws(c).Store.SetLayout(nil)
		return c.JSON(fiber.Map{"design": nil})
	}

	var draft models.LayoutDraft
	if err := decodeBody(c, &draft); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	layout, err := h.ws(c).Store.Load(draft)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":  err.Error(),
			"notice": models.Failure("Invalid Design", err.Error()),
		})
	}
	log.Printf("[EDITOR] design %s loaded (%d elements)", layout.ID, len(layout.Elements))
	return c.JSON(fiber.Map{"design": layout, "notice": models.Info("Design Loaded", layout.Description)})
}

func (h *EditorHandler) BlankCanvas(c fiber.Ctx) error {
	layout, notice, err := h.ws(c).Tool.Blank()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error(), "notice": notice})
	}
	return c.JSON(fiber.Map{"design": layout, "notice": notice})
}

type backgroundRequest struct {
	Color string `json:"color"`
}

func (h *EditorHandler) SetBackground(c fiber.Ctx) error {
	var req backgroundRequest
	if err := decodeBody(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ws := h.ws(c)
	if err := editors.SetCanvasBackground(ws.Store, req.Color); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "color is required"})
	}
	return c.JSON(fiber.Map{"design": ws.Store.Layout()})
}

func (h *EditorHandler) Properties(c fiber.Ctx) error {
	return c.JSON(h.ws(c).Panel())
}

// Export отдаёт документ как JSON-вложение.
func (h *EditorHandler) Export(c fiber.Ctx) error {
	name, data, notice, err := export.Download(h.ws(c).Store.Layout())
	if errors.Is(err, export.ErrNoDesign) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error(), "notice": notice})
	}
	if err != nil {
		log.Printf("[EDITOR] export: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "export failed", "notice": notice})
	}

	c.Set("Content-Type", "application/json")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(data)
}

// ============================================================
// Elements
// ============================================================

func (h *EditorHandler) AddElement(c fiber.Ctx) error {
	var draft models.ElementDraft
	if err := decodeBody(c, &draft); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	el, err := h.ws(c).Store.AddElement(draft)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"element": el})
}

// AddCatalogElement добавляет элемент из библиотеки (text, shape, image).
func (h *EditorHandler) AddCatalogElement(c fiber.Ctx) error {
	entry, err := catalog.Element(c.Params("kind"))
	switch {
	case errors.Is(err, catalog.ErrComingSoon):
		return c.Status(http.StatusNotImplemented).JSON(fiber.Map{
			"error":  err.Error(),
			"notice": models.Info("Coming Soon", "Adding icons will be available in a future update."),
		})
	case err != nil:
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	el, err := h.ws(c).Store.AddElement(entry.Draft)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"element": el, "notice": entry.Notice})
}

// UpdateElement заменяет элемент целиком; id берётся из пути.
func (h *EditorHandler) UpdateElement(c fiber.Ctx) error {
	var el models.DesignElement
	if err := decodeBody(c, &el); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := el.Validate(); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ws := h.ws(c)
	updated, err := ws.Store.ModifyElement(c.Params("id"), func(current *models.DesignElement) error {
		*current = el
		return nil
	})
	if err != nil {
		return c.Status(editorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"element": updated})
}

type fieldPatch struct {
	Field string          `json:"field"`
	Part  string          `json:"part"`
	Value json.RawMessage `json:"value"`
}

// value возвращает значение как строку ввода: строки без кавычек,
// числа и прочее как есть.
func (p fieldPatch) value() string {
	var s string
	if err := json.Unmarshal(p.Value, &s); err == nil {
		return s
	}
	if string(p.Value) == "null" {
		return ""
	}
	return string(p.Value)
}

func (h *EditorHandler) PatchGeometry(c fiber.Ctx) error {
	return h.patch(c, func(ed *editors.Editor, id string, p fieldPatch) (models.DesignElement, error) {
		return ed.SetGeometry(id, editors.GeometryField(p.Field), p.value())
	})
}

func (h *EditorHandler) PatchText(c fiber.Ctx) error {
	return h.patch(c, func(ed *editors.Editor, id string, p fieldPatch) (models.DesignElement, error) {
		return ed.SetText(id, editors.TextField(p.Field), p.value())
	})
}

func (h *EditorHandler) PatchShadow(c fiber.Ctx) error {
	return h.patch(c, func(ed *editors.Editor, id string, p fieldPatch) (models.DesignElement, error) {
		part := p.Part
		if part == "" {
			part = p.Field
		}
		return ed.SetTextShadow(id, editors.ShadowPart(part), p.value())
	})
}

func (h *EditorHandler) PatchShape(c fiber.Ctx) error {
	return h.patch(c, func(ed *editors.Editor, id string, p fieldPatch) (models.DesignElement, error) {
		return ed.SetShape(id, editors.ShapeField(p.Field), p.value())
	})
}

func (h *EditorHandler) PatchImage(c fiber.Ctx) error {
	return h.patch(c, func(ed *editors.Editor, id string, p fieldPatch) (models.DesignElement, error) {
		return ed.SetImageSource(id, p.value())
	})
}

type patchFunc func(ed *editors.Editor, id string, p fieldPatch) (models.DesignElement, error)

func (h *EditorHandler) patch(c fiber.Ctx, apply patchFunc) error {
	var p fieldPatch
	if err := decodeBody(c, &p); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// параметры пути fiber ссылаются на буфер запроса
	updated, err := apply(h.ws(c).Editor, strings.Clone(c.Params("id")), p)
	if err != nil {
		return c.Status(editorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"element": updated})
}

// UploadImage принимает multipart-поле "file" и делает его источником
// изображения.
func (h *EditorHandler) UploadImage(c fiber.Ctx) error {
	ws := h.ws(c)
	id := strings.Clone(c.Params("id"))
	if _, ok := ws.Store.Element(id); !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": editors.ErrElementNotFound.Error()})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":  editors.ErrFileRead.Error(),
			"notice": models.Failure("File Read Error", "Could not read the selected file."),
		})
	}
	defer file.Close()

	updated, notice, err := ws.Editor.UploadImage(id, editors.Upload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		log.Printf("[EDITOR] upload %q: %v", fileHeader.Filename, err)
		return c.Status(editorStatus(err)).JSON(fiber.Map{"error": err.Error(), "notice": notice})
	}
	return c.JSON(fiber.Map{"element": updated, "notice": notice})
}

// ============================================================
// Canvas & selection
// ============================================================

type selectRequest struct {
	ElementID string `json:"elementId"`
}

// Select выделяет элемент; пустой id снимает выделение.
func (h *EditorHandler) Select(c fiber.Ctx) error {
	var req selectRequest
	if err := decodeBody(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ws := h.ws(c)
	if req.ElementID == "" {
		ws.Store.ClearSelection()
		return c.JSON(fiber.Map{"selectedId": ""})
	}
	if !ws.Store.Select(req.ElementID) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": editors.ErrElementNotFound.Error()})
	}
	return c.JSON(fiber.Map{"selectedId": req.ElementID})
}

type clickRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Click переводит клик по полотну (в пикселях) в выделение.
func (h *EditorHandler) Click(c fiber.Ctx) error {
	var req clickRequest
	if err := decodeBody(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	id, _ := h.ws(c).Click(req.X, req.Y)
	return c.JSON(fiber.Map{"selectedId": id})
}

type resizeRequest struct {
	Width float64 `json:"width"`
}

func (h *EditorHandler) Resize(c fiber.Ctx) error {
	var req resizeRequest
	if err := decodeBody(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"scale": h.ws(c).Resize(req.Width)})
}

// Render отдаёт кадр полотна: HTML по умолчанию, JSON при format=json.
func (h *EditorHandler) Render(c fiber.Ctx) error {
	frame := h.ws(c).Frame()
	if c.Query("format") == "json" {
		return c.JSON(frame)
	}
	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.SendString(frame.HTML())
}

// ============================================================
// Templates
// ============================================================

type templateSummary struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
	Elements    int    `json:"elements"`
}

func (h *EditorHandler) ListTemplates(c fiber.Ctx) error {
	all := catalog.Templates()
	out := make([]templateSummary, len(all))
	for i, t := range all {
		out[i] = templateSummary{Index: i, Description: t.Description, Elements: len(t.Elements)}
	}
	return c.JSON(fiber.Map{"templates": out})
}

func (h *EditorHandler) LoadTemplate(c fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid template index"})
	}
	draft, ok := catalog.Template(index)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "template not found"})
	}

	layout, err := h.ws(c).Store.Load(draft)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"design": layout,
		"notice": models.Info("Template Loaded", fmt.Sprintf("%q is now on the canvas.", layout.Description)),
	})
}

// ============================================================
// AI generation
// ============================================================

type generateRequest struct {
	Prompt string `json:"prompt"`
}

func (h *EditorHandler) AIState(c fiber.Ctx) error {
	return c.JSON(h.ws(c).Tool.Snapshot())
}

// Generate запускает генерацию и ждёт результат; выбор макета делается отдельным
// запросом.
func (h *EditorHandler) Generate(c fiber.Ctx) error {
	var req generateRequest
	if err := decodeBody(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	layouts, notice, err := h.ws(c).Tool.Generate(c.Context(), req.Prompt)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"layouts": layouts, "notice": notice})
	case errors.Is(err, aiflow.ErrNoLayouts):
		return c.JSON(fiber.Map{"layouts": []*models.DesignLayout{}, "notice": notice})
	case errors.Is(err, aiflow.ErrEmptyPrompt):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "notice": notice})
	case errors.Is(err, aiflow.ErrGenerationInProgress):
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": err.Error(), "notice": notice})
	case errors.Is(err, aiflow.ErrUnavailable):
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error(), "notice": notice})
	default:
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": err.Error(), "notice": notice})
	}
}

func (h *EditorHandler) UseGenerated(c fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid layout index"})
	}

	layout, notice, err := h.ws(c).Tool.Use(index)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error(), "notice": notice})
	}
	return c.JSON(fiber.Map{"design": layout, "notice": notice})
}

// ============================================================
// Helpers
// ============================================================

func decodeBody(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return errors.New("empty body")
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return errors.New("invalid json")
	}
	return nil
}

func editorStatus(err error) int {
	switch {
	case errors.Is(err, editors.ErrElementNotFound):
		return http.StatusNotFound
	case errors.Is(err, editors.ErrWrongType):
		return http.StatusUnprocessableEntity
	case errors.Is(err, editors.ErrInvalidFileType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, editors.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, editors.ErrUnknownField), errors.Is(err, editors.ErrInvalidValue), errors.Is(err, editors.ErrFileRead):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
