package editors

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"blueprint/internal/blueprint/models"
	"blueprint/internal/blueprint/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loaded(t *testing.T, drafts ...models.ElementDraft) (*store.Store, *models.DesignLayout) {
	t.Helper()
	s := store.New(nil)
	layout, err := s.Load(models.LayoutDraft{Description: "test", Elements: drafts})
	require.NoError(t, err)
	return s, layout
}

func draft(kind string, style models.Style) models.ElementDraft {
	return models.ElementDraft{Type: kind, Size: models.Size{Width: 100, Height: 50}, Style: style}
}

// ============================================================
// Text shadow
// ============================================================

func TestTextShadowRoundTrip(t *testing.T) {
	s := ParseTextShadow("2px 3px 5px #ff0000")
	assert.Equal(t, TextShadow{OffsetX: "2px", OffsetY: "3px", BlurRadius: "5px", Color: "#ff0000"}, s)
	assert.Equal(t, "2px 3px 5px #ff0000", s.String())
}

func TestTextShadowZeroComposesNone(t *testing.T) {
	s := ParseTextShadow("2px 3px 5px #ff0000").
		With(ShadowOffsetX, "0px").
		With(ShadowOffsetY, "0px").
		With(ShadowBlurRadius, "0px")
	assert.Equal(t, NoShadow, s.String())

	assert.Equal(t, NoShadow, TextShadow{OffsetX: "0", OffsetY: "0em", BlurRadius: "0.0px", Color: "red"}.String())
	assert.Equal(t, "0px 0px 1px red", TextShadow{OffsetX: "0px", OffsetY: "0px", BlurRadius: "1px", Color: "red"}.String())
}

func TestTextShadowMalformedFallsBack(t *testing.T) {
	for _, raw := range []string{"", "none", "2px 2px red", "1px 2px 3px 4px red", "rgba(0, 0, 0, 0.5) 1px 1px 2px"} {
		assert.Equal(t, DefaultShadow, ParseTextShadow(raw), raw)
	}
	assert.Equal(t, "1px", ParseTextShadow("  1px   2px  3px   blue ").OffsetX)
}

func TestSetTextShadowWritesComposite(t *testing.T) {
	s, layout := loaded(t, draft(models.TypeText, models.Style{"color": "#111111"}))
	ed := New(s)

	el, err := ed.SetTextShadow(layout.Elements[0].ID, ShadowOffsetX, "4px")
	require.NoError(t, err)
	assert.Equal(t, "4px 0px 0px #000000", el.Style["textShadow"])
	assert.Equal(t, "#111111", el.Style["color"], "style is merged, not replaced")

	el, err = ed.SetTextShadow(el.ID, ShadowOffsetX, "0px")
	require.NoError(t, err)
	assert.Equal(t, NoShadow, el.Style["textShadow"])

	stored, _ := s.Element(el.ID)
	assert.Equal(t, NoShadow, stored.Style["textShadow"])

	_, err = ed.SetTextShadow(el.ID, "spread", "1px")
	assert.ErrorIs(t, err, ErrUnknownField)
}

// ============================================================
// Geometry
// ============================================================

func TestCoerceNumber(t *testing.T) {
	assert.Equal(t, 0.0, CoerceNumber(""))
	assert.Equal(t, 0.0, CoerceNumber("abc"))
	assert.Equal(t, 12.5, CoerceNumber("12.5"))
	assert.Equal(t, -3.0, CoerceNumber("-3"))
	assert.Equal(t, 7.0, CoerceNumber("7px"))
}

func TestSetGeometry(t *testing.T) {
	s, layout := loaded(t, draft(models.TypeShape, nil))
	ed := New(s)
	el := layout.Elements[0]

	el, err := ed.SetGeometry(el.ID, FieldX, "120")
	require.NoError(t, err)
	el, err = ed.SetGeometry(el.ID, FieldY, "not a number")
	require.NoError(t, err)
	el, err = ed.SetGeometry(el.ID, FieldWidth, "")
	require.NoError(t, err)
	el, err = ed.SetGeometry(el.ID, FieldHeight, "33")
	require.NoError(t, err)

	stored, ok := s.Element(el.ID)
	require.True(t, ok)
	assert.Equal(t, models.Position{X: 120, Y: 0}, stored.Position)
	assert.Equal(t, models.Size{Width: 0, Height: 33}, stored.Size)

	_, err = ed.SetGeometry(el.ID, "depth", "1")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestEditorOnStaleElement(t *testing.T) {
	s, layout := loaded(t, draft(models.TypeShape, nil))
	_, err := s.Load(models.LayoutDraft{Description: "other"})
	require.NoError(t, err)

	_, err = New(s).SetGeometry(layout.Elements[0].ID, FieldX, "5")
	assert.ErrorIs(t, err, ErrElementNotFound)
	assert.Empty(t, s.Layout().Elements)
}

// ============================================================
// Text
// ============================================================

func TestSetTextFields(t *testing.T) {
	s, layout := loaded(t, draft(models.TypeText, models.Style{"textShadow": "1px 1px 1px red"}))
	ed := New(s)
	el := layout.Elements[0]

	el, err := ed.SetText(el.ID, TextContent, "Hello")
	require.NoError(t, err)
	el, err = ed.SetText(el.ID, TextFontSize, "24")
	require.NoError(t, err)
	el, err = ed.SetText(el.ID, TextColor, "#ff00ff")
	require.NoError(t, err)
	el, err = ed.SetText(el.ID, TextFontWeight, "700")
	require.NoError(t, err)
	el, err = ed.SetText(el.ID, TextAlign, "justify")
	require.NoError(t, err)
	el, err = ed.SetText(el.ID, TextLineHeight, "1.5")
	require.NoError(t, err)

	stored, _ := s.Element(el.ID)
	assert.Equal(t, "Hello", stored.Content)
	assert.Equal(t, models.Style{
		"textShadow": "1px 1px 1px red",
		"fontSize":   "24px",
		"color":      "#ff00ff",
		"fontWeight": "700",
		"textAlign":  "justify",
		"lineHeight": "1.5",
	}, stored.Style)

	el, err = ed.SetText(el.ID, TextFontSize, "")
	require.NoError(t, err)
	assert.NotContains(t, el.Style, "fontSize")

	_, err = ed.SetText(el.ID, TextFontWeight, "950")
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = ed.SetText(el.ID, TextAlign, "middle")
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = ed.SetText(el.ID, "fontStretch", "1")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestEditorsRejectWrongType(t *testing.T) {
	s, layout := loaded(t, draft(models.TypeShape, nil), draft(models.TypeText, nil))
	ed := New(s)

	_, err := ed.SetText(layout.Elements[0].ID, TextContent, "x")
	assert.ErrorIs(t, err, ErrWrongType)
	_, err = ed.SetShape(layout.Elements[1].ID, ShapeOpacity, "0.5")
	assert.ErrorIs(t, err, ErrWrongType)
	_, err = ed.SetImageSource(layout.Elements[1].ID, "https://x")
	assert.ErrorIs(t, err, ErrWrongType)
	_, notice, err := ed.UploadImage(layout.Elements[0].ID, Upload{Filename: "a.png", ContentType: "image/png", Body: bytes.NewReader(pngHeader)})
	assert.ErrorIs(t, err, ErrWrongType)
	assert.Equal(t, "Wrong Element", notice.Title)
}

func TestInterleavedEditsKeepEachOther(t *testing.T) {
	s, layout := loaded(t, draft(models.TypeText, models.Style{"color": "#111111"}))
	ed := New(s)
	id := layout.Elements[0].ID

	// оба запроса прочитали элемент до того, как кто-то из них записал
	first, _ := s.Element(id)
	second, _ := s.Element(id)

	_, err := ed.SetText(second.ID, TextColor, "#ff0000")
	require.NoError(t, err)
	_, err = ed.SetText(first.ID, TextFontSize, "32")
	require.NoError(t, err)

	stored, _ := s.Element(id)
	assert.Equal(t, models.Style{"color": "#ff0000", "fontSize": "32px"}, stored.Style)
}

func TestConcurrentEditsAreNotLost(t *testing.T) {
	s, layout := loaded(t, draft(models.TypeText, nil))
	ed := New(s)
	id := layout.Elements[0].ID

	fields := []TextField{TextColor, TextFontFamily, TextLineHeight, TextLetterSpacing}
	var wg sync.WaitGroup
	for i, field := range fields {
		wg.Add(1)
		go func(field TextField, value string) {
			defer wg.Done()
			_, err := ed.SetText(id, field, value)
			assert.NoError(t, err)
		}(field, strconv.Itoa(i+1))
	}
	wg.Wait()

	stored, _ := s.Element(id)
	assert.Len(t, stored.Style, len(fields))
	for i, field := range fields {
		assert.Equal(t, strconv.Itoa(i+1), stored.Style[string(field)])
	}
}

func TestRejectedEditLeavesElementUnchanged(t *testing.T) {
	s, layout := loaded(t, draft(models.TypeText, models.Style{"color": "#111111"}))
	before := s.Layout()

	_, err := New(s).SetText(layout.Elements[0].ID, TextFontWeight, "950")
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, before, s.Layout())
}

// ============================================================
// Shape
// ============================================================

func TestSetShapeFields(t *testing.T) {
	s, layout := loaded(t, draft(models.TypeShape, models.Style{"boxShadow": "0 0 2px black"}))
	ed := New(s)
	el := layout.Elements[0]

	el, err := ed.SetShape(el.ID, ShapeBackgroundColor, "#abcdef")
	require.NoError(t, err)
	el, err = ed.SetShape(el.ID, ShapeBorderWidth, "3")
	require.NoError(t, err)
	el, err = ed.SetShape(el.ID, ShapeOpacity, "1.7")
	require.NoError(t, err)
	el, err = ed.SetShape(el.ID, ShapeBorderRadius, "50%")
	require.NoError(t, err)

	assert.Equal(t, "#abcdef", el.Style["backgroundColor"])
	assert.Equal(t, "3px", el.Style["borderWidth"])
	assert.Equal(t, 1.0, el.Style["opacity"])
	assert.Equal(t, "50%", el.Style["borderRadius"])
	assert.Equal(t, "0 0 2px black", el.Style["boxShadow"])

	el, err = ed.SetShape(el.ID, ShapeBorderWidth, "")
	require.NoError(t, err)
	assert.Equal(t, "0px", el.Style["borderWidth"])

	_, err = ed.SetShape(el.ID, ShapeOpacity, "opaque")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

// ============================================================
// Image
// ============================================================

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestUploadImage(t *testing.T) {
	s, layout := loaded(t, draft(models.TypeImage, nil))
	ed := New(s)

	el, notice, err := ed.UploadImage(layout.Elements[0].ID, Upload{
		Filename:    "cat.png",
		ContentType: "image/png",
		Body:        bytes.NewReader(pngHeader),
	})
	require.NoError(t, err)
	assert.Equal(t, models.NoticeDefault, notice.Variant)
	assert.Contains(t, notice.Description, "cat.png")
	assert.True(t, strings.HasPrefix(el.Source, "data:image/png;base64,"))

	stored, _ := s.Element(el.ID)
	assert.Equal(t, el.Source, stored.Source)
}

func TestUploadImageSniffsMissingContentType(t *testing.T) {
	s, layout := loaded(t, draft(models.TypeImage, nil))
	el, _, err := New(s).UploadImage(layout.Elements[0].ID, Upload{Filename: "x", Body: bytes.NewReader(pngHeader)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(el.Source, "data:image/png;base64,"))
}

func TestUploadNonImageLeavesDocumentUnchanged(t *testing.T) {
	s, layout := loaded(t, draft(models.TypeImage, nil))
	before := s.Layout()
	ed := New(s)

	_, notice, err := ed.UploadImage(layout.Elements[0].ID, Upload{
		Filename:    "notes.txt",
		ContentType: "text/plain",
		Body:        strings.NewReader("hello"),
	})
	assert.ErrorIs(t, err, ErrInvalidFileType)
	assert.Equal(t, models.NoticeDestructive, notice.Variant)
	assert.Equal(t, "Invalid File Type", notice.Title)
	assert.Equal(t, before, s.Layout())

	_, _, err = ed.UploadImage(layout.Elements[0].ID, Upload{Filename: "plain", Body: strings.NewReader("just text")})
	assert.ErrorIs(t, err, ErrInvalidFileType)
	assert.Equal(t, before, s.Layout())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestUploadReadFailure(t *testing.T) {
	s, layout := loaded(t, draft(models.TypeImage, nil))
	before := s.Layout()

	_, notice, err := New(s).UploadImage(layout.Elements[0].ID, Upload{Filename: "a.png", ContentType: "image/png", Body: failingReader{}})
	assert.ErrorIs(t, err, ErrFileRead)
	assert.Equal(t, "File Read Error", notice.Title)
	assert.Equal(t, before, s.Layout())
}

// ============================================================
// Panel & canvas form
// ============================================================

func TestBuildCanvasForm(t *testing.T) {
	hex := BuildCanvasForm("#F0F8FF")
	assert.True(t, hex.Representable)
	assert.Equal(t, "#F0F8FF", hex.Picker)

	theme := BuildCanvasForm("hsl(var(--card))")
	assert.False(t, theme.Representable)
	assert.Equal(t, PickerFallback, theme.Picker)
	assert.Equal(t, "hsl(var(--card))", theme.Stored)
	assert.Contains(t, theme.Readout, "hsl(var(--card))")

	empty := BuildCanvasForm("")
	assert.Equal(t, models.DefaultCanvasBackground, empty.Stored)
}

func TestSetCanvasBackgroundRequiresInput(t *testing.T) {
	s := store.New(nil)
	assert.ErrorIs(t, SetCanvasBackground(s, "  "), ErrInvalidValue)
	assert.Nil(t, s.Layout())

	require.NoError(t, SetCanvasBackground(s, "#000000"))
	assert.Equal(t, "#000000", s.Layout().CanvasBackgroundColor)
}

func TestBuildPanel(t *testing.T) {
	none := BuildPanel(nil, "#ffffff")
	require.NotNil(t, none.Canvas)
	assert.Nil(t, none.Geometry)

	text := models.DesignElement{ID: "t", Type: models.TypeText, Size: models.Size{Width: 5, Height: 6},
		Style: models.Style{"fontSize": "24px", "textShadow": "1px 2px 3px red"}}
	p := BuildPanel(&text, "")
	require.NotNil(t, p.Text)
	require.NotNil(t, p.Geometry)
	assert.Equal(t, "24", p.Text.FontSize)
	assert.Equal(t, "Inter", p.Text.FontFamily)
	assert.Equal(t, "400", p.Text.FontWeight)
	assert.Equal(t, "left", p.Text.TextAlign)
	assert.Equal(t, "#000000", p.Text.Color)
	assert.Equal(t, "3px", p.Text.Shadow.BlurRadius)
	assert.Equal(t, 5.0, p.Geometry.Width)

	shape := models.DesignElement{ID: "s", Type: models.TypeShape, Style: models.Style{"opacity": 0.25, "borderWidth": "2px"}}
	p = BuildPanel(&shape, "")
	require.NotNil(t, p.Shape)
	assert.Equal(t, 25, p.Shape.OpacityPercent)
	assert.Equal(t, 2.0, p.Shape.BorderWidth)
	assert.Equal(t, "#cccccc", p.Shape.BackgroundColor)

	unknown := models.DesignElement{ID: "u", Type: "sticker"}
	p = BuildPanel(&unknown, "")
	assert.Equal(t, "No specific editor for type: sticker", p.Notice)
	assert.NotNil(t, p.Geometry)
}
