package export

import (
	"encoding/json"
	"testing"

	"blueprint/internal/blueprint/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	assert.Equal(t, "birthday_invitation.json", Filename("Birthday Invitation"))
	assert.Equal(t, "a_b_c.json", Filename("A \t B\n\nC"))
	assert.Equal(t, "_leading.json", Filename("  Leading"))
	assert.Equal(t, "blueprint_design.json", Filename(""))
}

func TestMarshalKeepsIdentifiers(t *testing.T) {
	layout := &models.DesignLayout{
		ID:                    "layout-1",
		Description:           "Poster",
		CanvasBackgroundColor: "#fff",
		Elements: []models.DesignElement{
			{ID: "el-1", Type: models.TypeText, Size: models.Size{Width: 1, Height: 1}, Content: "hi", Style: models.Style{"color": "red"}},
		},
	}

	data, err := Marshal(layout)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"id\": \"layout-1\"")

	var back models.DesignLayout
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "layout-1", back.ID)
	assert.Equal(t, "el-1", back.Elements[0].ID)
	assert.Equal(t, "red", back.Elements[0].Style["color"])
}

func TestDownloadWithoutDesign(t *testing.T) {
	_, _, notice, err := Download(nil)
	assert.ErrorIs(t, err, ErrNoDesign)
	assert.Equal(t, models.NoticeDestructive, notice.Variant)

	name, data, notice, err := Download(&models.DesignLayout{ID: "x", Description: "My Design"})
	require.NoError(t, err)
	assert.Equal(t, "my_design.json", name)
	assert.NotEmpty(t, data)
	assert.Equal(t, "Design Downloaded", notice.Title)
}
