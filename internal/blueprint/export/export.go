package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"blueprint/internal/blueprint/models"
)

// ============================================================
// JSON export
// ============================================================

const DefaultFilename = "blueprint_design"

var (
	ErrNoDesign = errors.New("there is no active design to download")

	whitespace = regexp.MustCompile(`\s+`)
)

// Filename строит имя файла из описания макета: пробельные последовательности
// заменяются на "_", всё переводится в нижний регистр.
func Filename(description string) string {
	name := strings.ToLower(whitespace.ReplaceAllString(description, "_"))
	if name == "" {
		name = DefaultFilename
	}
	return name + ".json"
}

// Marshal сериализует документ целиком, включая назначенные идентификаторы.
func Marshal(layout *models.DesignLayout) ([]byte, error) {
	if layout == nil {
		return nil, ErrNoDesign
	}
	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal design: %w", err)
	}
	return data, nil
}

// Download возвращает имя файла, содержимое и уведомление для пользователя.
func Download(layout *models.DesignLayout) (string, []byte, models.Notice, error) {
	if layout == nil {
		return "", nil, models.Failure("No Design to Download", "There is no active design to download."), ErrNoDesign
	}
	data, err := Marshal(layout)
	if err != nil {
		return "", nil, models.Failure("Download Failed", "Could not download the design. See console for details."), err
	}
	return Filename(layout.Description), data, models.Info("Design Downloaded", "Your design layout has been downloaded as a JSON file."), nil
}
