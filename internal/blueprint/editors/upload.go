package editors

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"blueprint/internal/blueprint/models"
)

// ============================================================
// Image upload
// ============================================================

// MaxUploadBytes ограничивает размер загружаемого изображения.
const MaxUploadBytes = 10 << 20

var (
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileRead        = errors.New("could not read the selected file")
	ErrFileTooLarge    = errors.New("file too large")
)

// Upload: загруженный пользователем файл.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// UploadImage читает файл в data URI и делает его источником изображения.
// При любой ошибке документ не меняется, а уведомление описывает причину.
func (e *Editor) UploadImage(id string, up Upload) (models.DesignElement, models.Notice, error) {
	contentType := strings.TrimSpace(up.ContentType)
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return models.DesignElement{}, invalidFileNotice(), fmt.Errorf("%w: %s", ErrInvalidFileType, contentType)
	}

	data, err := readLimited(up.Body)
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			return models.DesignElement{}, models.Failure("File Too Large", "Please select an image smaller than 10 MB."), err
		}
		return models.DesignElement{}, models.Failure("File Read Error", "Could not read the selected file."), err
	}

	// без заголовка тип определяется по содержимому
	if contentType == "" {
		contentType = http.DetectContentType(data)
		if !strings.HasPrefix(contentType, "image/") {
			return models.DesignElement{}, invalidFileNotice(), fmt.Errorf("%w: %s", ErrInvalidFileType, contentType)
		}
	}
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	source := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	updated, err := e.SetImageSource(id, source)
	switch {
	case errors.Is(err, ErrWrongType):
		return models.DesignElement{}, models.Failure("Wrong Element", "Images can only be uploaded to image elements."), err
	case err != nil:
		return models.DesignElement{}, models.Failure("Upload Failed", "The element is no longer part of the current design."), err
	}
	return updated, models.Info("Image Uploaded", fmt.Sprintf("%s has been set as the image source.", up.Filename)), nil
}

func invalidFileNotice() models.Notice {
	return models.Failure("Invalid File Type", "Please select an image file (e.g., PNG, JPG, GIF).")
}

func readLimited(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, ErrFileRead
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	if len(data) > MaxUploadBytes {
		return nil, ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrFileRead)
	}
	return data, nil
}
