package models

// ============================================================
// User-visible notices
// ============================================================

const (
	NoticeDefault     = "default"
	NoticeDestructive = "destructive"
)

// Notice: сообщение для пользователя (аналог toast в интерфейсе).
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

func Info(title, description string) Notice {
	return Notice{Title: title, Description: description, Variant: NoticeDefault}
}

func Failure(title, description string) Notice {
	return Notice{Title: title, Description: description, Variant: NoticeDestructive}
}
