package api

import "time"

// Material statuses as the backend's listing views group them.
const (
	StatusQueue     = "queue"
	StatusReading   = "reading"
	StatusCompleted = "completed"
	StatusAll       = "all"
)

// Material types the tracker knows about.
const (
	TypeBook    = "book"
	TypeLecture = "lecture"
	TypeCourse  = "course"
)

// MaxNoteContent is the backend's note content cap.
const MaxNoteContent = 65536

// Material is a tracked item notes attach to. Identifiers are opaque
// strings owned by the backend.
type Material struct {
	ID         string    `json:"material_id"`
	Title      string    `json:"title"`
	Authors    string    `json:"authors"`
	Pages      int       `json:"pages"`
	Type       string    `json:"material_type"`
	Tags       string    `json:"tags"`
	Link       string    `json:"link,omitempty"`
	AddedAt    time.Time `json:"added_at"`
	IsOutlined bool      `json:"is_outlined"`
}

// Note is a user annotation on a material. Chapter 0 means the note is
// not tied to a chapter; Page is a page for books and a minute for
// lectures and courses.
type Note struct {
	ID         string    `json:"note_id"`
	MaterialID string    `json:"material_id"`
	Number     int       `json:"note_number"`
	LinkID     string    `json:"link_id,omitempty"`
	Content    string    `json:"content"`
	Chapter    int       `json:"chapter"`
	Page       int       `json:"page"`
	Tags       []string  `json:"tags,omitempty"`
	AddedAt    time.Time `json:"added_at"`
}

// NotesPage is one page of a notes listing. The backend owns the
// pagination math; the client only passes page numbers through.
type NotesPage struct {
	Notes      []Note `json:"notes"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Total      int    `json:"total"`
}

// NewNote carries the fields of a note being created.
type NewNote struct {
	MaterialID string
	Content    string
	Chapter    int
	Page       int
}
