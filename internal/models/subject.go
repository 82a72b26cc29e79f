package models

import "time"

// Resource types. A resource is always exactly one of these.
const (
	ResourcePDF   = "pdf"
	ResourceLink  = "link"
	ResourceNote  = "note"
	ResourceOther = "other"
)

// Subject is a user-defined course/topic container. It exclusively owns
// its resources: they are embedded and live and die with the subject.
type Subject struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Color       string     `json:"color"`
	Description string     `json:"description,omitempty"`
	Schedule    string     `json:"schedule,omitempty"`
	Resources   []Resource `json:"resources"`
}

// Resource is a study artifact belonging to one subject. Which optional
// field is set depends on Type: Path for pdf (object storage key), URL for
// link, Content for note.
type Resource struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	Path        string       `json:"path,omitempty"`
	URL         string       `json:"url,omitempty"`
	Content     string       `json:"content,omitempty"`
	SubjectID   string       `json:"subjectId"`
	CreatedAt   time.Time    `json:"createdAt"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Bookmarks   []Bookmark   `json:"bookmarks,omitempty"`
}

// Annotation is a positioned note on one page of a PDF resource.
type Annotation struct {
	ID        string    `json:"id"`
	Page      int       `json:"page"`
	Text      string    `json:"text"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// Bookmark marks one page of a PDF resource.
type Bookmark struct {
	ID        string    `json:"id"`
	Page      int       `json:"page"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

func ValidResourceType(t string) bool {
	switch t {
	case ResourcePDF, ResourceLink, ResourceNote, ResourceOther:
		return true
	}
	return false
}
