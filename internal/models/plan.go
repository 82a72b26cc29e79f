package models

import "time"

// Study plan priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// StudyPlan is a scheduled, prioritized study task tied to a date and a
// subject. SubjectID is a weak reference: deleting the subject cascades to
// its plans, but a plan never owns the subject.
type StudyPlan struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	SubjectID string    `json:"subjectId"`
	Date      time.Time `json:"date"`
	Duration  int       `json:"duration"` // minutes
	Completed bool      `json:"completed"`
	Priority  string    `json:"priority"`
}

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
