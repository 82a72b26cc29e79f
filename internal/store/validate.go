package store

import "github.com/studyscribe/studyscribe-api/internal/models"

// Load-time shape validation. Stored blobs carry no schema, so each
// collection is checked before it is trusted; anything invalid falls back
// to the collection default.

func validSubjects(subjects []models.Subject) bool {
	seen := make(map[string]bool, len(subjects))
	for i := range subjects {
		id := subjects[i].ID
		if id == "" || seen[id] {
			return false
		}
		seen[id] = true
		if subjects[i].Resources == nil {
			subjects[i].Resources = []models.Resource{}
		}
	}
	return true
}

// validSchedule accepts only a complete grid: exactly one cell per
// (day, period) pair.
func validSchedule(cells []models.ScheduleCell) bool {
	if len(cells) != models.ScheduleCells {
		return false
	}
	seen := make(map[[2]int]bool, len(cells))
	for _, c := range cells {
		if c.ID == "" || c.Day < 0 || c.Day >= models.ScheduleDays || c.Period < 1 || c.Period > models.SchedulePeriods {
			return false
		}
		slot := [2]int{c.Day, c.Period}
		if seen[slot] {
			return false
		}
		seen[slot] = true
	}
	return true
}

func validPlans(plans []models.StudyPlan) bool {
	for _, p := range plans {
		if p.ID == "" {
			return false
		}
	}
	return true
}

func validChat(messages []models.ChatMessage) bool {
	for _, m := range messages {
		if m.ID == "" || (m.Role != models.RoleUser && m.Role != models.RoleAssistant) {
			return false
		}
	}
	return true
}
