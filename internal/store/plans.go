package store

import (
	"context"
	"time"

	"github.com/studyscribe/studyscribe-api/internal/ids"
	"github.com/studyscribe/studyscribe-api/internal/models"
)

// PlanFields carries the caller-supplied parts of a new study plan.
type PlanFields struct {
	Title     string
	SubjectID string
	Date      time.Time
	Duration  int
	Completed bool
	Priority  string
}

// AddStudyPlan creates a plan with a fresh id and appends it.
func (s *Store) AddStudyPlan(ctx context.Context, fields PlanFields) models.StudyPlan {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan := models.StudyPlan{
		ID:        ids.New(),
		Title:     fields.Title,
		SubjectID: fields.SubjectID,
		Date:      fields.Date,
		Duration:  fields.Duration,
		Completed: fields.Completed,
		Priority:  fields.Priority,
	}
	s.plans = append(s.plans, plan)
	s.persist(ctx, keyPlans, s.plans)
	return plan
}

// UpdateStudyPlan replaces the plan with a matching id wholesale. Unknown
// ids are a no-op.
func (s *Store) UpdateStudyPlan(ctx context.Context, plan models.StudyPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plans {
		if s.plans[i].ID == plan.ID {
			s.plans[i] = plan
			s.persist(ctx, keyPlans, s.plans)
			return
		}
	}
}

// DeleteStudyPlan removes the plan with the given id.
func (s *Store) DeleteStudyPlan(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plans {
		if s.plans[i].ID == id {
			s.plans = append(s.plans[:i], s.plans[i+1:]...)
			s.persist(ctx, keyPlans, s.plans)
			return
		}
	}
}
