package store

import (
	"context"

	"github.com/studyscribe/studyscribe-api/internal/models"
)

// UpdateScheduleCell replaces the cell with a matching id. The grid is
// fully materialized at initialization, so this is always match-and-replace
// and never an insert; the slot identity (day, period) of the stored cell
// is kept even if the caller sent something else.
func (s *Store) UpdateScheduleCell(ctx context.Context, cell models.ScheduleCell) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.schedule {
		if s.schedule[i].ID == cell.ID {
			cell.Day = s.schedule[i].Day
			cell.Period = s.schedule[i].Period
			s.schedule[i] = cell
			s.persist(ctx, keySchedule, s.schedule)
			return
		}
	}
}
