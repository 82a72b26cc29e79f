package store

import (
	"fmt"

	"github.com/studyscribe/studyscribe-api/internal/models"
)

const defaultPage = "subjects"

// defaultSubjects is the sample data a fresh install starts with.
func defaultSubjects() []models.Subject {
	return []models.Subject{
		{
			ID:          "1",
			Name:        "Computer Science",
			Color:       "#9B87F5",
			Description: "Core computer science courses",
			Resources:   []models.Resource{},
		},
		{
			ID:          "2",
			Name:        "Mathematics",
			Color:       "#7E69AB",
			Description: "Mathematics and statistical methods",
			Resources:   []models.Resource{},
		},
	}
}

// defaultSchedule materializes the full empty grid: 48 cells covering
// every (day, period) pair, with stable ids.
func defaultSchedule() []models.ScheduleCell {
	cells := make([]models.ScheduleCell, models.ScheduleCells)
	for i := range cells {
		cells[i] = models.ScheduleCell{
			ID:     fmt.Sprintf("schedule-%d", i),
			Day:    i / models.SchedulePeriods,
			Period: i%models.SchedulePeriods + 1,
		}
	}
	return cells
}
