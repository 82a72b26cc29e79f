package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyscribe/studyscribe-api/internal/models"
	"github.com/studyscribe/studyscribe-api/internal/store"
)

type UpdateScheduleCellRequest struct {
	Subject   string `json:"subject"`
	Room      string `json:"room"`
	Professor string `json:"professor"`
	Notes     string `json:"notes"`
}

// GetSchedule returns the full 6-day x 8-period timetable grid
func GetSchedule(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    st.Schedule(),
		})
	}
}

// GetScheduleMeta returns the grid's display labels: weekday names and
// the wall-clock span of each period.
func GetScheduleMeta() gin.HandlerFunc {
	days := make([]string, models.ScheduleDays)
	for i := range days {
		days[i] = models.DayName(i)
	}
	periods := make([]string, models.SchedulePeriods)
	for i := range periods {
		periods[i] = models.PeriodTime(i + 1)
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"days":    days,
				"periods": periods,
			},
		})
	}
}

// UpdateScheduleCell updates the free-text fields of one grid cell. The
// cell's (day, period) slot is fixed; only the labels change.
func UpdateScheduleCell(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var req UpdateScheduleCellRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": err.Error(),
				},
			})
			return
		}

		found := false
		for _, cell := range st.Schedule() {
			if cell.ID == id {
				found = true
				break
			}
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Schedule cell not found",
				},
			})
			return
		}

		st.UpdateScheduleCell(c.Request.Context(), models.ScheduleCell{
			ID:        id,
			Subject:   req.Subject,
			Room:      req.Room,
			Professor: req.Professor,
			Notes:     req.Notes,
		})

		for _, cell := range st.Schedule() {
			if cell.ID == id {
				c.JSON(http.StatusOK, gin.H{"success": true, "data": cell})
				return
			}
		}
	}
}
