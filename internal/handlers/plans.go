package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyscribe/studyscribe-api/internal/models"
	"github.com/studyscribe/studyscribe-api/internal/store"
)

type CreatePlanRequest struct {
	Title     string    `json:"title" binding:"required"`
	SubjectID string    `json:"subjectId" binding:"required"`
	Date      time.Time `json:"date" binding:"required"`
	Duration  int       `json:"duration" binding:"required,gt=0"`
	Priority  string    `json:"priority" binding:"required"`
}

type UpdatePlanRequest struct {
	Title     *string    `json:"title"`
	SubjectID *string    `json:"subjectId"`
	Date      *time.Time `json:"date"`
	Duration  *int       `json:"duration"`
	Completed *bool      `json:"completed"`
	Priority  *string    `json:"priority"`
}

// ListStudyPlans returns every study plan, optionally filtered by subject
func ListStudyPlans(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		plans := st.StudyPlans()

		if subjectID := c.Query("subject_id"); subjectID != "" {
			filtered := plans[:0]
			for _, p := range plans {
				if p.SubjectID == subjectID {
					filtered = append(filtered, p)
				}
			}
			plans = filtered
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": plans})
	}
}

// CreateStudyPlan adds a new plan
func CreateStudyPlan(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		if !models.ValidPriority(req.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Priority must be low, medium, or high"})
			return
		}

		plan := st.AddStudyPlan(c.Request.Context(), store.PlanFields{
			Title:     req.Title,
			SubjectID: req.SubjectID,
			Date:      req.Date,
			Duration:  req.Duration,
			Priority:  req.Priority,
		})

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": plan})
	}
}

// UpdateStudyPlan edits a plan; toggling completion goes through here too
func UpdateStudyPlan(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var existing *models.StudyPlan
		for _, p := range st.StudyPlans() {
			if p.ID == id {
				plan := p
				existing = &plan
				break
			}
		}
		if existing == nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Study plan not found"})
			return
		}

		var req UpdatePlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		if req.Title != nil {
			existing.Title = *req.Title
		}
		if req.SubjectID != nil {
			existing.SubjectID = *req.SubjectID
		}
		if req.Date != nil {
			existing.Date = *req.Date
		}
		if req.Duration != nil {
			existing.Duration = *req.Duration
		}
		if req.Completed != nil {
			existing.Completed = *req.Completed
		}
		if req.Priority != nil {
			if !models.ValidPriority(*req.Priority) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Priority must be low, medium, or high"})
				return
			}
			existing.Priority = *req.Priority
		}

		st.UpdateStudyPlan(c.Request.Context(), *existing)

		c.JSON(http.StatusOK, gin.H{"success": true, "data": existing})
	}
}

// DeleteStudyPlan removes a plan
func DeleteStudyPlan(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		found := false
		for _, p := range st.StudyPlans() {
			if p.ID == id {
				found = true
				break
			}
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Study plan not found"})
			return
		}

		st.DeleteStudyPlan(c.Request.Context(), id)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
