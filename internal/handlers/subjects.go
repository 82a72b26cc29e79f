package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyscribe/studyscribe-api/internal/models"
	"github.com/studyscribe/studyscribe-api/internal/services"
	"github.com/studyscribe/studyscribe-api/internal/store"
)

// Request/Response types
type CreateSubjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Color       string `json:"color" binding:"required"`
	Description string `json:"description"`
	Schedule    string `json:"schedule"`
}

type UpdateSubjectRequest struct {
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Description *string `json:"description"`
	Schedule    *string `json:"schedule"`
}

// ListSubjects returns all subjects with their embedded resources
func ListSubjects(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    st.Subjects(),
		})
	}
}

// GetSubject returns a single subject
func GetSubject(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, ok := st.Subject(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Subject not found",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    subject,
		})
	}
}

// CreateSubject creates a new subject with an empty resource list
func CreateSubject(st *store.Store, search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSubjectRequest
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

		subject := st.AddSubject(c.Request.Context(), store.SubjectFields{
			Name:        req.Name,
			Color:       req.Color,
			Description: req.Description,
			Schedule:    req.Schedule,
		})

		if search != nil {
			go func(s models.Subject) {
				if err := search.IndexSubject(s); err != nil {
					log.Printf("failed to index subject %s: %v", s.ID, err)
				}
			}(subject)
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    subject,
		})
	}
}

// UpdateSubject replaces fields of an existing subject
func UpdateSubject(st *store.Store, search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, ok := st.Subject(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Subject not found",
				},
			})
			return
		}

		var req UpdateSubjectRequest
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

		// Update fields if provided
		if req.Name != nil {
			subject.Name = *req.Name
		}
		if req.Color != nil {
			subject.Color = *req.Color
		}
		if req.Description != nil {
			subject.Description = *req.Description
		}
		if req.Schedule != nil {
			subject.Schedule = *req.Schedule
		}

		st.UpdateSubject(c.Request.Context(), subject)

		if search != nil {
			go func(s models.Subject) {
				if err := search.IndexSubject(s); err != nil {
					log.Printf("failed to index subject %s: %v", s.ID, err)
				}
			}(subject)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    subject,
		})
	}
}

// DeleteSubject removes a subject; its resources go with it and study
// plans referencing it are cascade-deleted
func DeleteSubject(st *store.Store, search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		subject, ok := st.Subject(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Subject not found",
				},
			})
			return
		}

		cascadedPlans := 0
		for _, p := range st.StudyPlans() {
			if p.SubjectID == id {
				cascadedPlans++
			}
		}

		st.DeleteSubject(c.Request.Context(), id)

		if search != nil {
			go func() {
				if err := search.DeleteSubject(id); err != nil {
					log.Printf("failed to deindex subject %s: %v", id, err)
				}
				for _, r := range subject.Resources {
					if err := search.DeleteResource(r.ID); err != nil {
						log.Printf("failed to deindex resource %s: %v", r.ID, err)
					}
				}
			}()
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Subject deleted successfully",
			"data": gin.H{
				"deletedResources":   len(subject.Resources),
				"cascadedStudyPlans": cascadedPlans,
			},
		})
	}
}
