package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyscribe/studyscribe-api/internal/store"
)

type SetActiveSubjectRequest struct {
	SubjectID string `json:"subjectId"` // "" clears the selection
}

type SetActivePageRequest struct {
	Page string `json:"page" binding:"required"`
}

// GetState returns one consistent snapshot of everything a client needs to
// render: all collections plus the transient selection state.
func GetState(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var activeSubjectID *string
		if active, ok := st.ActiveSubject(); ok {
			id := active.ID
			activeSubjectID = &id
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"subjects":        st.Subjects(),
				"schedule":        st.Schedule(),
				"studyPlans":      st.StudyPlans(),
				"chatHistory":     st.ChatHistory(),
				"activeSubjectId": activeSubjectID,
				"activePage":      st.ActivePage(),
				"apiKeySet":       st.APIKey() != "",
			},
		})
	}
}

// SetActiveSubject records the session's selected subject
func SetActiveSubject(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetActiveSubjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		st.SetActiveSubject(req.SubjectID)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// SetActivePage records the session's navigation page
func SetActivePage(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetActivePageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		st.SetActivePage(req.Page)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
