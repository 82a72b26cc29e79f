package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyscribe/studyscribe-api/internal/services"
)

// SearchResources runs a full-text query over indexed resources.
// Pass subject_id to scope the results to one subject.
func SearchResources(search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		subjectID := c.Query("subject_id")

		result, err := search.SearchResources(query, subjectID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Search failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": result.Hits})
	}
}

// SearchSubjects runs a full-text query over indexed subjects.
func SearchSubjects(search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")

		result, err := search.SearchSubjects(query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Search failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": result.Hits})
	}
}
