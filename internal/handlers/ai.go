package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyscribe/studyscribe-api/internal/models"
	"github.com/studyscribe/studyscribe-api/internal/services"
	"github.com/studyscribe/studyscribe-api/internal/store"
)

type AIRequest struct {
	Text       string `json:"text"`
	ResourceID string `json:"resourceId"`
	Question   string `json:"question"`
}

// resolveStudyText turns an AI request into the text to study: either the
// posted text, or the content of the named resource (extracting stored
// PDFs through Tika on demand). Writes the error response itself when it
// returns false.
func resolveStudyText(c *gin.Context, req AIRequest, st *store.Store, files *services.FileService, tika *services.TextExtractionService) (string, bool) {
	if req.Text != "" {
		return req.Text, true
	}
	if req.ResourceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Either text or resourceId is required"})
		return "", false
	}

	resource, ok := st.Resource(req.ResourceID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Resource not found"})
		return "", false
	}

	switch resource.Type {
	case models.ResourceNote:
		return resource.Content, true
	case models.ResourcePDF:
		if resource.Path == "" || files == nil || tika == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Resource has no extractable text"})
			return "", false
		}
		object, err := files.Download(c.Request.Context(), resource.Path)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to read resource file"})
			return "", false
		}
		defer object.Close()

		text, err := tika.ExtractText(c.Request.Context(), object)
		if err != nil {
			log.Printf("failed to extract text from %s: %v", resource.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to extract text from PDF"})
			return "", false
		}
		return text, true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Resource has no extractable text"})
		return "", false
	}
}

// aiError maps AI collaborator failures onto the shallow error taxonomy:
// missing credential is the caller's problem, everything else is transient.
func aiError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrMissingAPIKey) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_API_KEY",
				"message": services.ErrMissingAPIKey.Error(),
			},
		})
		return
	}

	log.Printf("AI request failed: %v", err)
	c.JSON(http.StatusBadGateway, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "AI_UNAVAILABLE",
			"message": "The AI service could not complete the request. Please try again.",
		},
	})
}

// Summarize generates a prose summary of a resource or posted text
func Summarize(st *store.Store, ai *services.AIService, files *services.FileService, tika *services.TextExtractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AIRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		text, ok := resolveStudyText(c, req, st, files, tika)
		if !ok {
			return
		}

		summary, err := ai.Summarize(c.Request.Context(), text)
		if err != nil {
			aiError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"summary": summary}})
	}
}

// CreateFlashcards generates question/answer pairs from a resource or text
func CreateFlashcards(st *store.Store, ai *services.AIService, files *services.FileService, tika *services.TextExtractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AIRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		text, ok := resolveStudyText(c, req, st, files, tika)
		if !ok {
			return
		}

		cards, err := ai.CreateFlashcards(c.Request.Context(), text)
		if err != nil && !errors.Is(err, services.ErrBadAIResponse) {
			aiError(c, err)
			return
		}

		// An unparseable reply degrades to an empty set with a notice.
		response := gin.H{"success": true, "data": gin.H{"flashcards": cards}}
		if err != nil {
			response["message"] = "Failed to parse flashcards data"
		}
		c.JSON(http.StatusOK, response)
	}
}

// GenerateQuiz generates multiple-choice questions from a resource or text
func GenerateQuiz(st *store.Store, ai *services.AIService, files *services.FileService, tika *services.TextExtractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AIRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		text, ok := resolveStudyText(c, req, st, files, tika)
		if !ok {
			return
		}

		quiz, err := ai.GenerateQuiz(c.Request.Context(), text)
		if err != nil && !errors.Is(err, services.ErrBadAIResponse) {
			aiError(c, err)
			return
		}

		response := gin.H{"success": true, "data": gin.H{"quiz": quiz}}
		if err != nil {
			response["message"] = "Failed to parse quiz data"
		}
		c.JSON(http.StatusOK, response)
	}
}

// AskQuestion answers a question about a resource or posted text
func AskQuestion(st *store.Store, ai *services.AIService, files *services.FileService, tika *services.TextExtractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AIRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		if req.Question == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Question is required"})
			return
		}

		text, ok := resolveStudyText(c, req, st, files, tika)
		if !ok {
			return
		}

		answer, err := ai.AskQuestion(c.Request.Context(), text, req.Question)
		if err != nil {
			aiError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"answer": answer}})
	}
}
