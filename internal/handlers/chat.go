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

type PostChatMessageRequest struct {
	Content        string `json:"content" binding:"required"`
	SubjectContext string `json:"subjectContext"`
}

// GetChatHistory returns the full conversation log in insertion order
func GetChatHistory(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": st.ChatHistory()})
	}
}

// PostChatMessage appends the user's turn, asks the assistant for a reply,
// and appends that too. Assistant failures still produce a turn: the log is
// append-only and the conversation always moves forward.
func PostChatMessage(st *store.Store, ai *services.AIService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PostChatMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		userMessage := st.AddChatMessage(ctx, store.MessageFields{
			Content:        req.Content,
			Role:           models.RoleUser,
			SubjectContext: req.SubjectContext,
		})

		reply, err := ai.Respond(ctx, st.ChatHistory(), req.SubjectContext)
		if err != nil {
			if errors.Is(err, services.ErrMissingAPIKey) {
				reply = "Please set your AI API key in the settings first to use the AI assistant."
			} else {
				log.Printf("assistant reply failed: %v", err)
				reply = "Sorry, I encountered an error processing your request. Please try again later."
			}
		}

		assistantMessage := st.AddChatMessage(ctx, store.MessageFields{
			Content:        reply,
			Role:           models.RoleAssistant,
			SubjectContext: req.SubjectContext,
		})

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data": gin.H{
				"message": userMessage,
				"reply":   assistantMessage,
			},
		})
	}
}
