package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studyscribe/studyscribe-api/internal/store"
)

type UpdateAPIKeyRequest struct {
	APIKey string `json:"apiKey"`
}

// GetSettings reports whether an AI credential is configured. The key
// itself never leaves the server unmasked.
func GetSettings(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := st.APIKey()
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"apiKeySet": key != "",
				"apiKey":    maskKey(key),
			},
		})
	}
}

// UpdateAPIKey replaces the single AI credential. An empty key clears it.
func UpdateAPIKey(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateAPIKeyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		st.SetAPIKey(c.Request.Context(), strings.TrimSpace(req.APIKey))
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
