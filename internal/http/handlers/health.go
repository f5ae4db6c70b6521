package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Healthz is a liveness probe; it does not reach the API.
func Healthz(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": service})
	}
}
