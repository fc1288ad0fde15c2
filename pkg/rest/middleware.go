package rest

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

type Middleware struct {
	Handler gin.HandlerFunc
	Group   string
}

func NewMiddleware(group string, handler gin.HandlerFunc) Middleware {
	return Middleware{
		Group:   group,
		Handler: handler,
	}
}

// InternalAuthMiddleware guards internal route groups with a shared token
// taken from the INTERNAL_AUTH_TOKEN environment variable.
func InternalAuthMiddleware() gin.HandlerFunc {
	expected := os.Getenv("INTERNAL_AUTH_TOKEN")

	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No Authorization Header Provided"})
			return
		}

		if expected == "" || token != expected {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Wrong auth token"})
			return
		}

		c.Next()
	}
}
