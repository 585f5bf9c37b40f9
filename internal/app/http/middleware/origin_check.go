package middleware

import (
	"net/http"

	"amparo-backend/config"

	"github.com/gin-gonic/gin"
)

// OriginCheck rejects state-changing requests whose Origin header is not on
// the configured whitelist. In production a mutating request must carry at
// least an Origin or Referer header; browsers always send one of the two on
// cross-site form posts, so a bare request is not a browser we serve.
func OriginCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
		default:
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if origin != "" {
			if len(config.ALLOWED_ORIGINS) > 0 && !originAllowed(origin) {
				c.JSON(http.StatusForbidden, gin.H{"error": "Origin not allowed"})
				c.Abort()
				return
			}
		} else if config.IS_PRODUCTION {
			if c.GetHeader("Referer") == "" {
				c.JSON(http.StatusForbidden, gin.H{"error": "Missing Origin header"})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

func originAllowed(origin string) bool {
	for _, o := range config.ALLOWED_ORIGINS {
		if o == origin {
			return true
		}
	}
	return false
}
