package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/services"
)

// InteractionRecorder appends exactly one audit entry per request, after the
// response is computed. It sits in front of auth so rejected requests are
// recorded too, just without a user id. Recording is best-effort and can
// never change the response.
func InteractionRecorder(audit *services.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}
		audit.Record(c.Request.Context(), endpoint, c.Request.Method, c.GetString(UserIDKey))
	}
}
