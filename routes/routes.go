package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/controllers"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/middlewares"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/services"
)

// Deps carries everything the router needs; nothing here is a package-level
// singleton so tests can substitute in-memory fakes.
type Deps struct {
	Predictions   *services.PredictionService
	Audit         *services.AuditService
	Hub           *services.RealtimeHub
	JWTSecret     []byte
	RatePerMinute int // <=0 disables rate limiting
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	pc := controllers.NewPredictionController(d.Predictions)
	ic := controllers.NewInteractionController(d.Audit)

	// The recorder sits outside auth so every request past routing leaves
	// exactly one interaction entry, with or without a user id.
	api := r.Group("/")
	api.Use(middlewares.InteractionRecorder(d.Audit))
	if d.RatePerMinute > 0 {
		api.Use(middlewares.RateLimit(d.RatePerMinute))
	}
	api.Use(middlewares.AuthMiddleware(d.JWTSecret))
	{
		api.POST("/predict", pc.Predict)
		api.GET("/predictions", pc.List)
		api.PUT("/predictions/:id", pc.Update)
		api.DELETE("/predictions/:id", pc.Delete)
		api.GET("/interactions", ic.List)
		api.GET("/uploads", ic.ListUploads)
	}

	if d.Hub != nil {
		rc := controllers.NewRealtimeController(d.Hub)
		ws := r.Group("/ws")
		ws.Use(middlewares.AuthMiddleware(d.JWTSecret))
		ws.GET("", rc.UpdatesWS)
	}

	return r
}
