package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/middlewares"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/services"
)

type InteractionController struct {
	audit *services.AuditService
}

func NewInteractionController(audit *services.AuditService) *InteractionController {
	return &InteractionController{audit: audit}
}

// GET /interactions — the caller's own audit trail.
func (ic *InteractionController) List(c *gin.Context) {
	interactions, err := ic.audit.ListInteractions(c.Request.Context(), c.GetString(middlewares.UserIDKey))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"interactions": interactions})
}

// GET /uploads
func (ic *InteractionController) ListUploads(c *gin.Context) {
	uploads, err := ic.audit.ListUploads(c.Request.Context(), c.GetString(middlewares.UserIDKey))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploads": uploads})
}
