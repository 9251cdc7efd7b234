package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/apperrors"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/middlewares"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/models"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/services"
)

type PredictionController struct {
	svc *services.PredictionService
}

func NewPredictionController(svc *services.PredictionService) *PredictionController {
	return &PredictionController{svc: svc}
}

// POST /predict — multipart upload under the "image" field.
func (pc *PredictionController) Predict(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no image file provided, use 'image' as the form field name"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}

	doc, err := pc.svc.Predict(c.Request.Context(), c.GetString(middlewares.UserIDKey), header.Filename, data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id": doc.ID,
		"prediction": gin.H{
			"label":      doc.Prediction,
			"confidence": doc.Confidence,
		},
		"filename": doc.Filename,
	})
}

// GET /predictions
func (pc *PredictionController) List(c *gin.Context) {
	predictions, err := pc.svc.List(c.Request.Context(), c.GetString(middlewares.UserIDKey))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": predictions})
}

// PUT /predictions/:id — only prediction, confidence and calories are
// mutable; anything else in the body is ignored.
func (pc *PredictionController) Update(c *gin.Context) {
	var fields models.PredictionUpdate
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	doc, err := pc.svc.Update(c.Request.Context(), c.GetString(middlewares.UserIDKey), c.Param("id"), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// DELETE /predictions/:id
func (pc *PredictionController) Delete(c *gin.Context) {
	err := pc.svc.Delete(c.Request.Context(), c.GetString(middlewares.UserIDKey), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
}
