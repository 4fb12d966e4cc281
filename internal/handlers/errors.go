package handlers

import (
	"errors"
	"net/http"

	"aiformbuilder-be/internal/models"
	"aiformbuilder-be/internal/repository"
	"aiformbuilder-be/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors to a status and body. Anything not
// recognised is logged and reported with the generic fallback message.
func respondError(c *gin.Context, log *zap.Logger, err error, fallback string) {
	var verr *services.ValidationError
	var serr *services.SubmissionError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid form configuration",
			Message: verr.Error(),
			Fields:  map[string]string{verr.Field: verr.Message},
		})
	case errors.As(err, &serr):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "Invalid response",
			Message: serr.Error(),
			Fields:  serr.Fields,
		})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Form not found"})
	case errors.Is(err, services.ErrAINotConfigured):
		log.Error("AI provider not configured", zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "AI service is not configured"})
	case errors.Is(err, services.ErrInvalidAIResponse):
		log.Warn("Invalid AI response", zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   services.ErrInvalidAIResponse.Error(),
			Message: "Try rephrasing the prompt.",
		})
	default:
		_ = c.Error(err)
		log.Error(fallback, zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: fallback})
	}
}
