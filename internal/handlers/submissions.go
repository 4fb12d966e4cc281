package handlers

import (
	"context"
	"net/http"

	"aiformbuilder-be/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmissionService is the respondent-side service.
type SubmissionService interface {
	Render(ctx context.Context, formID string) (*models.RenderedForm, error)
	Submit(ctx context.Context, formID string, req models.SubmitFormRequest) (*models.SubmitFormResponse, error)
}

// SubmissionHandler handles the respondent flow
type SubmissionHandler struct {
	submissions SubmissionService
	log         *zap.Logger
}

func NewSubmissionHandler(submissions SubmissionService, log *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions, log: log}
}

// Render godoc
// @Summary Open a form for filling
// @Description Returns the form, the field rules and a render token that records the start time
// @Tags submissions
// @Produce json
// @Param formId path string true "Form ID"
// @Success 200 {object} models.RenderedForm
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /forms/{formId}/render [get]
func (h *SubmissionHandler) Render(c *gin.Context) {
	rendered, err := h.submissions.Render(c.Request.Context(), c.Param("formId"))
	if err != nil {
		respondError(c, h.log, err, "Failed to load form")
		return
	}
	c.JSON(http.StatusOK, rendered)
}

// Submit godoc
// @Summary Submit a response
// @Tags submissions
// @Accept json
// @Produce json
// @Param formId path string true "Form ID"
// @Param payload body models.SubmitFormRequest true "Answers"
// @Success 201 {object} models.SubmitFormResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /forms/{formId}/submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req models.SubmitFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body", Message: err.Error()})
		return
	}

	resp, err := h.submissions.Submit(c.Request.Context(), c.Param("formId"), req)
	if err != nil {
		respondError(c, h.log, err, "Failed to save response")
		return
	}

	h.log.Info("Response saved", zap.String("formId", c.Param("formId")), zap.String("responseId", resp.ResponseID))
	c.JSON(http.StatusCreated, resp)
}
