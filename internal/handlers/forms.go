package handlers

import (
	"context"
	"net/http"

	"aiformbuilder-be/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FormService is the builder-side service used by FormHandler.
// *services.FormService implements it.
type FormService interface {
	Generate(ctx context.Context, prompt string) (string, error)
	CreateEmpty(ctx context.Context) (string, error)
	Get(ctx context.Context, formID string) (*models.FormConfigDocument, error)
	List(ctx context.Context, query string) ([]models.FormSummary, error)
	Update(ctx context.Context, formID string, config models.FormConfig) (models.FormConfig, error)
	Improve(ctx context.Context, formID, prompt string) (*models.FormConfigDocument, error)
	Delete(ctx context.Context, formID string) error
}

// FormHandler handles form builder endpoints
type FormHandler struct {
	forms FormService
	log   *zap.Logger
}

// NewFormHandler creates a new handler
func NewFormHandler(forms FormService, log *zap.Logger) *FormHandler {
	return &FormHandler{forms: forms, log: log}
}

// Generate godoc
// @Summary Generate a form with AI
// @Description Sends the prompt to the AI provider, validates the returned configuration and stores it
// @Tags forms
// @Accept json
// @Produce json
// @Param payload body models.GenerateFormRequest true "Form description"
// @Success 201 {object} models.FormCreatedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /forms/generate [post]
func (h *FormHandler) Generate(c *gin.Context) {
	var req models.GenerateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Prompt is required"})
		return
	}

	formID, err := h.forms.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		respondError(c, h.log, err, "Failed to generate form")
		return
	}

	c.JSON(http.StatusCreated, models.FormCreatedResponse{FormID: formID})
}

// Create godoc
// @Summary Create an empty form
// @Tags forms
// @Produce json
// @Success 201 {object} models.FormCreatedResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /forms [post]
func (h *FormHandler) Create(c *gin.Context) {
	formID, err := h.forms.CreateEmpty(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to create form")
		return
	}
	c.JSON(http.StatusCreated, models.FormCreatedResponse{FormID: formID})
}

// List godoc
// @Summary List forms
// @Description Newest first. With q, only forms whose title fuzzy-matches q, best match first.
// @Tags forms
// @Produce json
// @Param q query string false "Title search"
// @Success 200 {object} map[string][]models.FormSummary
// @Failure 500 {object} models.ErrorResponse
// @Router /forms [get]
func (h *FormHandler) List(c *gin.Context) {
	forms, err := h.forms.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch forms")
		return
	}
	c.JSON(http.StatusOK, gin.H{"forms": forms})
}

// Get godoc
// @Summary Get a form
// @Tags forms
// @Produce json
// @Param formId path string true "Form ID"
// @Success 200 {object} models.FormConfigDocument
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /forms/{formId} [get]
func (h *FormHandler) Get(c *gin.Context) {
	doc, err := h.forms.Get(c.Request.Context(), c.Param("formId"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch form")
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Update godoc
// @Summary Replace a form configuration
// @Tags forms
// @Accept json
// @Produce json
// @Param formId path string true "Form ID"
// @Param payload body models.UpdateFormRequest true "New configuration"
// @Success 200 {object} models.FormConfig
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /forms/{formId} [put]
func (h *FormHandler) Update(c *gin.Context) {
	var req models.UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Config == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "config is required"})
		return
	}

	config, err := h.forms.Update(c.Request.Context(), c.Param("formId"), *req.Config)
	if err != nil {
		respondError(c, h.log, err, "Failed to update form")
		return
	}
	c.JSON(http.StatusOK, config)
}

// Improve godoc
// @Summary Improve a form with AI
// @Description Sends the current configuration and the instruction to the AI provider and saves the result
// @Tags forms
// @Accept json
// @Produce json
// @Param formId path string true "Form ID"
// @Param payload body models.ImproveFormRequest true "Improvement instruction"
// @Success 200 {object} models.FormConfigDocument
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /forms/{formId}/improve [post]
func (h *FormHandler) Improve(c *gin.Context) {
	var req models.ImproveFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Prompt is required"})
		return
	}

	doc, err := h.forms.Improve(c.Request.Context(), c.Param("formId"), req.Prompt)
	if err != nil {
		respondError(c, h.log, err, "Failed to improve form")
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Delete godoc
// @Summary Delete a form
// @Description Submissions of the form are kept
// @Tags forms
// @Param formId path string true "Form ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /forms/{formId} [delete]
func (h *FormHandler) Delete(c *gin.Context) {
	if err := h.forms.Delete(c.Request.Context(), c.Param("formId")); err != nil {
		respondError(c, h.log, err, "Failed to delete form")
		return
	}
	c.Status(http.StatusNoContent)
}
