package services

import (
	"aiformbuilder-be/internal/models"
	"aiformbuilder-be/internal/utils"
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// SubmissionService renders forms for respondents and records their answers.
type SubmissionService struct {
	forms       FormConfigStore
	submissions SubmissionStore
	secret      string
	ttl         time.Duration
	now         func() time.Time
	log         *zap.Logger
}

func NewSubmissionService(forms FormConfigStore, submissions SubmissionStore, secret string, ttl time.Duration, log *zap.Logger) *SubmissionService {
	return &SubmissionService{
		forms:       forms,
		submissions: submissions,
		secret:      secret,
		ttl:         ttl,
		now:         time.Now,
		log:         log,
	}
}

// Render returns the validated form, its field rules and a signed token
// holding the render time.
func (s *SubmissionService) Render(ctx context.Context, formID string) (*models.RenderedForm, error) {
	config, err := s.loadConfig(ctx, formID)
	if err != nil {
		return nil, err
	}

	startedAt := s.now().UTC().Truncate(time.Millisecond)
	token, err := utils.GenerateRenderToken(formID, s.secret, startedAt, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("sign render token: %w", err)
	}

	return &models.RenderedForm{
		FormID:      formID,
		Config:      config,
		Rules:       BuildFieldRules(config),
		RenderToken: token,
		StartedAt:   startedAt,
	}, nil
}

// Submit validates the answers and inserts exactly one submission.
func (s *SubmissionService) Submit(ctx context.Context, formID string, req models.SubmitFormRequest) (*models.SubmitFormResponse, error) {
	config, err := s.loadConfig(ctx, formID)
	if err != nil {
		return nil, err
	}

	data, err := ValidateResponse(BuildFieldRules(config), req.Data)
	if err != nil {
		return nil, err
	}

	submittedAt := s.now().UTC().Truncate(time.Millisecond)
	sub := &models.FormSubmission{
		FormID:      formID,
		Data:        data,
		SubmittedAt: submittedAt,
		DurationMs:  s.duration(formID, req, submittedAt),
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("save submission: %w", err)
	}

	return &models.SubmitFormResponse{
		Success:    true,
		ResponseID: sub.ID,
		DurationMs: sub.DurationMs,
	}, nil
}

func (s *SubmissionService) loadConfig(ctx context.Context, formID string) (models.FormConfig, error) {
	doc, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return models.FormConfig{}, err
	}
	config, err := ValidateFormConfig(doc.Config, ValidateOptions{AllowEmpty: true})
	if err != nil {
		s.log.Warn("Stored form failed validation", zap.String("formId", formID), zap.Error(err))
		return models.FormConfig{}, err
	}
	return config, nil
}

// duration prefers the render token; a token for another form, a bad
// signature or an expired token falls back to the client-reported value.
func (s *SubmissionService) duration(formID string, req models.SubmitFormRequest, submittedAt time.Time) *float64 {
	if req.RenderToken != "" {
		claims, err := utils.ValidateRenderToken(req.RenderToken, s.secret, submittedAt)
		switch {
		case err != nil:
			s.log.Debug("Render token rejected", zap.String("formId", formID), zap.Error(err))
		case claims.FormID != formID:
			s.log.Debug("Render token issued for another form", zap.String("formId", formID), zap.String("tokenFormId", claims.FormID))
		default:
			ms := float64(submittedAt.UnixMilli() - claims.StartedAtMs)
			if ms < 0 {
				ms = 0
			}
			return &ms
		}
	}

	if req.DurationMs != nil && *req.DurationMs >= 0 && !math.IsInf(*req.DurationMs, 0) && !math.IsNaN(*req.DurationMs) {
		ms := math.Round(*req.DurationMs)
		return &ms
	}
	return nil
}
