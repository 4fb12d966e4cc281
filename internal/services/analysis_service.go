package services

import (
	"aiformbuilder-be/internal/models"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// NoSubmissionsMessage is returned with an empty analysis.
const NoSubmissionsMessage = "No submissions found for this form."

// maxAnalysisSubmissions caps the prompt size; the most recent are kept.
const maxAnalysisSubmissions = 500

// AnalysisService asks the model for insights and chart recommendations
// over one form's submissions.
type AnalysisService struct {
	submissions SubmissionStore
	completer   Completer // nil when no AI provider is configured
	prompts     *Prompts
	log         *zap.Logger
}

func NewAnalysisService(submissions SubmissionStore, completer Completer, prompts *Prompts, log *zap.Logger) *AnalysisService {
	return &AnalysisService{submissions: submissions, completer: completer, prompts: prompts, log: log}
}

// analysisSummary covers every submission of the form, including any left
// out of the rows by maxAnalysisSubmissions.
type analysisSummary struct {
	ResponseCount          int      `json:"responseCount"`
	AverageDurationSeconds *float64 `json:"averageDurationSeconds"`
}

type analysisRow struct {
	Data            map[string]interface{} `json:"data"`
	SubmittedAt     time.Time              `json:"submittedAt"`
	DurationSeconds *float64               `json:"durationSeconds,omitempty"`
}

// Analyze returns the parsed analysis. An unparseable model answer is not
// an error: the placeholder result is returned instead.
func (s *AnalysisService) Analyze(ctx context.Context, formID string) (*models.AnalysisResult, error) {
	formID = strings.TrimSpace(formID)
	if formID == "" {
		return nil, &ValidationError{Index: -1, Field: "formId", Message: "formId is required"}
	}
	if s.completer == nil {
		return nil, ErrAINotConfigured
	}

	subs, err := s.submissions.ListByFormID(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("load submissions: %w", err)
	}
	if len(subs) == 0 {
		return &models.AnalysisResult{
			Insights: []models.Insight{},
			Charts:   []models.Chart{},
			Message:  NoSubmissionsMessage,
		}, nil
	}
	agg := AggregateSubmissions([]models.FormConfigDocument{{ID: formID}}, subs, AggregateOptions{FormID: formID})
	summary, err := json.Marshal(analysisSummary{
		ResponseCount:          agg.TotalResponses,
		AverageDurationSeconds: agg.OverallAvgDurationSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}

	if len(subs) > maxAnalysisSubmissions {
		subs = subs[len(subs)-maxAnalysisSubmissions:]
	}

	rows := make([]analysisRow, 0, len(subs))
	for _, sub := range subs {
		row := analysisRow{Data: sub.Data, SubmittedAt: sub.SubmittedAt}
		if seconds, ok := durationSeconds(sub.DurationMs); ok {
			row.DurationSeconds = &seconds
		}
		rows = append(rows, row)
	}
	payload, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode submissions: %w", err)
	}

	user, err := s.prompts.Analyze.Render(struct{ Summary, Data string }{string(summary), string(payload)})
	if err != nil {
		return nil, fmt.Errorf("render analysis prompt: %w", err)
	}
	raw, err := s.completer.Complete(ctx, s.prompts.Analyze.System, user)
	if err != nil {
		return nil, fmt.Errorf("analyze submissions: %w", err)
	}

	result, err := ParseAnalysisResponse(raw)
	if err != nil {
		s.log.Warn("Unusable AI analysis response", zap.String("formId", formID), zap.Error(err))
	}
	return &result, nil
}
