package services

import (
	"aiformbuilder-be/internal/models"
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// TopFormsLimit is the number of forms shown in the dashboard chart.
const TopFormsLimit = 10

// AssembleDashboard joins the aggregate with form metadata. The table is
// ordered newest form first (forms without a creation time last, ties by
// id); TopForms holds the most answered forms for the chart.
func AssembleDashboard(forms []models.FormConfigDocument, agg Aggregate) models.DashboardStats {
	byID := make(map[string]models.FormConfigDocument, len(forms))
	for _, f := range forms {
		if _, dup := byID[f.ID]; !dup {
			byID[f.ID] = f
		}
	}

	rows := make([]models.FormResponseStats, 0, len(agg.Forms))
	for _, fa := range agg.Forms {
		form := byID[fa.FormID]
		rows = append(rows, models.FormResponseStats{
			FormID:                 fa.FormID,
			Title:                  form.DisplayTitle(),
			CreatedAt:              form.CreatedAt,
			ResponseCount:          fa.ResponseCount,
			AverageDurationSeconds: fa.AverageDurationSeconds,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].CreatedAt, rows[j].CreatedAt
		switch {
		case a == nil && b == nil:
			return rows[i].FormID < rows[j].FormID
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.After(*b)
		}
		return rows[i].FormID < rows[j].FormID
	})

	return models.DashboardStats{
		TotalForms:                len(rows),
		TotalResponses:            agg.TotalResponses,
		ResponsesPerForm:          rows,
		OverallAvgDurationSeconds: agg.OverallAvgDurationSeconds,
		TopForms:                  TopForms(rows, TopFormsLimit),
	}
}

// TopForms returns up to limit rows sorted by response count, highest first.
// Rows with equal counts keep their input order.
func TopForms(rows []models.FormResponseStats, limit int) []models.FormResponseStats {
	top := make([]models.FormResponseStats, len(rows))
	copy(top, rows)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].ResponseCount > top[j].ResponseCount
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

// DashboardService recomputes the dashboard from both collections on every call.
type DashboardService struct {
	forms       FormConfigStore
	submissions SubmissionStore
	log         *zap.Logger
}

func NewDashboardService(forms FormConfigStore, submissions SubmissionStore, log *zap.Logger) *DashboardService {
	return &DashboardService{forms: forms, submissions: submissions, log: log}
}

func (s *DashboardService) GetDashboard(ctx context.Context) (*models.DashboardStats, error) {
	forms, err := s.forms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load forms: %w", err)
	}
	submissions, err := s.submissions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load submissions: %w", err)
	}

	agg := AggregateSubmissions(forms, submissions, AggregateOptions{})
	if agg.UnattributedResponses > 0 {
		s.log.Debug("Submissions without a matching form", zap.Int("count", agg.UnattributedResponses))
	}

	stats := AssembleDashboard(forms, agg)
	return &stats, nil
}
