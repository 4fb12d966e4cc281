package services

import (
	"aiformbuilder-be/internal/models"
	"math"
)

// FormAggregate holds the submission statistics of one form.
type FormAggregate struct {
	FormID                 string
	ResponseCount          int
	DurationsSeconds       []float64
	AverageDurationSeconds *float64 // nil when no submission recorded a duration
}

// Aggregate is the result of one pass over the submission collection.
type Aggregate struct {
	// Forms has one entry per input form, in input order.
	Forms []FormAggregate
	// TotalResponses counts submissions attached to a known form, so it
	// always equals the sum of the per-form response counts.
	TotalResponses int
	// UnattributedResponses counts submissions whose formId is empty or
	// refers to a form that no longer exists.
	UnattributedResponses int
	// OverallAvgDurationSeconds is the mean of every individual duration,
	// not the mean of the per-form averages.
	OverallAvgDurationSeconds *float64
}

// AggregateOptions restricts aggregation to a single form when FormID is set.
type AggregateOptions struct {
	FormID string
}

// AggregateSubmissions groups submissions by form. Submissions without a
// usable duration count as responses but are left out of every average.
func AggregateSubmissions(forms []models.FormConfigDocument, submissions []models.FormSubmission, opts AggregateOptions) Aggregate {
	var agg Aggregate

	index := make(map[string]int, len(forms))
	for _, form := range forms {
		if opts.FormID != "" && form.ID != opts.FormID {
			continue
		}
		if _, dup := index[form.ID]; dup {
			continue
		}
		index[form.ID] = len(agg.Forms)
		agg.Forms = append(agg.Forms, FormAggregate{FormID: form.ID})
	}

	for _, sub := range submissions {
		if opts.FormID != "" && sub.FormID != opts.FormID {
			continue
		}
		i, known := index[sub.FormID]
		if sub.FormID == "" || !known {
			agg.UnattributedResponses++
			continue
		}
		fa := &agg.Forms[i]
		fa.ResponseCount++
		agg.TotalResponses++
		if seconds, ok := durationSeconds(sub.DurationMs); ok {
			fa.DurationsSeconds = append(fa.DurationsSeconds, seconds)
		}
	}

	var totalSum float64
	var totalCount int
	for i := range agg.Forms {
		fa := &agg.Forms[i]
		if len(fa.DurationsSeconds) == 0 {
			continue
		}
		sum := 0.0
		for _, d := range fa.DurationsSeconds {
			sum += d
		}
		avg := sum / float64(len(fa.DurationsSeconds))
		fa.AverageDurationSeconds = &avg
		totalSum += sum
		totalCount += len(fa.DurationsSeconds)
	}
	if totalCount > 0 {
		overall := totalSum / float64(totalCount)
		agg.OverallAvgDurationSeconds = &overall
	}

	return agg
}

// durationSeconds converts a stored millisecond duration. Negative and
// non-finite values are treated as missing.
func durationSeconds(ms *float64) (float64, bool) {
	if ms == nil || math.IsNaN(*ms) || math.IsInf(*ms, 0) || *ms < 0 {
		return 0, false
	}
	return *ms / 1000, true
}
