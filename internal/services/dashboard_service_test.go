package services

import (
	"aiformbuilder-be/internal/models"
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"
)

func at(day int) *time.Time {
	t := time.Date(2025, 5, day, 12, 0, 0, 0, time.UTC)
	return &t
}

func TestAssembleDashboardOrdering(t *testing.T) {
	docs := []models.FormConfigDocument{
		{ID: "old", CreatedAt: at(1), Config: models.FormConfig{Title: "Old"}},
		{ID: "none"},
		{ID: "new", CreatedAt: at(9), Config: models.FormConfig{Title: "New"}},
		{ID: "b-same", CreatedAt: at(5)},
		{ID: "a-same", CreatedAt: at(5)},
	}
	stats := AssembleDashboard(docs, AggregateSubmissions(docs, nil, AggregateOptions{}))

	var got []string
	for _, r := range stats.ResponsesPerForm {
		got = append(got, r.FormID)
	}
	want := []string{"new", "a-same", "b-same", "old", "none"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if stats.ResponsesPerForm[4].Title != models.DefaultFormTitle {
		t.Errorf("untitled form title = %q", stats.ResponsesPerForm[4].Title)
	}
	if stats.TotalForms != 5 || stats.TotalResponses != 0 {
		t.Errorf("totals = %d/%d, want 5/0", stats.TotalForms, stats.TotalResponses)
	}
	if stats.OverallAvgDurationSeconds != nil {
		t.Error("overall average should be nil without submissions")
	}
}

func TestAssembleDashboardIdempotent(t *testing.T) {
	docs := []models.FormConfigDocument{{ID: "A", CreatedAt: at(1)}, {ID: "B", CreatedAt: at(2)}}
	subs := []models.FormSubmission{{FormID: "A", DurationMs: ms(1000)}, {FormID: "B"}, {FormID: "B", DurationMs: ms(3000)}}

	first := AssembleDashboard(docs, AggregateSubmissions(docs, subs, AggregateOptions{}))
	second := AssembleDashboard(docs, AggregateSubmissions(docs, subs, AggregateOptions{}))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("assembler not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestTopForms(t *testing.T) {
	var rows []models.FormResponseStats
	for i := 0; i < 12; i++ {
		rows = append(rows, models.FormResponseStats{FormID: fmt.Sprintf("f%d", i), ResponseCount: i % 3})
	}

	top := TopForms(rows, TopFormsLimit)
	if len(top) != TopFormsLimit {
		t.Fatalf("len = %d, want %d", len(top), TopFormsLimit)
	}
	if top[0].FormID != "f2" || top[1].FormID != "f5" {
		t.Errorf("top = %s, %s; want f2, f5 (stable)", top[0].FormID, top[1].FormID)
	}
	if rows[0].FormID != "f0" {
		t.Error("TopForms modified its input")
	}
}

func TestDashboardServiceGetDashboard(t *testing.T) {
	formStore := &fakeFormStore{docs: []models.FormConfigDocument{
		{ID: "A", CreatedAt: at(1), Config: models.FormConfig{Title: "Alpha"}},
		{ID: "B", CreatedAt: at(2), Config: models.FormConfig{Title: "Beta"}},
	}}
	subStore := &fakeSubmissionStore{subs: []models.FormSubmission{
		{FormID: "A", DurationMs: ms(2000)},
		{FormID: "A", DurationMs: ms(4000)},
		{FormID: "B", DurationMs: ms(9000)},
		{FormID: "deleted"},
	}}
	svc := NewDashboardService(formStore, subStore, zap.NewNop())

	stats, err := svc.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if stats.TotalForms != 2 || stats.TotalResponses != 3 {
		t.Errorf("totals = %d/%d, want 2/3", stats.TotalForms, stats.TotalResponses)
	}
	if !approx(stats.OverallAvgDurationSeconds, 5.0) {
		t.Errorf("overall = %v, want 5.0", stats.OverallAvgDurationSeconds)
	}
	if stats.ResponsesPerForm[0].FormID != "B" || stats.TopForms[0].FormID != "A" {
		t.Errorf("table starts with %s, top starts with %s", stats.ResponsesPerForm[0].FormID, stats.TopForms[0].FormID)
	}
}

func TestDashboardServiceStoreError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewDashboardService(&fakeFormStore{}, &fakeSubmissionStore{err: boom}, zap.NewNop())

	if _, err := svc.GetDashboard(context.Background()); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped store error", err)
	}
}
