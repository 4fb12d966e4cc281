package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"aiformbuilder-be/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"
)

type DashboardService interface {
	GetDashboard(ctx context.Context) (*models.DashboardStats, error)
}

type AnalysisService interface {
	Analyze(ctx context.Context, formID string) (*models.AnalysisResult, error)
}

// DashboardHandler serves dashboard statistics and form analysis
type DashboardHandler struct {
	dashboard DashboardService
	analysis  AnalysisService
	log       *zap.Logger
}

func NewDashboardHandler(dashboard DashboardService, analysis AnalysisService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, analysis: analysis, log: log}
}

// GetDashboard godoc
// @Summary Dashboard statistics
// @Description Totals, per-form response counts and average fill durations, recomputed on every call
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Failure 500 {object} models.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	stats, err := h.dashboard.GetDashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch dashboard data")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetChart godoc
// @Summary Top forms chart
// @Description HTML bar chart of the ten forms with the most responses
// @Tags dashboard
// @Produce html
// @Success 200 {string} string "HTML page"
// @Failure 500 {object} models.ErrorResponse
// @Router /dashboard/chart [get]
func (h *DashboardHandler) GetChart(c *gin.Context) {
	stats, err := h.dashboard.GetDashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch dashboard data")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := topFormsChart(stats.TopForms).Render(c.Writer); err != nil {
		h.log.Error("Failed to render chart", zap.Error(err))
	}
}

func topFormsChart(rows []models.FormResponseStats) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Form responses"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Top forms",
			Subtitle: "By number of responses",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Responses"}),
	)

	titles := make([]string, 0, len(rows))
	counts := make([]opts.BarData, 0, len(rows))
	durations := make([]opts.BarData, 0, len(rows))
	for _, r := range rows {
		titles = append(titles, r.Title)
		counts = append(counts, opts.BarData{Name: r.FormID, Value: r.ResponseCount})
		avg := 0.0
		if r.AverageDurationSeconds != nil {
			avg = *r.AverageDurationSeconds
		}
		durations = append(durations, opts.BarData{Name: r.FormID, Value: fmt.Sprintf("%.1f", avg)})
	}

	bar.SetXAxis(titles).
		AddSeries("Responses", counts).
		AddSeries("Avg. seconds", durations)
	return bar
}

// Analyze godoc
// @Summary AI analysis of a form's submissions
// @Description Insights and chart recommendations. With no submissions the arrays are empty and message is set.
// @Tags dashboard
// @Produce json
// @Param formId path string true "Form ID"
// @Success 200 {object} models.AnalysisResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /dashboard/analysis/{formId} [get]
func (h *DashboardHandler) Analyze(c *gin.Context) {
	formID := strings.TrimSpace(c.Param("formId"))
	if formID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Form ID is required"})
		return
	}

	result, err := h.analysis.Analyze(c.Request.Context(), formID)
	if err != nil {
		respondError(c, h.log, err, "Failed to analyze form data")
		return
	}
	c.JSON(http.StatusOK, result)
}
