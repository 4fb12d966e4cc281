package models

import "time"

// FormResponseStats - per form response count and average fill time
type FormResponseStats struct {
	FormID                 string     `json:"formId"`
	Title                  string     `json:"title"`
	CreatedAt              *time.Time `json:"createdAt"`
	ResponseCount          int        `json:"responseCount"`
	AverageDurationSeconds *float64   `json:"averageDurationSeconds"` // null when no durations were recorded
}

// DashboardStats - complete dashboard response
type DashboardStats struct {
	TotalForms                int                 `json:"totalForms"`
	TotalResponses            int                 `json:"totalResponses"`
	ResponsesPerForm          []FormResponseStats `json:"responsesPerForm"`
	OverallAvgDurationSeconds *float64            `json:"overallAvgDurationSeconds"`
	TopForms                  []FormResponseStats `json:"topForms"` // top 10 by responseCount, for the chart
}
