package models

import "time"

// FormSubmission is one respondent's answers, stored in the formSubmissions collection
type FormSubmission struct {
	ID          string                 `json:"id" bson:"_id,omitempty"`
	FormID      string                 `json:"formId" bson:"formId"`
	Data        map[string]interface{} `json:"data" bson:"data"`
	SubmittedAt time.Time              `json:"submittedAt" bson:"submittedAt"`
	DurationMs  *float64               `json:"durationMs,omitempty" bson:"durationMs,omitempty"`
}

// SubmitFormRequest is the respondent's submit payload
type SubmitFormRequest struct {
	Data        map[string]interface{} `json:"data"`
	RenderToken string                 `json:"renderToken,omitempty"`
	DurationMs  *float64               `json:"durationMs,omitempty"` // used only when no valid render token is sent
}

// SubmitFormResponse is returned after a submission is stored
type SubmitFormResponse struct {
	Success    bool     `json:"success"`
	ResponseID string   `json:"responseId"`
	DurationMs *float64 `json:"durationMs,omitempty"`
}

// FieldRule is the validation rule derived from a form element
type FieldRule struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"` // string, email, password, number, url, boolean, choice, any
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
	MinLen   int      `json:"minLength,omitempty"`
}

// RenderedForm is what a respondent receives when opening a form link
type RenderedForm struct {
	FormID      string      `json:"formId"`
	Config      FormConfig  `json:"config"`
	Rules       []FieldRule `json:"rules"`
	RenderToken string      `json:"renderToken"`
	StartedAt   time.Time   `json:"startedAt"`
}
