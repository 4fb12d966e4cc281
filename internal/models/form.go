package models

import "time"

// Element types offered by the form editor.
const (
	ElementText     = "text"
	ElementEmail    = "email"
	ElementPassword = "password"
	ElementNumber   = "number"
	ElementDate     = "date"
	ElementTel      = "tel"
	ElementURL      = "url"
	ElementTextarea = "textarea"
	ElementSelect   = "select"
	ElementRadio    = "radio"
	ElementCheckbox = "checkbox"
	ElementSubmit   = "submit"
)

// DefaultFormTitle is used wherever a form has no title.
const DefaultFormTitle = "Untitled Form"

// FormElement is a single field definition inside a form configuration
type FormElement struct {
	Type        string   `json:"type" bson:"type"`
	Label       string   `json:"label" bson:"label"`
	Name        string   `json:"name" bson:"name"`                           // stable key used in submissions
	Options     []string `json:"options,omitempty" bson:"options,omitempty"` // select / radio only
	Placeholder string   `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
	Required    bool     `json:"required,omitempty" bson:"required,omitempty"`
}

// HasOptions reports whether the element type takes a list of options.
func (e FormElement) HasOptions() bool {
	return e.Type == ElementSelect || e.Type == ElementRadio
}

// FormConfig is the schema of a form: a title and an ordered list of elements
type FormConfig struct {
	Title    string        `json:"title" bson:"title"`
	Elements []FormElement `json:"elements" bson:"elements"`
}

// FormConfigDocument is a stored form configuration in the formConfigs collection
type FormConfigDocument struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Config       FormConfig `json:"config" bson:"config"`
	CreatedAt    *time.Time `json:"createdAt" bson:"createdAt,omitempty"`
	LastModified *time.Time `json:"lastModified,omitempty" bson:"lastModified,omitempty"`
}

// DisplayTitle returns the form title, falling back to DefaultFormTitle.
func (d FormConfigDocument) DisplayTitle() string {
	if d.Config.Title == "" {
		return DefaultFormTitle
	}
	return d.Config.Title
}

// FormSummary is the shape returned by the form listing
type FormSummary struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	ElementCount int        `json:"elementCount"`
	CreatedAt    *time.Time `json:"createdAt"`
	LastModified *time.Time `json:"lastModified,omitempty"`
}

// GenerateFormRequest is the payload for AI form generation
type GenerateFormRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// ImproveFormRequest is the payload for AI form improvement
type ImproveFormRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// UpdateFormRequest replaces a form configuration
type UpdateFormRequest struct {
	Config *FormConfig `json:"config" binding:"required"`
}

// FormCreatedResponse is returned after a form is created
type FormCreatedResponse struct {
	FormID string `json:"formId"`
}
