package services

import (
	"aiformbuilder-be/internal/models"
	"errors"
	"strings"
	"testing"
)

func TestValidateElement(t *testing.T) {
	tests := []struct {
		name      string
		element   models.FormElement
		wantField string // empty when the element is valid
	}{
		{"valid text", models.FormElement{Type: "text", Label: "Name", Name: "name", Required: true}, ""},
		{"empty type", models.FormElement{Type: "", Label: "Name", Name: "name"}, "type"},
		{"blank label", models.FormElement{Type: "text", Label: "   ", Name: "name"}, "label"},
		{"missing name", models.FormElement{Type: "text", Label: "Name"}, "name"},
		{"name with space", models.FormElement{Type: "text", Label: "Name", Name: "full name"}, "name"},
		{"name starting with digit", models.FormElement{Type: "text", Label: "Name", Name: "1st"}, "name"},
		{"select without options", models.FormElement{Type: "select", Label: "Size", Name: "size"}, "options"},
		{"radio with blank options", models.FormElement{Type: "radio", Label: "Size", Name: "size", Options: []string{" ", ""}}, "options"},
		{"radio with options", models.FormElement{Type: "radio", Label: "Size", Name: "size", Options: []string{"S"}}, ""},
		{"unknown type", models.FormElement{Type: "rating", Label: "Stars", Name: "stars"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateElement(3, tt.element)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("ValidateElement() error = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateElement() error = %v, want *ValidationError", err)
			}
			if verr.Index != 3 || verr.Field != tt.wantField {
				t.Errorf("ValidationError = %+v, want index 3 field %q", verr, tt.wantField)
			}
			if !strings.Contains(verr.Error(), "index 3") {
				t.Errorf("Error() = %q, want the index", verr.Error())
			}
		})
	}
}

func TestValidateElementNormalizes(t *testing.T) {
	el, err := ValidateElement(0, models.FormElement{
		Type:    " Checkbox ",
		Label:   " Agree ",
		Name:    "agree",
		Options: []string{"ignored"},
	})
	if err != nil {
		t.Fatalf("ValidateElement: %v", err)
	}
	if el.Type != "checkbox" || el.Label != "Agree" {
		t.Errorf("element = %+v, want trimmed lower-case type", el)
	}
	if el.Options != nil {
		t.Errorf("Options = %v, want nil for checkbox", el.Options)
	}
}

func TestValidateFormConfig(t *testing.T) {
	valid := models.FormElement{Type: "text", Label: "Name", Name: "name"}

	t.Run("empty rejected for generation", func(t *testing.T) {
		_, err := ValidateFormConfig(models.FormConfig{Title: "T"}, ValidateOptions{})
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Index != -1 {
			t.Errorf("err = %v, want whole-config ValidationError", err)
		}
	})

	t.Run("empty allowed for create", func(t *testing.T) {
		config, err := ValidateFormConfig(models.FormConfig{}, ValidateOptions{AllowEmpty: true})
		if err != nil {
			t.Fatalf("ValidateFormConfig: %v", err)
		}
		if config.Title != models.DefaultFormTitle {
			t.Errorf("Title = %q, want %q", config.Title, models.DefaultFormTitle)
		}
		if config.Elements == nil {
			t.Error("Elements = nil, want empty slice")
		}
	})

	t.Run("first offending element reported", func(t *testing.T) {
		_, err := ValidateFormConfig(models.FormConfig{Elements: []models.FormElement{
			valid,
			{Type: "email", Label: "", Name: "email"},
			{Type: "", Label: "", Name: ""},
		}}, ValidateOptions{})
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Index != 1 || verr.Field != "label" {
			t.Errorf("err = %v, want index 1 label", err)
		}
	})

	t.Run("duplicate names", func(t *testing.T) {
		_, err := ValidateFormConfig(models.FormConfig{Elements: []models.FormElement{valid, valid}}, ValidateOptions{})
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Index != 1 || verr.Field != "name" {
			t.Errorf("err = %v, want duplicate name at index 1", err)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		in := models.FormConfig{Title: " Survey ", Elements: []models.FormElement{
			{Type: "SELECT", Label: "Size ", Name: "size", Options: []string{" S", "M"}},
		}}
		once, err := ValidateFormConfig(in, ValidateOptions{})
		if err != nil {
			t.Fatalf("first pass: %v", err)
		}
		twice, err := ValidateFormConfig(once, ValidateOptions{})
		if err != nil {
			t.Fatalf("second pass: %v", err)
		}
		if once.Title != twice.Title || once.Elements[0].Type != twice.Elements[0].Type ||
			strings.Join(once.Elements[0].Options, ",") != strings.Join(twice.Elements[0].Options, ",") {
			t.Errorf("second pass changed config: %+v -> %+v", once, twice)
		}
	})
}
