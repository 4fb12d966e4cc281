package services

import (
	"aiformbuilder-be/internal/models"
	"aiformbuilder-be/internal/utils"
	"fmt"
	"strings"
)

// ValidationError names the first offending element of a form configuration.
// Index is -1 for errors about the configuration as a whole.
type ValidationError struct {
	Index   int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return e.Message
	}
	return fmt.Sprintf("element at index %d: %s", e.Index, e.Message)
}

// ValidateOptions selects between the generation flow, which rejects an
// empty element list, and the create-empty/edit flows, which allow it.
type ValidateOptions struct {
	AllowEmpty bool
}

// ValidateFormConfig checks a configuration and returns its normalized form:
// trimmed strings, lower-case types, options kept only for select/radio.
// Select and radio elements must carry at least one option.
func ValidateFormConfig(config models.FormConfig, opts ValidateOptions) (models.FormConfig, error) {
	normalized := models.FormConfig{
		Title:    strings.TrimSpace(config.Title),
		Elements: make([]models.FormElement, 0, len(config.Elements)),
	}
	if normalized.Title == "" {
		normalized.Title = models.DefaultFormTitle
	}

	if len(config.Elements) == 0 && !opts.AllowEmpty {
		return models.FormConfig{}, &ValidationError{Index: -1, Field: "elements", Message: "form configuration has no elements"}
	}

	seen := make(map[string]int, len(config.Elements))
	for i, element := range config.Elements {
		el, err := ValidateElement(i, element)
		if err != nil {
			return models.FormConfig{}, err
		}
		if first, dup := seen[el.Name]; dup {
			return models.FormConfig{}, &ValidationError{
				Index:   i,
				Field:   "name",
				Message: fmt.Sprintf("name %q is already used by the element at index %d", el.Name, first),
			}
		}
		seen[el.Name] = i
		normalized.Elements = append(normalized.Elements, el)
	}

	return normalized, nil
}

// ValidateElement applies the per-element rules: non-empty type, label and
// name, an identifier-safe name, and options for select/radio.
func ValidateElement(index int, element models.FormElement) (models.FormElement, error) {
	el := models.FormElement{
		Type:        strings.ToLower(strings.TrimSpace(element.Type)),
		Label:       strings.TrimSpace(element.Label),
		Name:        strings.TrimSpace(element.Name),
		Placeholder: strings.TrimSpace(element.Placeholder),
		Required:    element.Required,
	}

	if el.Type == "" || el.Label == "" || el.Name == "" {
		field := missingField(el)
		return models.FormElement{}, &ValidationError{
			Index:   index,
			Field:   field,
			Message: fmt.Sprintf("missing required field %q (type, label, name)", field),
		}
	}
	if !utils.IsValidFieldName(el.Name) {
		return models.FormElement{}, &ValidationError{
			Index:   index,
			Field:   "name",
			Message: fmt.Sprintf("name %q must start with a letter or underscore and contain only letters, numbers, or underscores", el.Name),
		}
	}

	if el.HasOptions() {
		for _, opt := range element.Options {
			if opt = strings.TrimSpace(opt); opt != "" {
				el.Options = append(el.Options, opt)
			}
		}
		if len(el.Options) == 0 {
			return models.FormElement{}, &ValidationError{
				Index:   index,
				Field:   "options",
				Message: fmt.Sprintf("%s fields require at least one option", el.Type),
			}
		}
	}

	return el, nil
}

func missingField(el models.FormElement) string {
	switch {
	case el.Type == "":
		return "type"
	case el.Label == "":
		return "label"
	default:
		return "name"
	}
}
