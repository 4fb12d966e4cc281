package services

import (
	"aiformbuilder-be/internal/models"
	"aiformbuilder-be/internal/utils"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule kinds derived from element types.
const (
	RuleString   = "string"
	RuleEmail    = "email"
	RulePassword = "password"
	RuleNumber   = "number"
	RuleBoolean  = "boolean"
	RuleChoice   = "choice"
	RuleURL      = "url"
	RuleAny      = "any"
)

const MinPasswordLength = 6

var fieldValidate = validator.New()

// SubmissionError reports why a respondent's answers were rejected.
// Fields maps element names to a message for that field.
type SubmissionError struct {
	Message string
	Fields  map[string]string
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("invalid response: %d field(s) failed validation", len(e.Fields))
}

// BuildFieldRules derives one rule per answerable element. Submit buttons
// produce no rule; unknown types accept any value.
func BuildFieldRules(config models.FormConfig) []models.FieldRule {
	rules := make([]models.FieldRule, 0, len(config.Elements))
	for _, el := range config.Elements {
		rule := models.FieldRule{
			Name:     el.Name,
			Label:    el.Label,
			Required: el.Required,
		}
		switch el.Type {
		case models.ElementSubmit:
			continue
		case models.ElementText, models.ElementTextarea, models.ElementTel, models.ElementDate:
			rule.Kind = RuleString
		case models.ElementEmail:
			rule.Kind = RuleEmail
		case models.ElementPassword:
			rule.Kind = RulePassword
			rule.MinLen = MinPasswordLength
		case models.ElementNumber:
			rule.Kind = RuleNumber
		case models.ElementURL:
			rule.Kind = RuleURL
		case models.ElementCheckbox:
			rule.Kind = RuleBoolean
		case models.ElementSelect, models.ElementRadio:
			rule.Kind = RuleChoice
			rule.Options = append([]string(nil), el.Options...)
		default:
			rule.Kind = RuleAny
		}
		rules = append(rules, rule)
	}
	return rules
}

// ValidateResponse checks answers against rules and returns the cleaned
// answer map: unknown keys dropped, text sanitized, numbers coerced.
func ValidateResponse(rules []models.FieldRule, data map[string]interface{}) (map[string]interface{}, error) {
	if len(data) == 0 {
		return nil, &SubmissionError{Message: "Response data cannot be empty."}
	}

	cleaned := make(map[string]interface{}, len(rules))
	fields := map[string]string{}

	for _, rule := range rules {
		raw, present := data[rule.Name]
		value, msg := checkField(rule, raw, present)
		if msg != "" {
			fields[rule.Name] = msg
			continue
		}
		if value != nil {
			cleaned[rule.Name] = value
		}
	}

	if len(fields) > 0 {
		return nil, &SubmissionError{Fields: fields}
	}
	if len(cleaned) == 0 {
		return nil, &SubmissionError{Message: "Response data cannot be empty."}
	}
	return cleaned, nil
}

// checkField returns the cleaned value (nil to omit) or a message.
func checkField(rule models.FieldRule, raw interface{}, present bool) (interface{}, string) {
	label := rule.Label
	if label == "" {
		label = rule.Name
	}
	required := fmt.Sprintf("%s is required", label)

	if !present || raw == nil {
		if rule.Required {
			return nil, required
		}
		return nil, ""
	}

	switch rule.Kind {
	case RuleBoolean:
		checked, ok := asBool(raw)
		if !ok {
			return nil, fmt.Sprintf("%s must be true or false", label)
		}
		if rule.Required && !checked {
			return nil, fmt.Sprintf("%s must be checked", label)
		}
		return checked, ""

	case RuleNumber:
		n, empty, ok := asNumber(raw)
		if empty {
			if rule.Required {
				return nil, required
			}
			return nil, ""
		}
		if !ok {
			return nil, fmt.Sprintf("%s must be a number", label)
		}
		return n, ""

	case RuleAny:
		if s, ok := raw.(string); ok {
			s = utils.SanitizeText(s)
			if s == "" && rule.Required {
				return nil, required
			}
			return s, ""
		}
		return raw, ""
	}

	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Sprintf("%s must be text", label)
	}
	if rule.Kind == RulePassword {
		// passwords are stored as typed
		if strings.TrimSpace(s) == "" {
			if rule.Required {
				return nil, required
			}
			return "", ""
		}
		if len([]rune(s)) < rule.MinLen {
			return nil, fmt.Sprintf("%s must be at least %d characters", label, rule.MinLen)
		}
		return s, ""
	}
	if rule.Kind == RuleChoice {
		// matched against the stored options before any sanitizing, so
		// options like "<none>" stay selectable
		choice := strings.TrimSpace(s)
		if choice == "" {
			if rule.Required {
				return nil, required
			}
			return "", ""
		}
		if !containsString(rule.Options, choice) {
			return nil, fmt.Sprintf("%s must be one of the listed options", label)
		}
		return choice, ""
	}

	s = utils.SanitizeText(s)
	if s == "" {
		if rule.Required {
			return nil, required
		}
		return "", ""
	}

	switch rule.Kind {
	case RuleEmail:
		if err := fieldValidate.Var(s, "email"); err != nil {
			return nil, fmt.Sprintf("%s must be a valid email address", label)
		}
	case RuleURL:
		if err := fieldValidate.Var(s, "url"); err != nil {
			return nil, fmt.Sprintf("%s must be a valid URL", label)
		}
	}
	return s, ""
}

func asBool(v interface{}) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "on", "yes", "1":
			return true, true
		case "false", "off", "no", "0", "":
			return false, true
		}
	}
	return false, false
}

// asNumber coerces JSON numbers and numeric strings. empty is true for a
// blank string, which counts as no answer.
func asNumber(v interface{}) (n float64, empty bool, ok bool) {
	switch x := v.(type) {
	case float64:
		n = x
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return 0, true, false
		}
		parsed, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, false, false
		}
		n = parsed
	default:
		return 0, false, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false, false
	}
	return n, false, true
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
