package services

import (
	"aiformbuilder-be/internal/models"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrUnparseableResponse means no JSON object could be found in the model output.
	ErrUnparseableResponse = errors.New("could not parse AI response as JSON")
	// ErrMalformedResponse means the JSON was found but does not have the expected shape.
	ErrMalformedResponse = errors.New("AI response has an invalid structure")
)

const (
	analysisErrorTitle       = "Error analyzing data"
	analysisErrorDescription = "Could not generate insights from the provided data."
)

// Greedy: first "{" to last "}".
var jsonObjectRE = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJSONObject parses text as a JSON object, falling back to the span
// from the first "{" to the last "}" when the model wrapped it in prose.
func ExtractJSONObject(text string) (map[string]interface{}, bool) {
	if obj, ok := decodeObject(text); ok {
		return obj, true
	}
	if match := jsonObjectRE.FindString(text); match != "" {
		return decodeObject(match)
	}
	return nil, false
}

func decodeObject(text string) (map[string]interface{}, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// ParseAnalysisResponse maps model output to an AnalysisResult. It always
// returns a usable result: on error it is the placeholder result carrying
// the raw text, and the error says why.
func ParseAnalysisResponse(raw string) (models.AnalysisResult, error) {
	obj, ok := ExtractJSONObject(raw)
	if !ok {
		return analysisFailure(raw), ErrUnparseableResponse
	}

	insightItems, err := objectArray(obj, "insights")
	if err != nil {
		return analysisFailure(raw), err
	}
	chartItems, err := objectArray(obj, "charts")
	if err != nil {
		return analysisFailure(raw), err
	}

	result := models.AnalysisResult{
		Insights:    make([]models.Insight, 0, len(insightItems)),
		Charts:      make([]models.Chart, 0, len(chartItems)),
		RawResponse: raw,
	}

	for i, item := range insightItems {
		result.Insights = append(result.Insights, models.Insight{
			ID:          fmt.Sprintf("insight-%d", i),
			Title:       stringOr(item, "title", fmt.Sprintf("Insight %d", i+1)),
			Description: stringOr(item, "description", ""),
		})
	}

	for i, item := range chartItems {
		result.Charts = append(result.Charts, models.Chart{
			ID:          fmt.Sprintf("chart-%d", i),
			Type:        chartType(item),
			Title:       stringOr(item, "title", fmt.Sprintf("Chart %d", i+1)),
			Description: stringOr(item, "description", ""),
			Data:        chartData(item),
			Keys:        models.ChartKeys{Category: "name", Value: "value"},
		})
	}

	return result, nil
}

func analysisFailure(raw string) models.AnalysisResult {
	if raw == "" {
		raw = "No response"
	}
	return models.AnalysisResult{
		Insights: []models.Insight{{
			ID:          "error-insight",
			Title:       analysisErrorTitle,
			Description: analysisErrorDescription,
		}},
		Charts:      []models.Chart{},
		RawResponse: raw,
	}
}

// ParseFormConfigResponse maps model output to a form configuration. The
// object must hold a "formConfig" array (or an "improvedFormConfig" string
// wrapping one) whose elements all carry type, label and name.
func ParseFormConfigResponse(raw string) (models.FormConfig, error) {
	obj, ok := ExtractJSONObject(raw)
	if !ok {
		return models.FormConfig{}, ErrUnparseableResponse
	}

	if _, has := obj["formConfig"]; !has {
		if wrapped, isString := obj["improvedFormConfig"].(string); isString {
			return ParseFormConfigResponse(wrapped)
		}
	}

	items, isArray := obj["formConfig"].([]interface{})
	if !isArray {
		return models.FormConfig{}, fmt.Errorf("%w: formConfig is not an array", ErrMalformedResponse)
	}

	config := models.FormConfig{
		Title:    stringOr(obj, "title", ""),
		Elements: make([]models.FormElement, 0, len(items)),
	}
	for i, item := range items {
		fields, isObject := item.(map[string]interface{})
		if !isObject {
			return models.FormConfig{}, &ValidationError{Index: i, Field: "type", Message: "generated element is not an object"}
		}
		el := models.FormElement{
			Type:        stringOr(fields, "type", ""),
			Label:       stringOr(fields, "label", ""),
			Name:        stringOr(fields, "name", ""),
			Placeholder: stringOr(fields, "placeholder", ""),
		}
		if el.Type == "" || el.Label == "" || el.Name == "" {
			field := missingField(el)
			return models.FormConfig{}, &ValidationError{
				Index:   i,
				Field:   field,
				Message: fmt.Sprintf("generated element is missing required field %q (type, label, name)", field),
			}
		}
		if required, isBool := fields["required"].(bool); isBool {
			el.Required = required
		}
		if opts, isList := fields["options"].([]interface{}); isList {
			for _, o := range opts {
				switch v := o.(type) {
				case string:
					el.Options = append(el.Options, v)
				case float64, bool:
					el.Options = append(el.Options, fmt.Sprint(v))
				}
			}
		}
		config.Elements = append(config.Elements, el)
	}

	return config, nil
}

// objectArray reads an optional array of objects. Absent or null means empty.
func objectArray(obj map[string]interface{}, key string) ([]map[string]interface{}, error) {
	value, present := obj[key]
	if !present || value == nil {
		return nil, nil
	}
	list, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an array", ErrMalformedResponse, key)
	}
	items := make([]map[string]interface{}, 0, len(list))
	for i, v := range list {
		item, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is not an object", ErrMalformedResponse, key, i)
		}
		items = append(items, item)
	}
	return items, nil
}

func stringOr(obj map[string]interface{}, key, fallback string) string {
	if s, ok := obj[key].(string); ok {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return fallback
}

// chartType defaults only a missing or blank type; any other value the
// model sends is kept, lower-cased.
func chartType(item map[string]interface{}) string {
	return strings.ToLower(stringOr(item, "type", models.ChartTypeBar))
}

func chartData(item map[string]interface{}) []interface{} {
	if points, ok := item["dataPoints"].([]interface{}); ok {
		return points
	}
	if points, ok := item["data"].([]interface{}); ok {
		return points
	}
	return []interface{}{}
}
