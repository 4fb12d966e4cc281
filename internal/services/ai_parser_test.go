package services

import (
	"errors"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		wantOK bool
	}{
		{"plain object", `{"a":1}`, true},
		{"surrounding prose", "Sure! Here you go:\n{\"a\":1}\nThanks.", true},
		{"code fence", "```json\n{\"a\": {\"b\": 2}}\n```", true},
		{"no braces", "I cannot help with that.", false},
		{"array only", `[1,2,3]`, false},
		{"broken json", `{"a": }`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ExtractJSONObject(tt.text)
			if ok != tt.wantOK {
				t.Errorf("ExtractJSONObject(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
		})
	}
}

func TestParseAnalysisResponseEmbeddedObject(t *testing.T) {
	result, err := ParseAnalysisResponse("Sure! {\"insights\":[],\"charts\":[{\"title\":\"Sales\"}]}")
	if err != nil {
		t.Fatalf("ParseAnalysisResponse: %v", err)
	}
	if len(result.Insights) != 0 {
		t.Errorf("len(Insights) = %d, want 0", len(result.Insights))
	}
	if len(result.Charts) != 1 {
		t.Fatalf("len(Charts) = %d, want 1", len(result.Charts))
	}
	chart := result.Charts[0]
	if chart.ID != "chart-0" || chart.Type != "bar" || chart.Title != "Sales" {
		t.Errorf("chart = %+v, want id chart-0, type bar, title Sales", chart)
	}
	if chart.Data == nil || len(chart.Data) != 0 {
		t.Errorf("chart.Data = %v, want empty slice", chart.Data)
	}
}

func TestParseAnalysisResponseDefaults(t *testing.T) {
	raw := `{"insights":[{"description":"d"},{"title":"Second"}],
		"charts":[{"type":"PIE","dataPoints":[{"name":"a","value":1}]},{"type":"radar","data":[{"name":"b","value":2}]},
			{"type":"  ","title":"Blank"},{"type":"scatter","title":"S"}]}`
	result, err := ParseAnalysisResponse(raw)
	if err != nil {
		t.Fatalf("ParseAnalysisResponse: %v", err)
	}

	if got := result.Insights[0]; got.ID != "insight-0" || got.Title != "Insight 1" || got.Description != "d" {
		t.Errorf("insight 0 = %+v", got)
	}
	if got := result.Insights[1]; got.ID != "insight-1" || got.Title != "Second" || got.Description != "" {
		t.Errorf("insight 1 = %+v", got)
	}
	if got := result.Charts[0]; got.Type != "pie" || got.Title != "Chart 1" || len(got.Data) != 1 {
		t.Errorf("chart 0 = %+v", got)
	}
	if got := result.Charts[1]; got.Type != "radar" || got.ID != "chart-1" || len(got.Data) != 1 {
		t.Errorf("chart 1 = %+v", got)
	}
	if got := result.Charts[2]; got.Type != "bar" || got.Title != "Blank" || len(got.Data) != 0 {
		t.Errorf("chart 2 = %+v", got)
	}
	if got := result.Charts[3]; got.Type != "scatter" || got.ID != "chart-3" {
		t.Errorf("chart 3 = %+v", got)
	}
	if result.Charts[0].Keys.Category != "name" || result.Charts[0].Keys.Value != "value" {
		t.Errorf("keys = %+v", result.Charts[0].Keys)
	}
	if result.RawResponse != raw {
		t.Error("raw response not preserved")
	}
}

func TestParseAnalysisResponseFailure(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"prose", "I cannot help with that.", ErrUnparseableResponse},
		{"insights not an array", `{"insights":"none","charts":[]}`, ErrMalformedResponse},
		{"chart not an object", `{"charts":[1]}`, ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseAnalysisResponse(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if len(result.Insights) != 1 || result.Insights[0].Title != "Error analyzing data" {
				t.Errorf("Insights = %+v, want placeholder", result.Insights)
			}
			if result.Insights[0].Description != "Could not generate insights from the provided data." {
				t.Errorf("placeholder description = %q", result.Insights[0].Description)
			}
			if result.Charts == nil || len(result.Charts) != 0 {
				t.Errorf("Charts = %v, want empty", result.Charts)
			}
			if result.RawResponse != tt.raw {
				t.Errorf("RawResponse = %q, want %q", result.RawResponse, tt.raw)
			}
		})
	}
}

func TestParseFormConfigResponse(t *testing.T) {
	raw := "Here is your form:\n" + `{"formConfig":[
		{"type":"text","label":"Name","name":"name","required":true},
		{"type":"select","label":"Size","name":"size","options":["S","M"]}]}`

	config, err := ParseFormConfigResponse(raw)
	if err != nil {
		t.Fatalf("ParseFormConfigResponse: %v", err)
	}
	if len(config.Elements) != 2 {
		t.Fatalf("len(Elements) = %d, want 2", len(config.Elements))
	}
	if !config.Elements[0].Required {
		t.Error("element 0 should be required")
	}
	if got := config.Elements[1].Options; len(got) != 2 || got[0] != "S" {
		t.Errorf("options = %v", got)
	}
}

func TestParseFormConfigResponseWrapped(t *testing.T) {
	raw := `{"improvedFormConfig":"{\"formConfig\":[{\"type\":\"email\",\"label\":\"Email\",\"name\":\"email\"}]}"}`
	config, err := ParseFormConfigResponse(raw)
	if err != nil {
		t.Fatalf("ParseFormConfigResponse: %v", err)
	}
	if len(config.Elements) != 1 || config.Elements[0].Type != "email" {
		t.Errorf("Elements = %+v", config.Elements)
	}
}

func TestParseFormConfigResponseRejects(t *testing.T) {
	t.Run("unparseable", func(t *testing.T) {
		if _, err := ParseFormConfigResponse("no json here"); !errors.Is(err, ErrUnparseableResponse) {
			t.Errorf("err = %v, want ErrUnparseableResponse", err)
		}
	})

	t.Run("missing formConfig", func(t *testing.T) {
		if _, err := ParseFormConfigResponse(`{"fields":[]}`); !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("err = %v, want ErrMalformedResponse", err)
		}
	})

	t.Run("element missing label", func(t *testing.T) {
		_, err := ParseFormConfigResponse(`{"formConfig":[{"type":"text","label":"A","name":"a"},{"type":"text","name":"b"}]}`)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want *ValidationError", err)
		}
		if verr.Index != 1 || verr.Field != "label" {
			t.Errorf("ValidationError = %+v, want index 1 field label", verr)
		}
	})
}
