package models

// ChartTypeBar is used when the model leaves a chart's type out.
const ChartTypeBar = "bar"

// Insight - one AI generated observation
type Insight struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ChartKeys names the label and value fields of each data point
type ChartKeys struct {
	Category string `json:"category,omitempty"`
	Value    string `json:"value,omitempty"`
}

// Chart - one AI chart recommendation
type Chart struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Data        []interface{} `json:"data"`
	Keys        ChartKeys     `json:"keys"`
}

// AnalysisResult - response of the analysis endpoint
type AnalysisResult struct {
	Insights    []Insight `json:"insights"`
	Charts      []Chart   `json:"charts"`
	RawResponse string    `json:"rawResponse"`
	Message     string    `json:"message,omitempty"`
}
