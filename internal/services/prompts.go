package services

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

// Prompt is a system message plus a user message template.
type Prompt struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`

	tmpl *template.Template
}

// Prompts holds the prompt set used by the AI-backed flows.
type Prompts struct {
	Generate Prompt `yaml:"generate"`
	Improve  Prompt `yaml:"improve"`
	Analyze  Prompt `yaml:"analyze"`
}

// LoadPrompts parses the embedded prompt definitions.
func LoadPrompts() (*Prompts, error) {
	return parsePrompts(promptsYAML)
}

func parsePrompts(data []byte) (*Prompts, error) {
	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}
	for name, prompt := range map[string]*Prompt{
		"generate": &p.Generate,
		"improve":  &p.Improve,
		"analyze":  &p.Analyze,
	} {
		if prompt.User == "" {
			return nil, fmt.Errorf("prompt %q has no user template", name)
		}
		tmpl, err := template.New(name).Option("missingkey=error").Parse(prompt.User)
		if err != nil {
			return nil, fmt.Errorf("prompt %q: %w", name, err)
		}
		prompt.tmpl = tmpl
	}
	return &p, nil
}

// Render executes the user template with data.
func (p Prompt) Render(data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
