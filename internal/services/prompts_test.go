package services

import (
	"strings"
	"testing"
)

func TestLoadPrompts(t *testing.T) {
	p, err := LoadPrompts()
	if err != nil {
		t.Fatalf("LoadPrompts: %v", err)
	}

	out, err := p.Generate.Render(struct{ Prompt string }{"A contact form"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "Description: A contact form") {
		t.Errorf("generate prompt missing description:\n%s", out)
	}
	if !strings.Contains(p.Analyze.System, "data analyst") {
		t.Errorf("analyze system prompt = %q", p.Analyze.System)
	}
}

func TestParsePromptsRejectsMissingTemplate(t *testing.T) {
	_, err := parsePrompts([]byte("generate:\n  system: hi\n"))
	if err == nil {
		t.Fatal("expected an error for prompts without user templates")
	}
}
