package services

import (
	"aiformbuilder-be/internal/models"
	"aiformbuilder-be/internal/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"
)

// ErrInvalidAIResponse is returned when the model output cannot be turned
// into a valid form configuration.
var ErrInvalidAIResponse = errors.New("AI returned an invalid form configuration")

// FormService implements the builder-side flows.
type FormService struct {
	forms     FormConfigStore
	completer Completer // nil when no AI provider is configured
	prompts   *Prompts
	log       *zap.Logger
}

func NewFormService(forms FormConfigStore, completer Completer, prompts *Prompts, log *zap.Logger) *FormService {
	return &FormService{forms: forms, completer: completer, prompts: prompts, log: log}
}

// Generate asks the model for a form matching prompt and stores it. The
// title is the first five words of the prompt.
func (s *FormService) Generate(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", &ValidationError{Index: -1, Field: "prompt", Message: "prompt is required"}
	}
	if s.completer == nil {
		return "", ErrAINotConfigured
	}

	user, err := s.prompts.Generate.Render(struct{ Prompt string }{prompt})
	if err != nil {
		return "", fmt.Errorf("render generate prompt: %w", err)
	}
	raw, err := s.completer.Complete(ctx, s.prompts.Generate.System, user)
	if err != nil {
		return "", fmt.Errorf("generate form: %w", err)
	}

	config, err := s.parseGenerated(raw, false)
	if err != nil {
		return "", err
	}
	config.Title = utils.TitleFromPrompt(prompt)
	if config.Title == "" {
		config.Title = models.DefaultFormTitle
	}

	doc, err := s.forms.Create(ctx, config)
	if err != nil {
		return "", fmt.Errorf("save generated form: %w", err)
	}
	s.log.Info("Form generated", zap.String("formId", doc.ID), zap.Int("elements", len(config.Elements)))
	return doc.ID, nil
}

// CreateEmpty stores an untitled form with no elements.
func (s *FormService) CreateEmpty(ctx context.Context) (string, error) {
	doc, err := s.forms.Create(ctx, models.FormConfig{
		Title:    models.DefaultFormTitle,
		Elements: []models.FormElement{},
	})
	if err != nil {
		return "", fmt.Errorf("create form: %w", err)
	}
	return doc.ID, nil
}

// Get fetches a form and validates it, so a corrupted stored config is
// reported instead of being rendered.
func (s *FormService) Get(ctx context.Context, formID string) (*models.FormConfigDocument, error) {
	doc, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	config, err := ValidateFormConfig(doc.Config, ValidateOptions{AllowEmpty: true})
	if err != nil {
		s.log.Warn("Stored form failed validation", zap.String("formId", formID), zap.Error(err))
		return nil, err
	}
	doc.Config = config
	return doc, nil
}

// List returns form summaries, newest first. A non-empty query keeps only
// forms whose title fuzzy-matches it, best match first.
func (s *FormService) List(ctx context.Context, query string) ([]models.FormSummary, error) {
	docs, err := s.forms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}

	summaries := make([]models.FormSummary, 0, len(docs))
	for _, d := range docs {
		summaries = append(summaries, models.FormSummary{
			ID:           d.ID,
			Title:        d.DisplayTitle(),
			ElementCount: len(d.Config.Elements),
			CreatedAt:    d.CreatedAt,
			LastModified: d.LastModified,
		})
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return summaries, nil
	}

	matches := fuzzy.FindFrom(query, summaryTitles(summaries))
	filtered := make([]models.FormSummary, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, summaries[m.Index])
	}
	return filtered, nil
}

type summaryTitles []models.FormSummary

func (t summaryTitles) String(i int) string { return t[i].Title }
func (t summaryTitles) Len() int            { return len(t) }

// Update replaces the configuration of an existing form. An empty element
// list is allowed.
func (s *FormService) Update(ctx context.Context, formID string, config models.FormConfig) (models.FormConfig, error) {
	config.Title = utils.SanitizeText(config.Title)
	normalized, err := ValidateFormConfig(config, ValidateOptions{AllowEmpty: true})
	if err != nil {
		return models.FormConfig{}, err
	}
	if err := s.forms.UpdateConfig(ctx, formID, normalized); err != nil {
		return models.FormConfig{}, err
	}
	return normalized, nil
}

// Improve sends the current configuration and an instruction to the model
// and saves the returned configuration. The title is kept.
func (s *FormService) Improve(ctx context.Context, formID, prompt string) (*models.FormConfigDocument, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, &ValidationError{Index: -1, Field: "prompt", Message: "prompt is required"}
	}
	if s.completer == nil {
		return nil, ErrAINotConfigured
	}

	doc, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	current, err := json.MarshalIndent(map[string]interface{}{"formConfig": doc.Config.Elements}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode current form: %w", err)
	}
	user, err := s.prompts.Improve.Render(struct{ FormConfig, Prompt string }{string(current), prompt})
	if err != nil {
		return nil, fmt.Errorf("render improve prompt: %w", err)
	}
	raw, err := s.completer.Complete(ctx, s.prompts.Improve.System, user)
	if err != nil {
		return nil, fmt.Errorf("improve form: %w", err)
	}

	config, err := s.parseGenerated(raw, true)
	if err != nil {
		return nil, err
	}
	config.Title = doc.DisplayTitle()

	if err := s.forms.UpdateConfig(ctx, formID, config); err != nil {
		return nil, err
	}
	doc.Config = config
	s.log.Info("Form improved", zap.String("formId", formID), zap.Int("elements", len(config.Elements)))
	return doc, nil
}

func (s *FormService) Delete(ctx context.Context, formID string) error {
	return s.forms.Delete(ctx, formID)
}

// parseGenerated turns model output into a validated configuration.
// Labels are sanitized and names that are not identifier-safe are derived
// again from the name (or the label), with numeric suffixes on collisions.
func (s *FormService) parseGenerated(raw string, allowEmpty bool) (models.FormConfig, error) {
	config, err := ParseFormConfigResponse(raw)
	if err != nil {
		s.log.Warn("Unusable AI form response", zap.Error(err), zap.Int("length", len(raw)))
		return models.FormConfig{}, fmt.Errorf("%w: %s", ErrInvalidAIResponse, err.Error())
	}

	used := make(map[string]bool, len(config.Elements))
	for i := range config.Elements {
		el := &config.Elements[i]
		el.Label = utils.SanitizeText(el.Label)
		el.Placeholder = utils.SanitizeText(el.Placeholder)
		name := strings.TrimSpace(el.Name)
		if !utils.IsValidFieldName(name) {
			name = utils.GenerateFieldName(name)
			if name == "field" && el.Label != "" {
				name = utils.GenerateFieldName(el.Label)
			}
		}
		el.Name = uniqueName(name, used)
		used[el.Name] = true
	}

	normalized, err := ValidateFormConfig(config, ValidateOptions{AllowEmpty: allowEmpty})
	if err != nil {
		s.log.Warn("AI form failed validation", zap.Error(err))
		return models.FormConfig{}, fmt.Errorf("%w: %s", ErrInvalidAIResponse, err.Error())
	}
	return normalized, nil
}

func uniqueName(name string, used map[string]bool) string {
	if !used[name] {
		return name
	}
	for n := 2; ; n++ {
		candidate := name + "_" + strconv.Itoa(n)
		if !used[candidate] {
			return candidate
		}
	}
}
