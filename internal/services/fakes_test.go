package services

import (
	"aiformbuilder-be/internal/models"
	"aiformbuilder-be/internal/repository"
	"context"
	"fmt"
	"time"
)

type fakeFormStore struct {
	docs   []models.FormConfigDocument
	nextID int
	err    error
}

func (f *fakeFormStore) Create(ctx context.Context, config models.FormConfig) (*models.FormConfigDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	now := time.Date(2025, 1, 1, 0, 0, f.nextID, 0, time.UTC)
	doc := models.FormConfigDocument{ID: fmt.Sprintf("form-%d", f.nextID), Config: config, CreatedAt: &now}
	f.docs = append(f.docs, doc)
	return &doc, nil
}

func (f *fakeFormStore) GetByID(ctx context.Context, formID string) (*models.FormConfigDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, d := range f.docs {
		if d.ID == formID {
			doc := d
			return &doc, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeFormStore) List(ctx context.Context) ([]models.FormConfigDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.FormConfigDocument, len(f.docs))
	copy(out, f.docs)
	return out, nil
}

func (f *fakeFormStore) UpdateConfig(ctx context.Context, formID string, config models.FormConfig) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.docs {
		if f.docs[i].ID == formID {
			f.docs[i].Config = config
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeFormStore) Delete(ctx context.Context, formID string) error {
	for i := range f.docs {
		if f.docs[i].ID == formID {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeSubmissionStore struct {
	subs []models.FormSubmission
	err  error
}

func (f *fakeSubmissionStore) Create(ctx context.Context, sub *models.FormSubmission) error {
	if f.err != nil {
		return f.err
	}
	sub.ID = fmt.Sprintf("sub-%d", len(f.subs)+1)
	f.subs = append(f.subs, *sub)
	return nil
}

func (f *fakeSubmissionStore) ListAll(ctx context.Context) ([]models.FormSubmission, error) {
	return f.subs, f.err
}

func (f *fakeSubmissionStore) ListByFormID(ctx context.Context, formID string) ([]models.FormSubmission, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.FormSubmission
	for _, s := range f.subs {
		if s.FormID == formID {
			out = append(out, s)
		}
	}
	return out, nil
}

// fakeCompleter returns a canned response and records the last prompt.
type fakeCompleter struct {
	response   string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	return f.response, f.err
}

func ms(v float64) *float64 { return &v }
