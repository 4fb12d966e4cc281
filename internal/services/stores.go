package services

import (
	"aiformbuilder-be/internal/models"
	"context"
)

// FormConfigStore is the form configuration side of the document store.
// *repository.FormConfigRepository implements it.
type FormConfigStore interface {
	Create(ctx context.Context, config models.FormConfig) (*models.FormConfigDocument, error)
	GetByID(ctx context.Context, formID string) (*models.FormConfigDocument, error)
	List(ctx context.Context) ([]models.FormConfigDocument, error)
	UpdateConfig(ctx context.Context, formID string, config models.FormConfig) error
	Delete(ctx context.Context, formID string) error
}

// SubmissionStore is the submission side of the document store.
// *repository.FormSubmissionRepository implements it.
type SubmissionStore interface {
	Create(ctx context.Context, sub *models.FormSubmission) error
	ListAll(ctx context.Context) ([]models.FormSubmission, error)
	ListByFormID(ctx context.Context, formID string) ([]models.FormSubmission, error)
}
