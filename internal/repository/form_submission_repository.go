package repository

import (
	"aiformbuilder-be/internal/database"
	"aiformbuilder-be/internal/models"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FormSubmissionRepository handles respondent submissions
type FormSubmissionRepository struct {
	collection *mongo.Collection
}

func NewFormSubmissionRepository(db *mongo.Database) *FormSubmissionRepository {
	return &FormSubmissionRepository{
		collection: db.Collection(database.FormSubmissionsCollection),
	}
}

// submissionRecord decodes loosely so that old or hand-imported documents
// with unexpected field types still load.
type submissionRecord struct {
	ID          string        `bson:"_id"`
	FormID      bson.RawValue `bson:"formId"`
	Data        bson.RawValue `bson:"data"`
	SubmittedAt bson.RawValue `bson:"submittedAt"`
	DurationMs  bson.RawValue `bson:"durationMs"`
}

func (rec submissionRecord) toModel() models.FormSubmission {
	sub := models.FormSubmission{
		ID:   rec.ID,
		Data: rawDocument(rec.Data),
	}
	sub.FormID, _ = rawString(rec.FormID)
	sub.SubmittedAt, _ = rawTime(rec.SubmittedAt)
	if ms, ok := rawNumber(rec.DurationMs); ok {
		sub.DurationMs = &ms
	}
	return sub
}

// EnsureIndexes creates the formId index used by the analysis query
func (r *FormSubmissionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "formId", Value: 1}},
		Options: options.Index().SetName("idx_form_id"),
	})
	return err
}

// Create stores a new submission. Submissions are never updated afterwards.
func (r *FormSubmissionRepository) Create(ctx context.Context, sub *models.FormSubmission) error {
	if sub.ID == "" {
		sub.ID = newID()
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}
	sub.SubmittedAt = sub.SubmittedAt.Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, sub); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// ListAll returns every submission
func (r *FormSubmissionRepository) ListAll(ctx context.Context) ([]models.FormSubmission, error) {
	return r.find(ctx, bson.M{})
}

// ListByFormID returns the submissions of one form, oldest first
func (r *FormSubmissionRepository) ListByFormID(ctx context.Context, formID string) ([]models.FormSubmission, error) {
	return r.find(ctx, bson.M{"formId": formID}, options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}}))
}

func (r *FormSubmissionRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.FormSubmission, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find submissions: %w", err)
	}
	defer cursor.Close(ctx)

	var records []submissionRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}

	submissions := make([]models.FormSubmission, 0, len(records))
	for _, rec := range records {
		submissions = append(submissions, rec.toModel())
	}
	return submissions, nil
}
