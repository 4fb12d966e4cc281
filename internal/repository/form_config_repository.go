package repository

import (
	"aiformbuilder-be/internal/database"
	"aiformbuilder-be/internal/models"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FormConfigRepository handles form configuration persistence
type FormConfigRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewFormConfigRepository creates a new repository
func NewFormConfigRepository(db *mongo.Database) *FormConfigRepository {
	return &FormConfigRepository{
		collection: db.Collection(database.FormConfigsCollection),
		now:        time.Now,
	}
}

// EnsureIndexes creates the indexes used by the listing
func (r *FormConfigRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_created_at"),
	})
	return err
}

// Create inserts a new form configuration and returns the stored document
func (r *FormConfigRepository) Create(ctx context.Context, config models.FormConfig) (*models.FormConfigDocument, error) {
	createdAt := r.now().UTC().Truncate(time.Millisecond)
	doc := &models.FormConfigDocument{
		ID:        newID(),
		Config:    config,
		CreatedAt: &createdAt,
	}
	if doc.Config.Elements == nil {
		doc.Config.Elements = []models.FormElement{}
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert form config: %w", err)
	}
	return doc, nil
}

// GetByID returns a single form configuration
func (r *FormConfigRepository) GetByID(ctx context.Context, formID string) (*models.FormConfigDocument, error) {
	raw, err := r.collection.FindOne(ctx, idFilter(formID)).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find form config %s: %w", formID, err)
	}

	var doc models.FormConfigDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: form config %s: %v", ErrInvalidDocument, formID, err)
	}
	return &doc, nil
}

// List returns all form configurations, newest first. Forms without a
// creation time sort last.
func (r *FormConfigRepository) List(ctx context.Context) ([]models.FormConfigDocument, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("list form configs: %w", err)
	}
	defer cursor.Close(ctx)

	forms := make([]models.FormConfigDocument, 0)
	for cursor.Next(ctx) {
		var doc models.FormConfigDocument
		if err := cursor.Decode(&doc); err != nil {
			// One malformed document must not hide the others from the dashboard.
			var id struct {
				ID string `bson:"_id"`
			}
			_ = cursor.Decode(&id)
			forms = append(forms, models.FormConfigDocument{ID: id.ID})
			continue
		}
		forms = append(forms, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list form configs: %w", err)
	}
	return forms, nil
}

// UpdateConfig replaces the configuration of a form and stamps lastModified
func (r *FormConfigRepository) UpdateConfig(ctx context.Context, formID string, config models.FormConfig) error {
	if config.Elements == nil {
		config.Elements = []models.FormElement{}
	}
	update := bson.M{"$set": bson.M{
		"config":       config,
		"lastModified": r.now().UTC().Truncate(time.Millisecond),
	}}

	result, err := r.collection.UpdateOne(ctx, idFilter(formID), update)
	if err != nil {
		return fmt.Errorf("update form config %s: %w", formID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a form configuration. Its submissions are kept.
func (r *FormConfigRepository) Delete(ctx context.Context, formID string) error {
	result, err := r.collection.DeleteOne(ctx, idFilter(formID))
	if err != nil {
		return fmt.Errorf("delete form config %s: %w", formID, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
