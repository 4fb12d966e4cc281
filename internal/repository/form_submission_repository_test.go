package repository

import (
	"aiformbuilder-be/internal/models"
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const submissionsNS = "test.formSubmissions"

func TestFormSubmissionRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	submitted := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := NewFormSubmissionRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		d := 2500.0
		sub := &models.FormSubmission{FormID: "f1", Data: map[string]interface{}{"name": "Ada"}, SubmittedAt: submitted.Add(time.Microsecond), DurationMs: &d}
		if err := repo.Create(context.Background(), sub); err != nil {
			mt.Fatalf("Create: %v", err)
		}
		if sub.ID == "" {
			mt.Error("Create did not assign an id")
		}
		if !sub.SubmittedAt.Equal(submitted) {
			mt.Errorf("SubmittedAt = %v, want millisecond precision", sub.SubmittedAt)
		}
	})

	mt.Run("list tolerates loose documents", func(mt *mtest.T) {
		repo := NewFormSubmissionRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, submissionsNS, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "s1"},
				{Key: "formId", Value: "f1"},
				{Key: "data", Value: bson.D{{Key: "name", Value: "Ada"}, {Key: "address", Value: bson.D{{Key: "city", Value: "Paris"}}}}},
				{Key: "submittedAt", Value: submitted},
				{Key: "durationMs", Value: int64(2000)},
			},
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "formId", Value: int32(5)},
				{Key: "data", Value: "oops"},
				{Key: "durationMs", Value: "fast"},
			},
			bson.D{
				{Key: "_id", Value: "s3"},
				{Key: "formId", Value: "f2"},
				{Key: "durationMs", Value: int32(4000)},
			},
		))

		subs, err := repo.ListAll(context.Background())
		if err != nil {
			mt.Fatalf("ListAll: %v", err)
		}
		if len(subs) != 3 {
			mt.Fatalf("len = %d, want 3", len(subs))
		}

		first := subs[0]
		if first.FormID != "f1" || first.DurationMs == nil || *first.DurationMs != 2000 || !first.SubmittedAt.Equal(submitted) {
			mt.Errorf("first = %+v", first)
		}
		if _, ok := first.Data["address"].(map[string]interface{}); !ok {
			mt.Errorf("nested answer = %T, want map", first.Data["address"])
		}

		second := subs[1]
		if second.FormID != "" || second.DurationMs != nil || len(second.Data) != 0 || second.ID == "" {
			mt.Errorf("second = %+v, want empty form id, nil duration, empty data", second)
		}

		if subs[2].DurationMs == nil || *subs[2].DurationMs != 4000 {
			mt.Errorf("int32 duration = %v", subs[2].DurationMs)
		}
	})

	mt.Run("list by form", func(mt *mtest.T) {
		repo := NewFormSubmissionRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, submissionsNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "s1"}, {Key: "formId", Value: "f1"}, {Key: "data", Value: bson.D{}}},
		))

		subs, err := repo.ListByFormID(context.Background(), "f1")
		if err != nil {
			mt.Fatalf("ListByFormID: %v", err)
		}
		if len(subs) != 1 {
			mt.Fatalf("len = %d, want 1", len(subs))
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "find" {
			mt.Fatalf("started event = %+v, want find", started)
		}
		if got := started.Command.Lookup("filter", "formId").StringValue(); got != "f1" {
			mt.Errorf("filter formId = %q, want f1", got)
		}
	})
}
