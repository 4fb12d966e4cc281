package repository

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when no document matches the requested id.
var ErrNotFound = errors.New("document not found")

// ErrInvalidDocument wraps decode failures of stored documents.
var ErrInvalidDocument = errors.New("stored document has an invalid structure")

// idFilter matches both ObjectID and string _id values. Documents created by
// this service use hex strings; imported data may carry real ObjectIDs.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"$or": []bson.M{
			{"_id": oid},
			{"_id": id},
		}}
	}
	return bson.M{"_id": id}
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func rawString(v bson.RawValue) (string, bool) {
	switch v.Type {
	case bsontype.String:
		return v.StringValueOK()
	case bsontype.ObjectID:
		oid, ok := v.ObjectIDOK()
		return oid.Hex(), ok
	}
	return "", false
}

// rawNumber accepts any numeric BSON type; other types are treated as absent.
func rawNumber(v bson.RawValue) (float64, bool) {
	switch v.Type {
	case bsontype.Double:
		return v.DoubleOK()
	case bsontype.Int32:
		n, ok := v.Int32OK()
		return float64(n), ok
	case bsontype.Int64:
		n, ok := v.Int64OK()
		return float64(n), ok
	}
	return 0, false
}

func rawTime(v bson.RawValue) (time.Time, bool) {
	switch v.Type {
	case bsontype.DateTime:
		return v.TimeOK()
	case bsontype.Timestamp:
		t, _, ok := v.TimestampOK()
		return time.Unix(int64(t), 0).UTC(), ok
	}
	return time.Time{}, false
}

func rawDocument(v bson.RawValue) map[string]interface{} {
	if v.Type != bsontype.EmbeddedDocument {
		return map[string]interface{}{}
	}
	var m map[string]interface{}
	if err := v.Unmarshal(&m); err != nil || m == nil {
		return map[string]interface{}{}
	}
	return m
}
