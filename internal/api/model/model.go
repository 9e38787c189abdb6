package model

// Job is a schemaless job document. Keys map to top-level document fields.
type Job map[string]interface{}

const (
	FieldID        = "_id"
	FieldPostedBy  = "postedBy"
	FieldCreatedAt = "createdAt"
)

// InsertResult is the store acknowledgement for a created job
type InsertResult struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

// UpdateResult is the store acknowledgement for an upsert
type UpdateResult struct {
	Acknowledged  bool        `json:"acknowledged"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedCount int64       `json:"upsertedCount"`
	UpsertedID    interface{} `json:"upsertedId"`
}

// Upserted reports whether the update created a new document
func (r *UpdateResult) Upserted() bool {
	return r.UpsertedCount > 0
}

// Modified reports whether an existing document changed
func (r *UpdateResult) Modified() bool {
	return r.ModifiedCount > 0
}

// DeleteResult is the store acknowledgement for a delete
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
