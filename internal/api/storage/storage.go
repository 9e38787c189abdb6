package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-registry/internal/api/domain"
	"github.com/cuongbtq/job-registry/internal/api/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Storage performs job operations against a single MongoDB collection.
// Each method is exactly one round trip to the store.
type Storage struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(coll *mongo.Collection, logger *slog.Logger) *Storage {
	return &Storage{
		coll:   coll,
		logger: logger,
	}
}

func parseJobID(jobID string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q: %v", domain.ErrInvalidJobID, jobID, err)
	}
	return oid, nil
}

// ListJobs returns every document in the collection
func (s *Storage) ListJobs(ctx context.Context) ([]model.Job, error) {
	return s.find(ctx, bson.M{})
}

// ListJobsByPoster returns documents whose postedBy equals email exactly
func (s *Storage) ListJobsByPoster(ctx context.Context, email string) ([]model.Job, error) {
	return s.find(ctx, bson.M{model.FieldPostedBy: email})
}

func (s *Storage) find(ctx context.Context, filter bson.M) ([]model.Job, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}

	jobs := make([]model.Job, len(docs))
	for i, doc := range docs {
		jobs[i] = model.Job(doc)
	}

	return jobs, nil
}

// GetJobByID fetches the document with the given hex identifier
func (s *Storage) GetJobByID(ctx context.Context, jobID string) (model.Job, error) {
	oid, err := parseJobID(jobID)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	err = s.coll.FindOne(ctx, bson.M{model.FieldID: oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return model.Job(doc), nil
}

// CreateJob inserts job as a new document. The caller stamps createdAt.
func (s *Storage) CreateJob(ctx context.Context, job model.Job) (*model.InsertResult, error) {
	res, err := s.coll.InsertOne(ctx, bson.M(job))
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	if res.InsertedID == nil {
		return nil, domain.ErrInsertFailed
	}

	s.logger.Debug("Job inserted", slog.Any("inserted_id", res.InsertedID))

	// default write concern is acknowledged
	return &model.InsertResult{
		Acknowledged: true,
		InsertedID:   res.InsertedID,
	}, nil
}

// UpsertJob merges fields into the document with the given identifier
// with $set, inserting a new document when none matches.
func (s *Storage) UpsertJob(ctx context.Context, jobID string, fields model.Job) (*model.UpdateResult, error) {
	oid, err := parseJobID(jobID)
	if err != nil {
		return nil, err
	}

	res, err := s.coll.UpdateOne(
		ctx,
		bson.M{model.FieldID: oid},
		bson.M{"$set": bson.M(fields)},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	return &model.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

// DeleteJob removes the document with the given identifier. Deleting an
// unknown identifier is not an error; DeletedCount is 0.
func (s *Storage) DeleteJob(ctx context.Context, jobID string) (*model.DeleteResult, error) {
	oid, err := parseJobID(jobID)
	if err != nil {
		return nil, err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{model.FieldID: oid})
	if err != nil {
		return nil, fmt.Errorf("failed to delete job: %w", err)
	}

	return &model.DeleteResult{
		Acknowledged: true,
		DeletedCount: res.DeletedCount,
	}, nil
}
