package handler

import (
	"context"
	"log/slog"

	"github.com/cuongbtq/job-registry/internal/api/events"
	"github.com/cuongbtq/job-registry/internal/api/model"
)

// JobStore is the persistence dependency. Every method is one store round trip.
type JobStore interface {
	ListJobs(ctx context.Context) ([]model.Job, error)
	GetJobByID(ctx context.Context, jobID string) (model.Job, error)
	CreateJob(ctx context.Context, job model.Job) (*model.InsertResult, error)
	ListJobsByPoster(ctx context.Context, email string) ([]model.Job, error)
	UpsertJob(ctx context.Context, jobID string, fields model.Job) (*model.UpdateResult, error)
	DeleteJob(ctx context.Context, jobID string) (*model.DeleteResult, error)
}

// EventPublisher announces job mutations
type EventPublisher interface {
	Publish(ctx context.Context, eventType, jobID string) error
	PublishDeleted(ctx context.Context, eventType, jobID string, deleted int64) error
}

// HealthChecker reports whether the store is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger      *slog.Logger
	Store       JobStore
	Events      EventPublisher
	Health      HealthChecker
	ServiceName string
}

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	logger      *slog.Logger
	store       JobStore
	events      EventPublisher
	health      HealthChecker
	serviceName string
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	publisher := deps.Events
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	return &JobHandler{
		logger:      deps.Logger,
		store:       deps.Store,
		events:      publisher,
		health:      deps.Health,
		serviceName: deps.ServiceName,
	}
}
