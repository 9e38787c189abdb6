package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cuongbtq/job-registry/internal/api/domain"
	"github.com/cuongbtq/job-registry/internal/api/dto"
	"github.com/cuongbtq/job-registry/internal/api/model"
	"github.com/gin-gonic/gin"
)

// eventPublishTimeout bounds the time a mutation response waits on the broker
const eventPublishTimeout = 5 * time.Second

// ListJobs handles GET /all-jobs
// Returns every job in the collection
func (h *JobHandler) ListJobs(c *gin.Context) {
	h.logger.Info("ListJobs called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
	)

	jobs, err := h.store.ListJobs(requestContext(c))
	if err != nil {
		h.respondError(c, "list jobs", err)
		return
	}

	if jobs == nil {
		jobs = []model.Job{}
	}

	c.JSON(http.StatusOK, dto.ListJobsResponse{
		Success: true,
		Jobs:    jobs,
	})
}

// GetJob handles GET /all-jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.Param("id")

	h.logger.Info("GetJob called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("job_id", jobID),
	)

	job, err := h.store.GetJobByID(requestContext(c), jobID)
	if err != nil {
		h.respondError(c, "get job", err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// CreateJob handles POST /post-job
// Stores the body verbatim, stamped with the server's createdAt
func (h *JobHandler) CreateJob(c *gin.Context) {
	h.logger.Info("CreateJob called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
	)

	body, ok := h.bindDocument(c)
	if !ok {
		return
	}

	body[model.FieldCreatedAt] = time.Now()

	result, err := h.store.CreateJob(requestContext(c), body)
	if err != nil {
		h.respondError(c, "create job", err)
		return
	}

	insertedID := idString(result.InsertedID)
	h.publish(c, domain.EventJobCreated, insertedID)

	c.JSON(http.StatusOK, result)
}

// ListJobsByPoster handles GET /myJobs/:email
// Exact, case-sensitive match on postedBy
func (h *JobHandler) ListJobsByPoster(c *gin.Context) {
	email := c.Param("email")

	h.logger.Info("ListJobsByPoster called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("posted_by", email),
	)

	jobs, err := h.store.ListJobsByPoster(requestContext(c), email)
	if err != nil {
		h.respondError(c, "list jobs by poster", err)
		return
	}

	if jobs == nil {
		jobs = []model.Job{}
	}

	c.JSON(http.StatusOK, jobs)
}

// UpdateJob handles PATCH /update-job/:id
// Merges the body into the job, creating it when absent
func (h *JobHandler) UpdateJob(c *gin.Context) {
	jobID := c.Param("id")

	h.logger.Info("UpdateJob called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("job_id", jobID),
	)

	body, ok := h.bindDocument(c)
	if !ok {
		return
	}

	result, err := h.store.UpsertJob(requestContext(c), jobID, body)
	if err != nil {
		h.respondError(c, "update job", err)
		return
	}

	switch {
	case result.Upserted():
		h.publish(c, domain.EventJobUpserted, jobID)
		c.JSON(http.StatusCreated, dto.UpdateJobResponse{
			Message: dto.MessageJobInserted,
			Result:  result,
		})
	case result.Modified():
		h.publish(c, domain.EventJobUpdated, jobID)
		c.JSON(http.StatusOK, dto.UpdateJobResponse{
			Message: dto.MessageJobUpdated,
			Result:  result,
		})
	default:
		// matched without changes also lands here
		h.respondError(c, "update job", domain.ErrJobNotFound)
	}
}

// DeleteJob handles DELETE /api/jobsdelete/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID := c.Param("id")

	h.logger.Info("DeleteJob called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("job_id", jobID),
	)

	result, err := h.store.DeleteJob(requestContext(c), jobID)
	if err != nil {
		h.respondError(c, "delete job", err)
		return
	}

	h.publishDeleted(c, jobID, result.DeletedCount)

	c.JSON(http.StatusOK, result)
}

// Home handles GET /
func (h *JobHandler) Home(c *gin.Context) {
	c.String(http.StatusOK, "Hello Server")
}

// Health handles GET /health
func (h *JobHandler) Health(c *gin.Context) {
	if h.health != nil {
		if err := h.health.Ping(c.Request.Context()); err != nil {
			h.logger.Warn("Health check failed", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": h.serviceName,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.serviceName,
	})
}

// bindDocument decodes the request body as a JSON object. Any shape of
// object is accepted.
func (h *JobHandler) bindDocument(c *gin.Context) (model.Job, bool) {
	var body model.Job
	if err := c.ShouldBindJSON(&body); err != nil || body == nil {
		if err == nil {
			err = errors.New("body is not a JSON object")
		}
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.ErrMessageInvalidBody})
		return nil, false
	}
	return body, true
}

// respondError maps store errors to responses the same way for every route
func (h *JobHandler) respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrJobNotFound):
		h.logger.Info("Job not found", slog.String("op", op), slog.String("path", c.Request.URL.Path))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: dto.ErrMessageNotFound})

	case errors.Is(err, domain.ErrInsertFailed):
		h.logger.Error("Job insert rejected", slog.String("op", op))
		c.JSON(http.StatusBadRequest, dto.InsertFailedResponse{
			Message: dto.MessageInsertFailed,
			Success: false,
		})

	default:
		h.logger.Error("Failed to "+op, slog.String("error", err.Error()))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: dto.ErrMessageInternal})
	}
}

// requestContext keeps the request's values but is not canceled when the
// caller disconnects, so a started operation runs to completion.
func requestContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func (h *JobHandler) publish(c *gin.Context, eventType, jobID string) {
	ctx, cancel := context.WithTimeout(requestContext(c), eventPublishTimeout)
	defer cancel()

	h.checkPublish(eventType, jobID, h.events.Publish(ctx, eventType, jobID))
}

func (h *JobHandler) publishDeleted(c *gin.Context, jobID string, deleted int64) {
	ctx, cancel := context.WithTimeout(requestContext(c), eventPublishTimeout)
	defer cancel()

	h.checkPublish(domain.EventJobDeleted, jobID,
		h.events.PublishDeleted(ctx, domain.EventJobDeleted, jobID, deleted))
}

// checkPublish logs a failed event publish; it never changes the response
func (h *JobHandler) checkPublish(eventType, jobID string, err error) {
	if err != nil {
		h.logger.Warn("Failed to publish job event",
			slog.String("type", eventType),
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
	}
}

func idString(id interface{}) string {
	if hexer, ok := id.(interface{ Hex() string }); ok {
		return hexer.Hex()
	}
	return fmt.Sprint(id)
}
