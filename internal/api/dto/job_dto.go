package dto

import "github.com/cuongbtq/job-registry/internal/api/model"

type ListJobsResponse struct {
	Success bool        `json:"success"`
	Jobs    []model.Job `json:"jobs"`
}

type UpdateJobResponse struct {
	Message string              `json:"message"`
	Result  *model.UpdateResult `json:"result"`
}

type InsertFailedResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	MessageJobInserted  = "Job inserted successfully"
	MessageJobUpdated   = "Job updated successfully"
	MessageInsertFailed = "can not insert ! Try again"

	ErrMessageNotFound    = "Job not found"
	ErrMessageInternal    = "Internal Server Error"
	ErrMessageInvalidBody = "Invalid request body"
)
