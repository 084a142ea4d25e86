package domain

import (
	"context"
	"time"
)

type Job struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Salary       string    `json:"salary"`
	JobType      string    `json:"type"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	CreatedAt    time.Time `json:"posted"`

	// Viewer-relative flags, computed per request.
	Applied bool   `json:"applied"`
	Saved   bool   `json:"saved"`
	Status  string `json:"status"`
}

// Application statuses as surfaced to the job board.
const (
	ApplicationApplied   = "applied"
	ApplicationWithdrawn = "withdrawn"
)

type JobApplication struct {
	ID        int64     `json:"id"`
	JobID     int64     `json:"job_id"`
	UserID    int64     `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplicationExportRow is the flattened shape used by the xlsx export.
type ApplicationExportRow struct {
	ApplicationID int64
	JobTitle      string
	Company       string
	Applicant     string
	Email         string
	Status        string
	AppliedAt     time.Time
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id, viewerID int64) (*Job, error)
	Fetch(ctx context.Context, viewerID int64, limit, offset int) ([]Job, int64, error)

	Apply(ctx context.Context, jobID, userID int64) (*JobApplication, error)
	Withdraw(ctx context.Context, jobID, userID int64) error
	ToggleSave(ctx context.Context, jobID, userID int64) (saved bool, err error)

	FetchApplications(ctx context.Context) ([]ApplicationExportRow, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, job *Job) (*Job, error)
	ListJobs(ctx context.Context, viewerID int64, page, pageSize int) ([]Job, int64, error)
	GetJob(ctx context.Context, id, viewerID int64) (*Job, error)
	Apply(ctx context.Context, jobID, userID int64) (*JobApplication, error)
	Withdraw(ctx context.Context, jobID, userID int64) error
	ToggleSave(ctx context.Context, jobID, userID int64) (bool, error)

	// ExportApplications renders every application as an xlsx workbook.
	ExportApplications(ctx context.Context) ([]byte, error)
}
