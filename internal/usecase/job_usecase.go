package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"peer-backend/internal/domain"
	"peer-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

type jobUsecase struct {
	jobRepo domain.JobRepository
}

func NewJobUsecase(jobRepo domain.JobRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo}
}

func (u *jobUsecase) CreateJob(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	job.Title = strings.TrimSpace(job.Title)
	job.Company = strings.TrimSpace(job.Company)
	if job.Title == "" {
		return nil, apperror.BadRequest("Title is required")
	}
	if job.Company == "" {
		return nil, apperror.BadRequest("Company is required")
	}
	if job.JobType == "" {
		job.JobType = "Full-time"
	}
	job.CreatedAt = time.Now().UTC()

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, viewerID int64, page, pageSize int) ([]domain.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	jobs, total, err := u.jobRepo.Fetch(ctx, viewerID, pageSize, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return jobs, total, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id, viewerID int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id, viewerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) Apply(ctx context.Context, jobID, userID int64) (*domain.JobApplication, error) {
	if _, err := u.GetJob(ctx, jobID, userID); err != nil {
		return nil, err
	}
	app, err := u.jobRepo.Apply(ctx, jobID, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return app, nil
}

func (u *jobUsecase) Withdraw(ctx context.Context, jobID, userID int64) error {
	if err := u.jobRepo.Withdraw(ctx, jobID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("No active application for this job")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) ToggleSave(ctx context.Context, jobID, userID int64) (bool, error) {
	if _, err := u.GetJob(ctx, jobID, userID); err != nil {
		return false, err
	}
	saved, err := u.jobRepo.ToggleSave(ctx, jobID, userID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return saved, nil
}

// ExportApplications renders every job application into an xlsx workbook
// for offline review.
func (u *jobUsecase) ExportApplications(ctx context.Context) ([]byte, error) {
	rows, err := u.jobRepo.FetchApplications(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	f := excelize.NewFile()
	sheetName := "Applications"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"APPLICATION ID", "JOB TITLE", "COMPANY", "APPLICANT", "EMAIL", "STATUS", "APPLIED AT"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2F5597"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	for i, row := range rows {
		values := []interface{}{
			row.ApplicationID,
			row.JobTitle,
			row.Company,
			row.Applicant,
			row.Email,
			row.Status,
			row.AppliedAt.Format("2006-01-02 15:04"),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, apperror.Internal(err)
			}
		}
	}

	// Reasonable default widths for the text-heavy columns
	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, col, col, 22)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to write workbook: %w", err))
	}
	return buf.Bytes(), nil
}
