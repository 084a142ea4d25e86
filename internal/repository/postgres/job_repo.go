package postgres

import (
	"context"
	"errors"
	"time"

	"peer-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobSelect = `
	SELECT j.id, j.user_id, j.title, j.company, j.location, j.salary, j.job_type,
		j.description, j.requirements, j.created_at,
		ja.status,
		js.user_id IS NOT NULL AS saved
	FROM jobs j
	LEFT JOIN job_applications ja ON ja.job_id = j.id AND ja.user_id = $1
	LEFT JOIN job_saves js ON js.job_id = j.id AND js.user_id = $1`

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (user_id, title, company, location, salary, job_type, description, requirements, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRow(ctx, query,
		job.UserID, job.Title, job.Company, job.Location, job.Salary, job.JobType,
		job.Description, pq.Array(job.Requirements), job.CreatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id, viewerID int64) (*domain.Job, error) {
	query := jobSelect + ` WHERE j.id = $2`
	job, err := scanJob(r.db.QueryRow(ctx, query, viewerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

func (r *jobRepo) Fetch(ctx context.Context, viewerID int64, limit, offset int) ([]domain.Job, int64, error) {
	query := jobSelect + ` ORDER BY j.created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, viewerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	var status *string
	err := row.Scan(
		&j.ID, &j.UserID, &j.Title, &j.Company, &j.Location, &j.Salary, &j.JobType,
		&j.Description, pq.Array(&j.Requirements), &j.CreatedAt,
		&status, &j.Saved,
	)
	if err != nil {
		return nil, err
	}
	if status != nil {
		j.Status = *status
		j.Applied = *status == domain.ApplicationApplied
	}
	return &j, nil
}

// Apply upserts the application back to 'applied' so a withdrawn candidate
// can re-apply without a duplicate row.
func (r *jobRepo) Apply(ctx context.Context, jobID, userID int64) (*domain.JobApplication, error) {
	now := time.Now()
	query := `INSERT INTO job_applications (job_id, user_id, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $4)
              ON CONFLICT (job_id, user_id)
              DO UPDATE SET status = $3, updated_at = $4
              RETURNING id, job_id, user_id, status, created_at, updated_at`
	var app domain.JobApplication
	err := r.db.QueryRow(ctx, query, jobID, userID, domain.ApplicationApplied, now).Scan(
		&app.ID, &app.JobID, &app.UserID, &app.Status, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *jobRepo) Withdraw(ctx context.Context, jobID, userID int64) error {
	query := `UPDATE job_applications SET status = $3, updated_at = NOW()
              WHERE job_id = $1 AND user_id = $2 AND status = $4`
	result, err := r.db.Exec(ctx, query, jobID, userID, domain.ApplicationWithdrawn, domain.ApplicationApplied)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) ToggleSave(ctx context.Context, jobID, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM job_saves WHERE job_id = $1 AND user_id = $2`, jobID, userID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO job_saves (job_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		jobID, userID)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *jobRepo) FetchApplications(ctx context.Context) ([]domain.ApplicationExportRow, error) {
	query := `
		SELECT ja.id, j.title, j.company, u.username, u.email, ja.status, ja.created_at
		FROM job_applications ja
		JOIN jobs j ON j.id = ja.job_id
		JOIN users u ON u.id = ja.user_id
		ORDER BY ja.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ApplicationExportRow
	for rows.Next() {
		var row domain.ApplicationExportRow
		if err := rows.Scan(&row.ApplicationID, &row.JobTitle, &row.Company,
			&row.Applicant, &row.Email, &row.Status, &row.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
