package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/common"
	"jobboard/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	FindByID(ctx context.Context, id string) (*model.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]model.Application, error)
	ListByJobIDs(ctx context.Context, jobIDs []string) ([]model.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]model.Application, error)
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error
}

type pgApplicationRepository struct {
	db *sql.DB
}

func NewPgApplicationRepository(db *sql.DB) ApplicationRepository {
	return &pgApplicationRepository{db: db}
}

const applicationColumns = `a.id, a.job_id, a.applicant_id, a.cover_letter, a.resume,
	a.status, a.created_at, a.updated_at`

// Create inserts a new application. The (job_id, applicant_id) unique
// constraint is the sole duplicate signal; there is no pre-check read, so two
// concurrent submissions cannot both slip through.
func (r *pgApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	query := `INSERT INTO job_applications (id, job_id, applicant_id, cover_letter, resume, status)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		app.ID, app.JobID, app.ApplicantID, app.CoverLetter, app.Resume, app.Status,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // Unique violation on (job_id, applicant_id)
				return fmt.Errorf("you have already applied to this job: %w", common.ErrConflict)
			case "23503": // FK violation, job or applicant vanished between check and insert
				return fmt.Errorf("job not found: %w", common.ErrNotFound)
			}
		}
		return fmt.Errorf("pgApplicationRepository.Create: %w", err)
	}
	return nil
}

// FindByID returns the application with its job joined, so callers can run
// ownership checks against the job's poster.
func (r *pgApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	query := `SELECT ` + applicationColumns + `,
	            j.id, j.title, j.slug, j.company, j.location, j.description, j.status, j.posted_by_id, j.created_at, j.updated_at
	          FROM job_applications a
	          JOIN jobs j ON a.job_id = j.id
	          WHERE a.id = $1`
	app := &model.Application{}
	job := &model.Job{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&app.ID, &app.JobID, &app.ApplicantID, &app.CoverLetter, &app.Resume,
		&app.Status, &app.CreatedAt, &app.UpdatedAt,
		&job.ID, &job.Title, &job.Slug, &job.Company, &job.Location, &job.Description,
		&job.Status, &job.PostedByID, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgApplicationRepository.FindByID: %w", err)
	}
	job.Applications = []model.Application{}
	app.Job = job
	return app, nil
}

// ListByJob returns a job's applications, applicant joined, newest first.
func (r *pgApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]model.Application, error) {
	query := `SELECT ` + applicationColumns + `,
	            u.id, u.email, u.full_name, u.role, u.phone, u.location, u.bio, u.created_at, u.updated_at
	          FROM job_applications a
	          JOIN users u ON a.applicant_id = u.id
	          WHERE a.job_id = $1
	          ORDER BY a.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("pgApplicationRepository.ListByJob query: %w", err)
	}
	defer rows.Close()
	return scanApplicantApplications(rows, "ListByJob")
}

// ListByJobIDs returns applications for a set of jobs in one round trip,
// used when assembling job listings with their applications attached.
func (r *pgApplicationRepository) ListByJobIDs(ctx context.Context, jobIDs []string) ([]model.Application, error) {
	if len(jobIDs) == 0 {
		return []model.Application{}, nil
	}
	placeholders := make([]string, len(jobIDs))
	args := make([]interface{}, len(jobIDs))
	for i, id := range jobIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := `SELECT ` + applicationColumns + `,
	            u.id, u.email, u.full_name, u.role, u.phone, u.location, u.bio, u.created_at, u.updated_at
	          FROM job_applications a
	          JOIN users u ON a.applicant_id = u.id
	          WHERE a.job_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY a.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgApplicationRepository.ListByJobIDs query: %w", err)
	}
	defer rows.Close()
	return scanApplicantApplications(rows, "ListByJobIDs")
}

func scanApplicantApplications(rows *sql.Rows, method string) ([]model.Application, error) {
	apps := []model.Application{}
	for rows.Next() {
		var a model.Application
		applicant := &model.User{}
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.ApplicantID, &a.CoverLetter, &a.Resume,
			&a.Status, &a.CreatedAt, &a.UpdatedAt,
			&applicant.ID, &applicant.Email, &applicant.FullName, &applicant.Role,
			&applicant.Phone, &applicant.Location, &applicant.Bio,
			&applicant.CreatedAt, &applicant.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgApplicationRepository.%s scan: %w", method, err)
		}
		applicant.PostedJobs = []model.Job{}
		applicant.Applications = []model.Application{}
		a.Applicant = applicant
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgApplicationRepository.%s rows.Err: %w", method, err)
	}
	return apps, nil
}

// ListByApplicant returns a user's applications, each joined with its job and
// the job's owner, newest first.
func (r *pgApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]model.Application, error) {
	query := `SELECT ` + applicationColumns + `,
	            j.id, j.title, j.slug, j.company, j.location, j.description, j.status, j.posted_by_id, j.created_at, j.updated_at,
	            u.id, u.email, u.full_name, u.role, u.created_at, u.updated_at
	          FROM job_applications a
	          JOIN jobs j ON a.job_id = j.id
	          JOIN users u ON j.posted_by_id = u.id
	          WHERE a.applicant_id = $1
	          ORDER BY a.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, applicantID)
	if err != nil {
		return nil, fmt.Errorf("pgApplicationRepository.ListByApplicant query: %w", err)
	}
	defer rows.Close()

	apps := []model.Application{}
	for rows.Next() {
		var a model.Application
		job := &model.Job{}
		owner := &model.User{}
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.ApplicantID, &a.CoverLetter, &a.Resume,
			&a.Status, &a.CreatedAt, &a.UpdatedAt,
			&job.ID, &job.Title, &job.Slug, &job.Company, &job.Location, &job.Description,
			&job.Status, &job.PostedByID, &job.CreatedAt, &job.UpdatedAt,
			&owner.ID, &owner.Email, &owner.FullName, &owner.Role, &owner.CreatedAt, &owner.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgApplicationRepository.ListByApplicant scan: %w", err)
		}
		owner.PostedJobs = []model.Job{}
		owner.Applications = []model.Application{}
		job.PostedBy = owner
		job.Applications = []model.Application{}
		a.Job = job
		apps = append(apps, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgApplicationRepository.ListByApplicant rows.Err: %w", err)
	}
	return apps, nil
}

func (r *pgApplicationRepository) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error {
	query := `UPDATE job_applications SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("pgApplicationRepository.UpdateStatus: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgApplicationRepository.UpdateStatus rows affected: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}
	return nil
}
