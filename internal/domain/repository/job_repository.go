package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"jobboard/internal/common"
	"jobboard/internal/domain/model"
)

type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id string) (*model.Job, error)
	ListAll(ctx context.Context) ([]model.Job, error)
	ListByOwner(ctx context.Context, userID string) ([]model.Job, error)
	Update(ctx context.Context, job *model.Job) error
	Delete(ctx context.Context, id string) error
}

type pgJobRepository struct {
	db *sql.DB
}

func NewPgJobRepository(db *sql.DB) JobRepository {
	return &pgJobRepository{db: db}
}

const jobColumns = `j.id, j.title, j.slug, j.company, j.location, j.description,
	j.job_type, j.salary, j.requirements, j.responsibilities, j.deadline,
	j.status, j.posted_by_id, j.created_at, j.updated_at`

func scanJob(row interface{ Scan(dest ...any) error }, j *model.Job) error {
	return row.Scan(
		&j.ID, &j.Title, &j.Slug, &j.Company, &j.Location, &j.Description,
		&j.JobType, &j.Salary, &j.Requirements, &j.Responsibilities, &j.Deadline,
		&j.Status, &j.PostedByID, &j.CreatedAt, &j.UpdatedAt,
	)
}

func (r *pgJobRepository) Create(ctx context.Context, job *model.Job) error {
	query := `INSERT INTO jobs (id, title, slug, company, location, description,
	            job_type, salary, requirements, responsibilities, deadline, status, posted_by_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.Title, job.Slug, job.Company, job.Location, job.Description,
		job.JobType, job.Salary, job.Requirements, job.Responsibilities, job.Deadline,
		job.Status, job.PostedByID,
	)
	if err != nil {
		return fmt.Errorf("pgJobRepository.Create: %w", err)
	}
	return nil
}

// FindByID returns the job with an owner summary joined for display.
func (r *pgJobRepository) FindByID(ctx context.Context, id string) (*model.Job, error) {
	query := `SELECT ` + jobColumns + `,
	            u.id, u.email, u.full_name, u.role, u.phone, u.location, u.bio, u.created_at, u.updated_at
	          FROM jobs j
	          JOIN users u ON j.posted_by_id = u.id
	          WHERE j.id = $1`
	job := &model.Job{}
	owner := &model.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&job.ID, &job.Title, &job.Slug, &job.Company, &job.Location, &job.Description,
		&job.JobType, &job.Salary, &job.Requirements, &job.Responsibilities, &job.Deadline,
		&job.Status, &job.PostedByID, &job.CreatedAt, &job.UpdatedAt,
		&owner.ID, &owner.Email, &owner.FullName, &owner.Role, &owner.Phone,
		&owner.Location, &owner.Bio, &owner.CreatedAt, &owner.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgJobRepository.FindByID: %w", err)
	}
	owner.PostedJobs = []model.Job{}
	owner.Applications = []model.Application{}
	job.PostedBy = owner
	job.Applications = []model.Application{}
	return job, nil
}

func (r *pgJobRepository) ListAll(ctx context.Context) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + `,
	            u.id, u.email, u.full_name, u.role, u.phone, u.location, u.bio, u.created_at, u.updated_at
	          FROM jobs j
	          JOIN users u ON j.posted_by_id = u.id
	          ORDER BY j.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgJobRepository.ListAll query: %w", err)
	}
	defer rows.Close()

	jobs := []model.Job{}
	for rows.Next() {
		var j model.Job
		owner := &model.User{}
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Slug, &j.Company, &j.Location, &j.Description,
			&j.JobType, &j.Salary, &j.Requirements, &j.Responsibilities, &j.Deadline,
			&j.Status, &j.PostedByID, &j.CreatedAt, &j.UpdatedAt,
			&owner.ID, &owner.Email, &owner.FullName, &owner.Role, &owner.Phone,
			&owner.Location, &owner.Bio, &owner.CreatedAt, &owner.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgJobRepository.ListAll scan: %w", err)
		}
		owner.PostedJobs = []model.Job{}
		owner.Applications = []model.Application{}
		j.PostedBy = owner
		j.Applications = []model.Application{}
		jobs = append(jobs, j)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgJobRepository.ListAll rows.Err: %w", err)
	}
	return jobs, nil
}

func (r *pgJobRepository) ListByOwner(ctx context.Context, userID string) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + `
	          FROM jobs j
	          WHERE j.posted_by_id = $1
	          ORDER BY j.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgJobRepository.ListByOwner query: %w", err)
	}
	defer rows.Close()

	jobs := []model.Job{}
	for rows.Next() {
		var j model.Job
		if err := scanJob(rows, &j); err != nil {
			return nil, fmt.Errorf("pgJobRepository.ListByOwner scan: %w", err)
		}
		j.Applications = []model.Application{}
		jobs = append(jobs, j)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgJobRepository.ListByOwner rows.Err: %w", err)
	}
	return jobs, nil
}

func (r *pgJobRepository) Update(ctx context.Context, job *model.Job) error {
	query := `UPDATE jobs SET
	            title = $1, slug = $2, company = $3, location = $4, description = $5,
	            job_type = $6, salary = $7, requirements = $8, responsibilities = $9,
	            deadline = $10, status = $11, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $12`
	result, err := r.db.ExecContext(ctx, query,
		job.Title, job.Slug, job.Company, job.Location, job.Description,
		job.JobType, job.Salary, job.Requirements, job.Responsibilities,
		job.Deadline, job.Status, job.ID,
	)
	if err != nil {
		return fmt.Errorf("pgJobRepository.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgJobRepository.Update rows affected: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Delete removes the job; dependent applications go with it via
// ON DELETE CASCADE on job_applications.job_id.
func (r *pgJobRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgJobRepository.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgJobRepository.Delete rows affected: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}
	return nil
}
