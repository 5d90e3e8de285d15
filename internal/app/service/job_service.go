package service

import (
	"context"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/model"
	"jobboard/internal/domain/repository"
	"jobboard/internal/platform/cache"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type JobService struct {
	jobRepo  repository.JobRepository
	appRepo  repository.ApplicationRepository
	jobCache *cache.JobCache
}

func NewJobService(
	jobRepo repository.JobRepository,
	appRepo repository.ApplicationRepository,
	jobCache *cache.JobCache,
) *JobService {
	return &JobService{jobRepo: jobRepo, appRepo: appRepo, jobCache: jobCache}
}

type CreateJobRequest struct {
	Title            string  `json:"title"`
	Company          string  `json:"company"`
	Location         string  `json:"location"`
	Description      string  `json:"description"`
	JobType          *string `json:"jobType,omitempty"`
	Salary           *string `json:"salary,omitempty"`
	Requirements     *string `json:"requirements,omitempty"`
	Responsibilities *string `json:"responsibilities,omitempty"`
	Deadline         *string `json:"deadline,omitempty"` // YYYY-MM-DD
}

type UpdateJobRequest struct {
	Title            *string          `json:"title,omitempty"`
	Company          *string          `json:"company,omitempty"`
	Location         *string          `json:"location,omitempty"`
	Description      *string          `json:"description,omitempty"`
	JobType          *string          `json:"jobType,omitempty"`
	Salary           *string          `json:"salary,omitempty"`
	Requirements     *string          `json:"requirements,omitempty"`
	Responsibilities *string          `json:"responsibilities,omitempty"`
	Deadline         *string          `json:"deadline,omitempty"`
	Status           *model.JobStatus `json:"status,omitempty"`
}

func parseDeadline(s string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, common.Errorf("deadline must be a YYYY-MM-DD date: %w", common.ErrValidation)
	}
	return &t, nil
}

func (s *JobService) Create(ctx context.Context, actorID string, req CreateJobRequest) (*model.Job, error) {
	if req.Title == "" || req.Company == "" || req.Location == "" || req.Description == "" {
		return nil, common.Errorf("title, company, location and description are required: %w", common.ErrBadRequest)
	}

	job := &model.Job{
		ID:               uuid.NewString(),
		Title:            req.Title,
		Company:          req.Company,
		Location:         req.Location,
		Description:      req.Description,
		JobType:          req.JobType,
		Salary:           req.Salary,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Status:           model.JobStatusActive,
		PostedByID:       actorID,
		Applications:     []model.Application{},
	}
	// Slug gets a short id suffix so identical titles don't collide.
	job.Slug = slug.Make(req.Title) + "-" + job.ID[:8]

	if req.Deadline != nil && *req.Deadline != "" {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			return nil, err
		}
		job.Deadline = deadline
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, common.Errorf("failed to create job: %w", err)
	}
	s.jobCache.Invalidate(ctx)
	return job, nil
}

// List returns every job, newest first, with owner summary and applications
// attached, served through the redis cache when warm.
func (s *JobService) List(ctx context.Context) ([]model.Job, error) {
	if jobs, ok := s.jobCache.GetJobList(ctx); ok {
		return jobs, nil
	}

	jobs, err := s.jobRepo.ListAll(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list jobs: %w", err)
	}
	if err := s.attachApplications(ctx, jobs); err != nil {
		return nil, err
	}
	s.jobCache.SetJobList(ctx, jobs)
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*model.Job, error) {
	if job, ok := s.jobCache.GetJob(ctx, id); ok {
		return job, nil
	}

	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, common.Errorf("failed to find job: %w", err)
	}
	apps, err := s.appRepo.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, common.Errorf("failed to load job applications: %w", err)
	}
	job.Applications = apps
	s.jobCache.SetJob(ctx, job)
	return job, nil
}

// ListByOwner returns the acting user's postings, applications attached,
// newest first.
func (s *JobService) ListByOwner(ctx context.Context, actorID string) ([]model.Job, error) {
	jobs, err := s.jobRepo.ListByOwner(ctx, actorID)
	if err != nil {
		return nil, common.Errorf("failed to list jobs: %w", err)
	}
	if err := s.attachApplications(ctx, jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobService) Update(ctx context.Context, id, actorID string, req UpdateJobRequest) (*model.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, common.Errorf("failed to find job: %w", err)
	}
	if job.PostedByID != actorID {
		return nil, common.Errorf("you can only update your own job postings: %w", common.ErrForbidden)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, common.Errorf("title cannot be empty: %w", common.ErrValidation)
		}
		job.Title = *req.Title
		job.Slug = slug.Make(job.Title) + "-" + job.ID[:8]
	}
	if req.Company != nil {
		if *req.Company == "" {
			return nil, common.Errorf("company cannot be empty: %w", common.ErrValidation)
		}
		job.Company = *req.Company
	}
	if req.Location != nil {
		if *req.Location == "" {
			return nil, common.Errorf("location cannot be empty: %w", common.ErrValidation)
		}
		job.Location = *req.Location
	}
	if req.Description != nil {
		if *req.Description == "" {
			return nil, common.Errorf("description cannot be empty: %w", common.ErrValidation)
		}
		job.Description = *req.Description
	}
	if req.JobType != nil {
		job.JobType = req.JobType
	}
	if req.Salary != nil {
		job.Salary = req.Salary
	}
	if req.Requirements != nil {
		job.Requirements = req.Requirements
	}
	if req.Responsibilities != nil {
		job.Responsibilities = req.Responsibilities
	}
	if req.Deadline != nil && *req.Deadline != "" {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			return nil, err
		}
		job.Deadline = deadline
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, common.Errorf("unknown job status %q: %w", *req.Status, common.ErrValidation)
		}
		job.Status = *req.Status
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, common.Errorf("failed to update job: %w", err)
	}
	s.jobCache.Invalidate(ctx, job.ID)
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, id, actorID string) error {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return common.Errorf("failed to find job: %w", err)
	}
	if job.PostedByID != actorID {
		return common.Errorf("you can only delete your own job postings: %w", common.ErrForbidden)
	}

	// Applications cascade with the job.
	if err := s.jobRepo.Delete(ctx, id); err != nil {
		return common.Errorf("failed to delete job: %w", err)
	}
	s.jobCache.Invalidate(ctx, id)
	return nil
}

// attachApplications loads applications for a page of jobs in one query and
// distributes them by job id.
func (s *JobService) attachApplications(ctx context.Context, jobs []model.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	ids := make([]string, len(jobs))
	for i := range jobs {
		ids[i] = jobs[i].ID
	}
	apps, err := s.appRepo.ListByJobIDs(ctx, ids)
	if err != nil {
		return common.Errorf("failed to load applications: %w", err)
	}
	byJob := make(map[string][]model.Application, len(jobs))
	for _, a := range apps {
		byJob[a.JobID] = append(byJob[a.JobID], a)
	}
	for i := range jobs {
		if apps, ok := byJob[jobs[i].ID]; ok {
			jobs[i].Applications = apps
		} else {
			jobs[i].Applications = []model.Application{}
		}
	}
	return nil
}
