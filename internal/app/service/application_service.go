package service

import (
	"context"

	"jobboard/internal/common"
	"jobboard/internal/domain/model"
	"jobboard/internal/domain/repository"
	"jobboard/internal/platform/cache"

	"github.com/google/uuid"
)

type ApplicationService struct {
	appRepo  repository.ApplicationRepository
	jobRepo  repository.JobRepository
	jobCache *cache.JobCache
}

func NewApplicationService(
	appRepo repository.ApplicationRepository,
	jobRepo repository.JobRepository,
	jobCache *cache.JobCache,
) *ApplicationService {
	return &ApplicationService{appRepo: appRepo, jobRepo: jobRepo, jobCache: jobCache}
}

type ApplyRequest struct {
	JobID       string  `json:"jobId"`
	CoverLetter string  `json:"coverLetter"`
	Resume      *string `json:"resume,omitempty"`
}

type UpdateStatusRequest struct {
	Status model.ApplicationStatus `json:"status"`
}

func (s *ApplicationService) Apply(ctx context.Context, applicantID string, req ApplyRequest) (*model.Application, error) {
	if req.JobID == "" || req.CoverLetter == "" {
		return nil, common.Errorf("jobId and coverLetter are required: %w", common.ErrBadRequest)
	}

	if _, err := s.jobRepo.FindByID(ctx, req.JobID); err != nil {
		return nil, common.Errorf("failed to find job: %w", err)
	}

	app := &model.Application{
		ID:          uuid.NewString(),
		JobID:       req.JobID,
		ApplicantID: applicantID,
		CoverLetter: req.CoverLetter,
		Resume:      req.Resume,
		Status:      model.ApplicationStatusPending,
	}

	// The unique constraint on (job_id, applicant_id) decides duplicates;
	// the repo maps its violation to ErrConflict.
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, common.Errorf("failed to create application: %w", err)
	}
	s.jobCache.Invalidate(ctx, req.JobID)
	return app, nil
}

// ListForJob returns a job's applications to its owner.
func (s *ApplicationService) ListForJob(ctx context.Context, jobID, actorID string) ([]model.Application, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, common.Errorf("failed to find job: %w", err)
	}
	if job.PostedByID != actorID {
		return nil, common.Errorf("you can only view applications for your own job postings: %w", common.ErrForbidden)
	}

	apps, err := s.appRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, common.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// ListMine returns the acting user's applications, jobs joined, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, actorID string) ([]model.Application, error) {
	apps, err := s.appRepo.ListByApplicant(ctx, actorID)
	if err != nil {
		return nil, common.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// UpdateStatus overwrites an application's status on behalf of the job owner.
// Unknown statuses are rejected; transitions between known statuses are not
// restricted.
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID, actorID string, status model.ApplicationStatus) (*model.Application, error) {
	if !status.Valid() {
		return nil, common.Errorf("unknown application status %q: %w", status, common.ErrValidation)
	}

	app, err := s.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, common.Errorf("failed to find application: %w", err)
	}
	if app.Job == nil || app.Job.PostedByID != actorID {
		return nil, common.Errorf("you can only update applications for your own job postings: %w", common.ErrForbidden)
	}

	if err := s.appRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, common.Errorf("failed to update application status: %w", err)
	}
	app.Status = status
	s.jobCache.Invalidate(ctx, app.JobID)
	return app, nil
}
