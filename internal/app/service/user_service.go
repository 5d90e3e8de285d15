package service

import (
	"context"

	"jobboard/internal/common"
	"jobboard/internal/domain/model"
	"jobboard/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	jobRepo  repository.JobRepository
	appRepo  repository.ApplicationRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	jobRepo repository.JobRepository,
	appRepo repository.ApplicationRepository,
) *UserService {
	return &UserService{userRepo: userRepo, jobRepo: jobRepo, appRepo: appRepo}
}

// UpdateProfileRequest carries the only fields a caller may change. Email
// and password never merge through this path, whatever the request body held.
type UpdateProfileRequest struct {
	FullName *string `json:"fullName,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

// Profile returns a user with posted jobs and submitted applications
// attached, credential hash stripped. Serves both the acting user's profile
// and the public profile-by-id view.
func (s *UserService) Profile(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, common.Errorf("failed to find user: %w", err)
	}

	jobs, err := s.jobRepo.ListByOwner(ctx, id)
	if err != nil {
		return nil, common.Errorf("failed to load posted jobs: %w", err)
	}
	apps, err := s.appRepo.ListByApplicant(ctx, id)
	if err != nil {
		return nil, common.Errorf("failed to load applications: %w", err)
	}

	user.HashedPassword = ""
	user.PostedJobs = jobs
	user.Applications = apps
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, common.Errorf("failed to find user: %w", err)
	}

	if req.FullName != nil {
		if *req.FullName == "" {
			return nil, common.Errorf("fullName cannot be empty: %w", common.ErrValidation)
		}
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Location != nil {
		user.Location = req.Location
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, common.Errorf("failed to update profile: %w", err)
	}
	user.HashedPassword = ""
	return user, nil
}
