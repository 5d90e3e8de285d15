package service

import (
	"context"
	"errors"
	"testing"

	"jobboard/internal/common"
	"jobboard/internal/domain/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApplicationTestEnv(t *testing.T) (*ApplicationService, *JobService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	jobs := newFakeJobRepo(users)
	apps := newFakeApplicationRepo(jobs)
	return NewApplicationService(apps, jobs, nil), NewJobService(jobs, apps, nil), users
}

func seedJob(t *testing.T, jobSvc *JobService, ownerID, title string) *model.Job {
	t.Helper()
	job, err := jobSvc.Create(context.Background(), ownerID, CreateJobRequest{
		Title: title, Company: "Acme", Location: "Remote", Description: "Work on things",
	})
	require.NoError(t, err)
	return job
}

func TestApplyCreatesPendingApplication(t *testing.T) {
	appSvc, jobSvc, users := newApplicationTestEnv(t)
	owner := seedUser(t, users, "e@x.com", model.RoleEmployer)
	seeker := seedUser(t, users, "j@x.com", model.RoleJobSeeker)
	job := seedJob(t, jobSvc, owner, "Backend Engineer")

	app, err := appSvc.Apply(context.Background(), seeker, ApplyRequest{
		JobID:       job.ID,
		CoverLetter: "I would be a great fit.",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusPending, app.Status)
	assert.Equal(t, job.ID, app.JobID)
	assert.Equal(t, seeker, app.ApplicantID)
}

func TestApplyToMissingJobNotFound(t *testing.T) {
	appSvc, _, users := newApplicationTestEnv(t)
	seeker := seedUser(t, users, "j@x.com", model.RoleJobSeeker)

	_, err := appSvc.Apply(context.Background(), seeker, ApplyRequest{
		JobID:       uuid.NewString(),
		CoverLetter: "hello",
	})
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestApplyRequiresCoverLetter(t *testing.T) {
	appSvc, jobSvc, users := newApplicationTestEnv(t)
	owner := seedUser(t, users, "e@x.com", model.RoleEmployer)
	seeker := seedUser(t, users, "j@x.com", model.RoleJobSeeker)
	job := seedJob(t, jobSvc, owner, "Backend Engineer")

	_, err := appSvc.Apply(context.Background(), seeker, ApplyRequest{JobID: job.ID})
	assert.True(t, errors.Is(err, common.ErrBadRequest))
}

func TestApplyTwiceConflicts(t *testing.T) {
	appSvc, jobSvc, users := newApplicationTestEnv(t)
	owner := seedUser(t, users, "e@x.com", model.RoleEmployer)
	seeker := seedUser(t, users, "j@x.com", model.RoleJobSeeker)
	job := seedJob(t, jobSvc, owner, "Backend Engineer")
	ctx := context.Background()

	_, err := appSvc.Apply(ctx, seeker, ApplyRequest{JobID: job.ID, CoverLetter: "first"})
	require.NoError(t, err)

	_, err = appSvc.Apply(ctx, seeker, ApplyRequest{JobID: job.ID, CoverLetter: "second"})
	assert.True(t, errors.Is(err, common.ErrConflict), "second application must conflict, got %v", err)
}

func TestListForJobOwnershipGate(t *testing.T) {
	appSvc, jobSvc, users := newApplicationTestEnv(t)
	owner := seedUser(t, users, "e@x.com", model.RoleEmployer)
	other := seedUser(t, users, "other@x.com", model.RoleEmployer)
	seeker := seedUser(t, users, "j@x.com", model.RoleJobSeeker)
	job := seedJob(t, jobSvc, owner, "Backend Engineer")
	otherJob := seedJob(t, jobSvc, other, "Frontend Engineer")
	ctx := context.Background()

	_, err := appSvc.Apply(ctx, seeker, ApplyRequest{JobID: job.ID, CoverLetter: "a"})
	require.NoError(t, err)
	_, err = appSvc.Apply(ctx, seeker, ApplyRequest{JobID: otherJob.ID, CoverLetter: "b"})
	require.NoError(t, err)

	_, err = appSvc.ListForJob(ctx, job.ID, other)
	assert.True(t, errors.Is(err, common.ErrForbidden))

	apps, err := appSvc.ListForJob(ctx, job.ID, owner)
	require.NoError(t, err)
	require.Len(t, apps, 1, "only applications for the owner's job")
	assert.Equal(t, job.ID, apps[0].JobID)
	assert.Equal(t, model.ApplicationStatusPending, apps[0].Status)
}

func TestListMineReturnsOwnApplicationsWithJobs(t *testing.T) {
	appSvc, jobSvc, users := newApplicationTestEnv(t)
	owner := seedUser(t, users, "e@x.com", model.RoleEmployer)
	seeker := seedUser(t, users, "j@x.com", model.RoleJobSeeker)
	bystander := seedUser(t, users, "b@x.com", model.RoleJobSeeker)
	job := seedJob(t, jobSvc, owner, "Backend Engineer")
	ctx := context.Background()

	_, err := appSvc.Apply(ctx, seeker, ApplyRequest{JobID: job.ID, CoverLetter: "mine"})
	require.NoError(t, err)
	_, err = appSvc.Apply(ctx, bystander, ApplyRequest{JobID: job.ID, CoverLetter: "not mine"})
	require.NoError(t, err)

	apps, err := appSvc.ListMine(ctx, seeker)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "mine", apps[0].CoverLetter)
	require.NotNil(t, apps[0].Job)
	assert.Equal(t, "Backend Engineer", apps[0].Job.Title)
}

func TestUpdateStatusOwnershipAndValidation(t *testing.T) {
	appSvc, jobSvc, users := newApplicationTestEnv(t)
	owner := seedUser(t, users, "e@x.com", model.RoleEmployer)
	other := seedUser(t, users, "other@x.com", model.RoleEmployer)
	seeker := seedUser(t, users, "j@x.com", model.RoleJobSeeker)
	job := seedJob(t, jobSvc, owner, "Backend Engineer")
	ctx := context.Background()

	app, err := appSvc.Apply(ctx, seeker, ApplyRequest{JobID: job.ID, CoverLetter: "x"})
	require.NoError(t, err)

	_, err = appSvc.UpdateStatus(ctx, app.ID, owner, model.ApplicationStatus("shortlisted"))
	assert.True(t, errors.Is(err, common.ErrValidation), "unknown status must be rejected")

	_, err = appSvc.UpdateStatus(ctx, app.ID, other, model.ApplicationStatusReviewed)
	assert.True(t, errors.Is(err, common.ErrForbidden))

	updated, err := appSvc.UpdateStatus(ctx, app.ID, owner, model.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusAccepted, updated.Status)

	// Visible in subsequent reads
	apps, err := appSvc.ListForJob(ctx, job.ID, owner)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, model.ApplicationStatusAccepted, apps[0].Status)

	// No terminal-state lock: accepted can go back to pending
	updated, err = appSvc.UpdateStatus(ctx, app.ID, owner, model.ApplicationStatusPending)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusPending, updated.Status)
}

func TestUpdateStatusMissingApplication(t *testing.T) {
	appSvc, _, users := newApplicationTestEnv(t)
	owner := seedUser(t, users, "e@x.com", model.RoleEmployer)

	_, err := appSvc.UpdateStatus(context.Background(), uuid.NewString(), owner, model.ApplicationStatusReviewed)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
