package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/model"
)

// In-memory repository fakes. They return copies the way a real query
// returns fresh rows, so callers clearing HashedPassword or merging patches
// never mutate the stored state by accident.

type fakeUserRepo struct {
	users map[string]model.User // keyed by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with this email already exists: %w", common.ErrConflict)
		}
	}
	stored := *user
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.users[user.ID] = stored
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := u
	copied.PostedJobs = []model.Job{}
	copied.Applications = []model.Application{}
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			copied.PostedJobs = []model.Job{}
			copied.Applications = []model.Application{}
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *model.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return common.ErrNotFound
	}
	stored.FullName = user.FullName
	stored.Phone = user.Phone
	stored.Location = user.Location
	stored.Bio = user.Bio
	stored.UpdatedAt = time.Now()
	r.users[user.ID] = stored
	return nil
}

type fakeJobRepo struct {
	jobs  map[string]model.Job
	users *fakeUserRepo // for owner joins
	seq   int           // creation order stand-in for created_at ordering
	order map[string]int
}

func newFakeJobRepo(users *fakeUserRepo) *fakeJobRepo {
	return &fakeJobRepo{jobs: map[string]model.Job{}, users: users, order: map[string]int{}}
}

func (r *fakeJobRepo) Create(_ context.Context, job *model.Job) error {
	stored := *job
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.seq++
	r.order[job.ID] = r.seq
	r.jobs[job.ID] = stored
	return nil
}

func (r *fakeJobRepo) FindByID(_ context.Context, id string) (*model.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := j
	copied.Applications = []model.Application{}
	if r.users != nil {
		if owner, ok := r.users.users[j.PostedByID]; ok {
			ownerCopy := owner
			ownerCopy.HashedPassword = ""
			ownerCopy.PostedJobs = []model.Job{}
			ownerCopy.Applications = []model.Application{}
			copied.PostedBy = &ownerCopy
		}
	}
	return &copied, nil
}

func (r *fakeJobRepo) newestFirst(jobs []model.Job) []model.Job {
	sort.Slice(jobs, func(i, k int) bool {
		return r.order[jobs[i].ID] > r.order[jobs[k].ID]
	})
	return jobs
}

func (r *fakeJobRepo) ListAll(_ context.Context) ([]model.Job, error) {
	out := []model.Job{}
	for _, j := range r.jobs {
		copied := j
		copied.Applications = []model.Application{}
		if r.users != nil {
			if owner, ok := r.users.users[j.PostedByID]; ok {
				ownerCopy := owner
				ownerCopy.HashedPassword = ""
				ownerCopy.PostedJobs = []model.Job{}
				ownerCopy.Applications = []model.Application{}
				copied.PostedBy = &ownerCopy
			}
		}
		out = append(out, copied)
	}
	return r.newestFirst(out), nil
}

func (r *fakeJobRepo) ListByOwner(_ context.Context, userID string) ([]model.Job, error) {
	out := []model.Job{}
	for _, j := range r.jobs {
		if j.PostedByID == userID {
			copied := j
			copied.Applications = []model.Application{}
			out = append(out, copied)
		}
	}
	return r.newestFirst(out), nil
}

func (r *fakeJobRepo) Update(_ context.Context, job *model.Job) error {
	stored, ok := r.jobs[job.ID]
	if !ok {
		return common.ErrNotFound
	}
	updated := *job
	updated.PostedBy = nil
	updated.Applications = nil
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	r.jobs[job.ID] = updated
	return nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.jobs[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

type fakeApplicationRepo struct {
	apps  map[string]model.Application
	jobs  *fakeJobRepo
	seq   int
	order map[string]int
}

func newFakeApplicationRepo(jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: map[string]model.Application{}, jobs: jobs, order: map[string]int{}}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *model.Application) error {
	for _, a := range r.apps {
		if a.JobID == app.JobID && a.ApplicantID == app.ApplicantID {
			return fmt.Errorf("you have already applied to this job: %w", common.ErrConflict)
		}
	}
	stored := *app
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.seq++
	r.order[app.ID] = r.seq
	r.apps[app.ID] = stored
	return nil
}

func (r *fakeApplicationRepo) FindByID(_ context.Context, id string) (*model.Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := a
	if r.jobs != nil {
		if j, ok := r.jobs.jobs[a.JobID]; ok {
			jobCopy := j
			jobCopy.Applications = []model.Application{}
			copied.Job = &jobCopy
		}
	}
	return &copied, nil
}

func (r *fakeApplicationRepo) newestFirst(apps []model.Application) []model.Application {
	sort.Slice(apps, func(i, k int) bool {
		return r.order[apps[i].ID] > r.order[apps[k].ID]
	})
	return apps
}

func (r *fakeApplicationRepo) ListByJob(_ context.Context, jobID string) ([]model.Application, error) {
	out := []model.Application{}
	for _, a := range r.apps {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return r.newestFirst(out), nil
}

func (r *fakeApplicationRepo) ListByJobIDs(ctx context.Context, jobIDs []string) ([]model.Application, error) {
	out := []model.Application{}
	for _, id := range jobIDs {
		apps, _ := r.ListByJob(ctx, id)
		out = append(out, apps...)
	}
	return r.newestFirst(out), nil
}

func (r *fakeApplicationRepo) ListByApplicant(_ context.Context, applicantID string) ([]model.Application, error) {
	out := []model.Application{}
	for _, a := range r.apps {
		if a.ApplicantID == applicantID {
			copied := a
			if r.jobs != nil {
				if j, ok := r.jobs.jobs[a.JobID]; ok {
					jobCopy := j
					jobCopy.Applications = []model.Application{}
					copied.Job = &jobCopy
				}
			}
			out = append(out, copied)
		}
	}
	return r.newestFirst(out), nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id string, status model.ApplicationStatus) error {
	a, ok := r.apps[id]
	if !ok {
		return common.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	r.apps[id] = a
	return nil
}
