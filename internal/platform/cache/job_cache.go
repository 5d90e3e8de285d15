package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"jobboard/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

const (
	jobListKey      = "jobs:all"
	jobDetailPrefix = "jobs:id:"
)

// JobCache is a short-TTL read-through cache for the public job listing and
// job detail views. Cache errors degrade to a miss; the store stays the
// source of truth. A nil *JobCache is a no-op, which keeps the services
// testable without a Redis instance.
type JobCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewJobCache(rdb *redis.Client, ttl time.Duration) *JobCache {
	return &JobCache{rdb: rdb, ttl: ttl}
}

func (c *JobCache) GetJobList(ctx context.Context) ([]model.Job, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, jobListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("job cache: get %s: %v", jobListKey, err)
		}
		return nil, false
	}
	var jobs []model.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		log.Printf("job cache: unmarshal %s: %v", jobListKey, err)
		return nil, false
	}
	return jobs, true
}

func (c *JobCache) SetJobList(ctx context.Context, jobs []model.Job) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(jobs)
	if err != nil {
		log.Printf("job cache: marshal job list: %v", err)
		return
	}
	if err := c.rdb.Set(ctx, jobListKey, data, c.ttl).Err(); err != nil {
		log.Printf("job cache: set %s: %v", jobListKey, err)
	}
}

func (c *JobCache) GetJob(ctx context.Context, id string) (*model.Job, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, jobDetailPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("job cache: get %s: %v", jobDetailPrefix+id, err)
		}
		return nil, false
	}
	job := &model.Job{}
	if err := json.Unmarshal(data, job); err != nil {
		log.Printf("job cache: unmarshal job %s: %v", id, err)
		return nil, false
	}
	return job, true
}

func (c *JobCache) SetJob(ctx context.Context, job *model.Job) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(job)
	if err != nil {
		log.Printf("job cache: marshal job %s: %v", job.ID, err)
		return
	}
	if err := c.rdb.Set(ctx, jobDetailPrefix+job.ID, data, c.ttl).Err(); err != nil {
		log.Printf("job cache: set job %s: %v", job.ID, err)
	}
}

// Invalidate drops the listing key and the detail keys for the given jobs.
// Called after any job or application write.
func (c *JobCache) Invalidate(ctx context.Context, jobIDs ...string) {
	if c == nil || c.rdb == nil {
		return
	}
	keys := make([]string, 0, len(jobIDs)+1)
	keys = append(keys, jobListKey)
	for _, id := range jobIDs {
		keys = append(keys, jobDetailPrefix+id)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("job cache: invalidate: %v", err)
	}
}
