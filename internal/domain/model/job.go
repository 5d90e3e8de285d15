package model

import (
	"time"
)

type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusActive, JobStatusClosed, JobStatusDraft:
		return true
	}
	return false
}

type Job struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Company          string     `json:"company"`
	Location         string     `json:"location"`
	Description      string     `json:"description"`
	JobType          *string    `json:"jobType,omitempty"`
	Salary           *string    `json:"salary,omitempty"`
	Requirements     *string    `json:"requirements,omitempty"`
	Responsibilities *string    `json:"responsibilities,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Status           JobStatus  `json:"status"`
	PostedByID       string     `json:"postedById"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`

	PostedBy     *User         `json:"postedBy,omitempty"` // Owner summary, for display
	Applications []Application `json:"applications"`       // Empty array when none, never null
}
