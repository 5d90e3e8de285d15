package model

import (
	"time"
)

const (
	RoleJobSeeker = "jobseeker"
	RoleEmployer  = "employer"
)

func ValidRole(role string) bool {
	return role == RoleJobSeeker || role == RoleEmployer
}

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	FullName       string    `json:"fullName"`
	Role           string    `json:"role"`
	Phone          *string   `json:"phone,omitempty"`
	Location       *string   `json:"location,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// Relations, populated for profile views. Empty arrays when none, never null.
	PostedJobs   []Job         `json:"postedJobs"`
	Applications []Application `json:"applications"`
}
