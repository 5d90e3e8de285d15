package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"bad request", ErrBadRequest, http.StatusBadRequest},
		{"validation", ErrValidation, http.StatusBadRequest},
		{"conflict", ErrConflict, http.StatusConflict},
		{"internal", ErrInternalServer, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped forbidden", fmt.Errorf("you can only update your own job postings: %w", ErrForbidden), http.StatusForbidden},
		{"deeply wrapped conflict", fmt.Errorf("failed to create application: %w",
			fmt.Errorf("you have already applied to this job: %w", ErrConflict)), http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatusFromError(tc.err))
		})
	}
}

func TestHTTPStatusFromPgUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_job_applicant"}
	wrapped := fmt.Errorf("pgApplicationRepository.Create: %w", pgErr)
	assert.Equal(t, http.StatusConflict, HTTPStatusFromError(wrapped))

	other := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromError(other))
}
