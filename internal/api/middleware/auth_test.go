package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/common/security"
	"jobboard/internal/platform/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	if config.AppConfig == nil {
		config.Load()
	}
	if security.TokenAuth == nil {
		security.InitJWT()
	}

	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(security.TokenAuth))
	r.Group(func(protected chi.Router) {
		protected.Use(Authenticator)
		protected.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
			userID, _ := GetUserIDFromContext(r.Context())
			role, _ := GetUserRoleFromContext(r.Context())
			common.RespondWithJSON(w, http.StatusOK, map[string]string{"id": userID, "role": role})
		})
	})
	return r
}

func TestAuthenticatorRejectsMissingToken(t *testing.T) {
	router := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestAuthenticatorRejectsGarbageToken(t *testing.T) {
	router := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticatorRejectsExpiredToken(t *testing.T) {
	router := setupRouter(t)

	_, token, err := security.TokenAuth.Encode(map[string]interface{}{
		"user_id": "user-42",
		"role":    "jobseeker",
		"exp":     time.Now().Add(-time.Minute).Unix(),
		"iat":     time.Now().Add(-time.Hour).Unix(),
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticatorResolvesActingIdentity(t *testing.T) {
	router := setupRouter(t)

	token, err := security.GenerateToken("user-42", "employer")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"user-42"`)
	assert.Contains(t, w.Body.String(), `"role":"employer"`)
}
