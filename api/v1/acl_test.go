package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookdenapp/bookden/api/auth"
)

func TestIsUnauthorizeAllowed(t *testing.T) {
	allowed := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/auth/register"},
		{http.MethodPost, "/api/v1/auth/login"},
		{http.MethodGet, "/api/v1/books/all"},
		{http.MethodGet, "/api/v1/books/1"},
		{http.MethodGet, "/api/v1/books/1/reviews"},
		{http.MethodGet, "/api/v1/genres"},
		{http.MethodGet, "/api/v1/tutorials"},
	}
	for _, tc := range allowed {
		r := httptest.NewRequest(tc.method, tc.path, nil)
		assert.True(t, isUnauthorizeAllowed(r), "%s %s should be public", tc.method, tc.path)
	}

	denied := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/books/add"},
		{http.MethodPost, "/api/v1/books/1/review"},
		{http.MethodGet, "/api/v1/books/personalized/1"},
		{http.MethodPost, "/api/v1/genres"},
		{http.MethodGet, "/api/v1/shelf/1"},
		{http.MethodGet, "/api/v1/admin/users"},
		{http.MethodPatch, "/api/v1/stats/update-goal"},
	}
	for _, tc := range denied {
		r := httptest.NewRequest(tc.method, tc.path, nil)
		assert.False(t, isUnauthorizeAllowed(r), "%s %s should require auth", tc.method, tc.path)
	}
}

func TestIsOnlyForAdminAllowedPath(t *testing.T) {
	adminOnly := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/admin/reviews/pending"},
		{http.MethodPatch, "/api/v1/admin/reviews/moderate"},
		{http.MethodPut, "/api/v1/admin/users/1/role"},
		{http.MethodPost, "/api/v1/books/add"},
		{http.MethodPut, "/api/v1/books/1"},
		{http.MethodDelete, "/api/v1/books/1"},
		{http.MethodPost, "/api/v1/genres"},
		{http.MethodDelete, "/api/v1/tutorials/1"},
	}
	for _, tc := range adminOnly {
		assert.True(t, isOnlyForAdminAllowedPath(tc.method, tc.path), "%s %s should be admin-only", tc.method, tc.path)
	}

	readerAllowed := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/books/1/review"},
		{http.MethodGet, "/api/v1/books/all"},
		{http.MethodPost, "/api/v1/shelf/1/2"},
		{http.MethodPost, "/api/v1/shelf/1/2/advance"},
		{http.MethodPatch, "/api/v1/stats/update-goal"},
	}
	for _, tc := range readerAllowed {
		assert.False(t, isOnlyForAdminAllowedPath(tc.method, tc.path), "%s %s should not be admin-only", tc.method, tc.path)
	}
}

func TestAuthenticateRoundTrip(t *testing.T) {
	secret := "test-secret"
	in := NewAuthInterceptor(nil, secret)

	token, err := auth.GenerateAccessToken("alice@example.com", 42, time.Now().Add(time.Hour), []byte(secret))
	require.NoError(t, err)

	userID, err := in.authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, int32(42), userID)

	// A token signed with another secret must not verify.
	forged, err := auth.GenerateAccessToken("alice@example.com", 42, time.Now().Add(time.Hour), []byte("other-secret"))
	require.NoError(t, err)
	_, err = in.authenticate(forged)
	require.Error(t, err)

	// Expired tokens are rejected.
	expired, err := auth.GenerateAccessToken("alice@example.com", 42, time.Now().Add(-time.Hour), []byte(secret))
	require.NoError(t, err)
	_, err = in.authenticate(expired)
	require.Error(t, err)
}
