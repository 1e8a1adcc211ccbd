package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thierryazur06/site-api/pkg/auth"
)

// Every route under /api/admin must reject anonymous and forged callers.
func TestAdminRoutes_RequireToken(t *testing.T) {
	app := newTestApp(t)

	forger, err := auth.NewJWTService("not-the-secret", time.Hour)
	require.NoError(t, err)
	forged, err := forger.GenerateToken(1, "admin@example.com")
	require.NoError(t, err)

	var checked int
	for _, route := range app.router.Routes() {
		if !strings.HasPrefix(route.Path, "/api/admin") {
			continue
		}
		checked++
		path := strings.ReplaceAll(route.Path, ":id", "1")

		for name, header := range map[string]string{
			"no header":    "",
			"basic scheme": "Basic abc",
			"forged token": "Bearer " + forged,
		} {
			req := httptest.NewRequest(route.Method, path, strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			app.router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s (%s)", route.Method, route.Path, name)
		}
	}
	assert.Greater(t, checked, 20)
}

// Paths and methods with no route still answer 401 without a token, so the
// admin surface cannot be mapped anonymously.
func TestAdminPrefix_UnroutedRequireToken(t *testing.T) {
	app := newTestApp(t)

	unrouted := []struct{ method, path string }{
		{http.MethodGet, "/api/admin"},
		{http.MethodGet, "/api/admin/does-not-exist"},
		{http.MethodGet, "/api/admin/users/1"},
		{http.MethodGet, "/api/admin/cities"},
		{http.MethodDelete, "/api/admin/data/about"},
		{http.MethodPost, "/api/admin/devis/1"},
	}
	for _, tc := range unrouted {
		w := app.do(tc.method, tc.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}

	user := app.seedUser(t, "admin@example.com", "password123", false)
	token := app.tokenFor(t, user)
	w := app.do(http.MethodGet, "/api/admin/does-not-exist", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminPrefix_SiblingPathsUngated(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/api/administrator", "/api/adminx/me", "/api/data/admin"} {
		w := app.do(http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestPublicRoutes_NoTokenNeeded(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/api/data/about", "/api/data/metadata", "/api/data/about-values", "/api/data/cities", "/api/data/reviews"} {
		w := app.do(http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
