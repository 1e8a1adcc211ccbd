package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thierryazur06/site-api/internal/service"
)

func TestLoginFlow_EndToEnd(t *testing.T) {
	app := newTestApp(t)
	user := app.seedUser(t, "admin@example.com", "password123", false)

	w := app.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com", "password": "password123"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(user.ID), parseJSONResponse(t, w)["userId"])

	sent := app.outbox.last(t, "admin@example.com")
	assert.Equal(t, service.SubjectLoginCode, sent.Subject)
	code := app.outbox.lastCode(t, "admin@example.com")

	w = app.do(http.MethodPost, "/api/auth/verify", map[string]interface{}{"userId": user.ID, "code": "000000"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_code", parseJSONResponse(t, w)["error_type"])

	w = app.do(http.MethodPost, "/api/auth/verify", map[string]interface{}{"userId": user.ID, "code": code}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := parseJSONResponse(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	sessionUser := body["user"].(map[string]interface{})
	assert.Equal(t, "admin@example.com", sessionUser["email"])
	assert.Equal(t, false, sessionUser["mustChangePassword"])

	// The same code cannot be replayed.
	w = app.do(http.MethodPost, "/api/auth/verify", map[string]interface{}{"userId": user.ID, "code": code}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(http.MethodGet, "/api/admin/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	me := parseJSONResponse(t, w)
	assert.Equal(t, "Thierry", me["firstName"])
	assert.Equal(t, "admin@example.com", me["email"])
	assert.NotContains(t, me, "password")
}

func TestLogin_InvalidCredentialsLookAlike(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "admin@example.com", "password123", false)

	wrongPassword := app.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com", "password": "nope"}, "")
	unknownEmail := app.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "ghost@example.com", "password": "password123"}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestAuthEndpoints_Validation(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		path string
		body interface{}
	}{
		{"login missing password", "/api/auth/login", map[string]string{"email": "a@example.com"}},
		{"login empty body", "/api/auth/login", nil},
		{"verify missing code", "/api/auth/verify", map[string]interface{}{"userId": 1}},
		{"verify missing user", "/api/auth/verify", map[string]interface{}{"code": "123456"}},
		{"reset request missing email", "/api/auth/request-reset-password", map[string]string{}},
		{"reset missing code", "/api/auth/reset-password", map[string]interface{}{"userId": 1, "newPassword": "long-enough"}},
		{"reset short password", "/api/auth/reset-password", map[string]interface{}{"userId": 1, "code": "123456", "newPassword": "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(http.MethodPost, tt.path, tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "validation_error", parseJSONResponse(t, w)["error_type"])
		})
	}
}

func TestPasswordReset_EndToEnd(t *testing.T) {
	app := newTestApp(t)
	user := app.seedUser(t, "admin@example.com", "password123", true)

	w := app.do(http.MethodPost, "/api/auth/request-reset-password", map[string]string{"email": "ghost@example.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, parseJSONResponse(t, w), "userId")

	w = app.do(http.MethodPost, "/api/auth/request-reset-password", map[string]string{"email": "admin@example.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(user.ID), parseJSONResponse(t, w)["userId"])
	assert.Equal(t, service.SubjectPasswordReset, app.outbox.last(t, "admin@example.com").Subject)
	code := app.outbox.lastCode(t, "admin@example.com")

	w = app.do(http.MethodPost, "/api/auth/reset-password", map[string]interface{}{"userId": user.ID, "code": code, "newPassword": "brand-new-pass"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(http.MethodPost, "/api/auth/reset-password", map[string]interface{}{"userId": user.ID, "code": code, "newPassword": "brand-new-pass"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Old password is gone, the new one works and the forced change flag is cleared.
	w = app.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com", "password": "password123"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = app.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com", "password": "brand-new-pass"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	loginCode := app.outbox.lastCode(t, "admin@example.com")
	w = app.do(http.MethodPost, "/api/auth/verify", map[string]interface{}{"userId": user.ID, "code": loginCode}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, parseJSONResponse(t, w)["user"].(map[string]interface{})["mustChangePassword"])
}

func TestLogin_NewCodeInvalidatesPrevious(t *testing.T) {
	app := newTestApp(t)
	user := app.seedUser(t, "admin@example.com", "password123", false)
	creds := map[string]string{"email": "admin@example.com", "password": "password123"}

	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/auth/login", creds, "").Code)
	first := app.outbox.lastCode(t, "admin@example.com")
	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/auth/login", creds, "").Code)
	second := app.outbox.lastCode(t, "admin@example.com")

	if first != second {
		w := app.do(http.MethodPost, "/api/auth/verify", map[string]interface{}{"userId": user.ID, "code": first}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
	w := app.do(http.MethodPost, "/api/auth/verify", map[string]interface{}{"userId": user.ID, "code": second}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
