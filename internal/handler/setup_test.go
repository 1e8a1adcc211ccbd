package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thierryazur06/site-api/internal/domain/entity"
	"github.com/thierryazur06/site-api/internal/mail"
	"github.com/thierryazur06/site-api/internal/middleware"
	"github.com/thierryazur06/site-api/internal/repository/postgres"
	"github.com/thierryazur06/site-api/internal/service"
	"github.com/thierryazur06/site-api/internal/verification"
	"github.com/thierryazur06/site-api/pkg/auth"
)

const ownerEmail = "owner@example.com"

func init() {
	gin.SetMode(gin.TestMode)
}

// outbox records every message the API sends.
type outbox struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (o *outbox) Send(_ context.Context, msg mail.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, msg)
	return nil
}

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

// lastCode returns the code in the latest message sent to "to".
func (o *outbox) lastCode(t *testing.T, to string) string {
	t.Helper()
	msg := o.last(t, to)
	code := codePattern.FindString(msg.Text)
	require.NotEmpty(t, code, "no code in %q", msg.Text)
	return code
}

func (o *outbox) last(t *testing.T, to string) mail.Message {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.sent) - 1; i >= 0; i-- {
		if o.sent[i].To == to {
			return o.sent[i]
		}
	}
	t.Fatalf("no message sent to %s", to)
	return mail.Message{}
}

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
	outbox *outbox
	jwt    *auth.JWTService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(entity.Models()...))

	userRepo := postgres.NewUserRepo(db)

	durable, err := verification.NewService[uint](postgres.NewVerificationCodeRepo(db))
	require.NoError(t, err)
	volatile, err := verification.NewService[string](verification.NewMemoryStore[string]())
	require.NoError(t, err)

	box := &outbox{}
	renderer, err := mail.NewRenderer()
	require.NoError(t, err)
	emails, err := service.NewMailEmailService(box, renderer, service.EmailConfig{AppName: "Thierry Azur 06", ContactEmail: ownerEmail})
	require.NoError(t, err)

	jwtSvc, err := auth.NewJWTService("test-secret", time.Hour)
	require.NoError(t, err)

	authSvc, err := service.NewAuthService(userRepo, durable, jwtSvc, emails)
	require.NoError(t, err)
	accountSvc, err := service.NewAccountService(userRepo, durable, emails)
	require.NoError(t, err)
	inquirySvc, err := service.NewInquiryService(postgres.NewInquiryRepo(db), volatile, emails)
	require.NoError(t, err)
	reviewSvc, err := service.NewReviewService(postgres.NewReviewRepo(db), volatile)
	require.NoError(t, err)
	citySvc, err := service.NewCityService(postgres.NewCityRepo(db))
	require.NoError(t, err)
	contentSvc, err := service.NewContentService(postgres.NewSiteContentRepo(db))
	require.NoError(t, err)

	router := gin.New()
	routes := &Routes{
		Auth:      NewAuthHandler(authSvc),
		Public:    NewPublicHandler(contentSvc, citySvc, reviewSvc),
		Forms:     NewFormHandler(inquirySvc, reviewSvc),
		Accounts:  NewAccountHandler(accountSvc),
		Inquiries: NewInquiryHandler(inquirySvc),
		Admin:     NewAdminContentHandler(contentSvc, citySvc, reviewSvc),
		Gate:      middleware.NewAuthMiddleware(jwtSvc),
	}
	routes.Register(router)

	return &testApp{router: router, db: db, outbox: box, jwt: jwtSvc}
}

func (a *testApp) seedUser(t *testing.T, email, password string, mustChange bool) *entity.User {
	t.Helper()
	user := &entity.User{Email: email, FirstName: "Thierry", LastName: "Azur", Password: password, MustChangePassword: mustChange}
	require.NoError(t, postgres.NewUserRepo(a.db).Create(user))
	return user
}

func (a *testApp) tokenFor(t *testing.T, user *entity.User) string {
	t.Helper()
	token, err := a.jwt.GenerateToken(user.ID, user.Email)
	require.NoError(t, err)
	return token
}

func (a *testApp) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		raw, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

func parseJSONList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Response body should be a JSON list: %s", w.Body.String())
	return resp
}
