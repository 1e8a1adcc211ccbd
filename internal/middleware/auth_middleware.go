package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thierryazur06/site-api/pkg/auth"
)

// Context keys written by RequireAuth.
const (
	ContextUserIDKey = "user_id"
	ContextEmailKey  = "email"
	ContextClaimsKey = "auth"
)

// TokenParser verifies a bearer token. *auth.JWTService implements it.
type TokenParser interface {
	ParseToken(tokenString string) (*auth.JWTCustomClaims, error)
}

// AuthMiddleware gates the admin API.
type AuthMiddleware struct {
	tokens TokenParser
}

// NewAuthMiddleware creates the gate over a token parser.
func NewAuthMiddleware(tokens TokenParser) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth rejects the request with 401 unless it carries a valid
// "Authorization: Bearer <token>" header. On success the claims are
// stored in the context before the handler runs.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
			return
		}

		claims, err := m.tokens.ParseToken(strings.TrimSpace(token))
		if err != nil {
			zap.L().Debug("rejected bearer token",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString(RequestIDKey)))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "error_type": "token_invalid"})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// RequireAuthUnder runs RequireAuth for every request at or below prefix,
// matched or not, so unknown paths and methods answer 401 before 404.
// Mount it with router.Use ahead of the routes it covers.
func (m *AuthMiddleware) RequireAuthUnder(prefix string) gin.HandlerFunc {
	prefix = strings.TrimSuffix(prefix, "/")
	gate := m.RequireAuth()
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if p != prefix && !strings.HasPrefix(p, prefix+"/") {
			c.Next()
			return
		}
		gate(c)
	}
}

// ClaimsFromContext returns the claims stored by RequireAuth.
func ClaimsFromContext(c *gin.Context) (*auth.JWTCustomClaims, bool) {
	v, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.JWTCustomClaims)
	return claims, ok && claims != nil
}
