package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/store_api/internal/utils"
)

const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
)

// JWTMiddleware authenticates bearer tokens signed with the shared secret.
type JWTMiddleware struct {
	secret  string
	limiter *InvalidAuthRateLimiter
}

// NewJWTMiddleware creates the middleware. limiter may be nil.
func NewJWTMiddleware(secret string, limiter *InvalidAuthRateLimiter) *JWTMiddleware {
	return &JWTMiddleware{secret: secret, limiter: limiter}
}

// Handle requires a valid bearer token.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication credentials were not provided")
			c.Abort()
			return
		}
		m.authenticate(c, authHeader)
	}
}

// Optional authenticates the caller when a token is present and lets
// anonymous requests through. A present but invalid token is still rejected.
func (m *JWTMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		m.authenticate(c, authHeader)
	}
}

func (m *JWTMiddleware) authenticate(c *gin.Context, authHeader string) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		m.reject(c, "UNAUTHORIZED", "Invalid authorization header")
		return
	}

	claims, err := utils.ValidateJWT(strings.TrimSpace(parts[1]), m.secret)
	if err != nil {
		m.reject(c, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxEmail, claims.Email)
	c.Next()
}

func (m *JWTMiddleware) reject(c *gin.Context, code, message string) {
	if m.limiter != nil && !m.limiter.Allow(c.ClientIP()) {
		utils.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many invalid authentication attempts")
		c.Abort()
		return
	}
	utils.Error(c, http.StatusUnauthorized, code, message)
	c.Abort()
}

// UserID returns the authenticated caller's id.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// CallerID returns the authenticated caller's id, or nil for anonymous requests.
func CallerID(c *gin.Context) *int64 {
	if id, ok := UserID(c); ok {
		return &id
	}
	return nil
}
