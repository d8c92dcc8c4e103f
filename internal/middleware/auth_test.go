package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/backend/internal/types"
)

type staticValidator struct {
	claims *types.TokenClaims
}

func (v *staticValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if token == "good" && v.claims != nil {
		return v.claims, nil
	}
	return nil, errors.New("invalid token")
}

func authTestRouter(validator TokenValidator, optional bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := AuthMiddleware(validator)
	if optional {
		mw = OptionalAuthMiddleware(validator)
	}
	r.GET("/probe", mw, func(c *gin.Context) {
		if user := CurrentUser(c); user != nil {
			c.JSON(http.StatusOK, gin.H{"user": user.String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": nil})
	})
	return r
}

func probe(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	r := authTestRouter(&staticValidator{claims: &types.TokenClaims{UserID: userID}}, false)

	w := probe(r, "Bearer good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())

	assert.Equal(t, http.StatusUnauthorized, probe(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, probe(r, "Bearer bad").Code)
	assert.Equal(t, http.StatusUnauthorized, probe(r, "Basic good").Code)
	assert.Equal(t, http.StatusUnauthorized, probe(r, "good").Code)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	r := authTestRouter(&staticValidator{claims: &types.TokenClaims{UserID: userID}}, true)

	w := probe(r, "Bearer good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())

	// Anonymous and malformed requests pass through without an identity.
	for _, header := range []string{"", "Bearer bad", "junk"} {
		w := probe(r, header)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), userID.String())
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Nothing listens on this port; the limiter must let traffic through.
	unreachable := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	limiter := NewRateLimiter(unreachable, RateLimitConfig{
		Window:    time.Minute,
		Limit:     10,
		KeyPrefix: "test",
	})

	r := gin.New()
	r.GET("/probe", func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Next()
	}, limiter.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := probe(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}

func TestRateLimiterRequiresIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), RateLimitConfig{
		Window: time.Minute, Limit: 10, KeyPrefix: "test",
	})

	r := gin.New()
	r.GET("/probe", limiter.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	assert.Equal(t, http.StatusUnauthorized, probe(r, "").Code)
}
