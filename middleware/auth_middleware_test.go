package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bughub/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

func authTestRouter(lookup UserLookup) (*gin.Engine, *models.User) {
	gin.SetMode(gin.TestMode)
	seen := &models.User{}
	r := gin.New()
	r.GET("/protected", Authenticate(testSecret, lookup), func(c *gin.Context) {
		if user, ok := CurrentUser(c); ok {
			*seen = user
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r, seen
}

func TestAuthenticateNoHeader(t *testing.T) {
	r, _ := authTestRouter(nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMalformedToken(t *testing.T) {
	r, _ := authTestRouter(nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"id":  primitive.NewObjectID().Hex(),
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	r, _ := authTestRouter(nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  primitive.NewObjectID().Hex(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	r, _ := authTestRouter(nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMissingIDClaim(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

	r, _ := authTestRouter(nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"id":  primitive.NewObjectID().Hex(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	lookup := func(ctx context.Context, id string) (models.User, error) {
		return models.User{}, errors.New("not found")
	}
	r, _ := authTestRouter(lookup)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateValidToken(t *testing.T) {
	userID := primitive.NewObjectID()
	token := signToken(t, jwt.MapClaims{
		"id":       userID.Hex(),
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	lookup := func(ctx context.Context, id string) (models.User, error) {
		assert.Equal(t, userID.Hex(), id)
		return models.User{ID: userID, Username: "alice", Password: "hash", Projects: []string{"alpha"}}, nil
	}
	r, seen := authTestRouter(lookup)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", seen.Username)
	assert.Equal(t, []string{"alpha"}, seen.Projects)
	assert.Empty(t, seen.Password)
}

func adminTestRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		if user != nil {
			c.Set(UserKey, *user)
		}
	}, AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		want int
	}{
		{"no user", nil, http.StatusUnauthorized},
		{"non-admin", &models.User{Username: "alice"}, http.StatusForbidden},
		{"admin", &models.User{Username: "admin"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := adminTestRouter(tt.user)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAPIKeyAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/submit", APIKeyAuth("server-key"), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Bearer server-key", http.StatusUnauthorized},
		{"wrong key", "ApiKey other-key", http.StatusForbidden},
		{"valid key", "ApiKey server-key", http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/submit", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
