package middlewares

import (
	"context"
	"net/http"
	"strings"

	"bughub/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// UserKey is the gin context key the authenticated user is stored under.
const UserKey = "user"

// UserLookup resolves a user id from a verified token to the current user
// record, password excluded.
type UserLookup func(ctx context.Context, id string) (models.User, error)

// Authenticate verifies the Authorization bearer token and loads the
// current user into the context. Fails closed with 401 on any decode
// error, expiry, or unknown user.
func Authenticate(secret []byte, lookup UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: No token provided"})
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: Invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: Invalid token"})
			c.Abort()
			return
		}
		id, _ := claims["id"].(string)
		if id == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: Invalid token"})
			c.Abort()
			return
		}

		user, err := lookup(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: User not found"})
			c.Abort()
			return
		}
		user.Password = ""

		c.Set(UserKey, user)
		c.Next()
	}
}

// AdminOnly requires the authenticated user to be the admin account.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: No user found"})
			c.Abort()
			return
		}
		if !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Forbidden: Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// APIKeyAuth authenticates the report-submission widget. The widget sends
// "Authorization: ApiKey <key>" rather than a user token.
func APIKeyAuth(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "ApiKey ") {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Missing or invalid Authorization header"})
			c.Abort()
			return
		}
		if strings.TrimPrefix(header, "ApiKey ") != key {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Invalid API key"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by Authenticate.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
