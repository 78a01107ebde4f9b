package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	middlewares "bughub/middleware"
	"bughub/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the session token validity window.
const TokenTTL = time.Hour

// AuthController handles registration, login, and user administration.
type AuthController struct {
	users     *mongo.Collection
	jwtSecret []byte
}

func NewAuthController(users *mongo.Collection, jwtSecret []byte) *AuthController {
	return &AuthController{users: users, jwtSecret: jwtSecret}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateToken issues an HS256 session token bound to the user.
func (a *AuthController) GenerateToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       user.ID.Hex(),
		"username": user.Username,
		"exp":      time.Now().Add(TokenTTL).Unix(),
	})
	return token.SignedString(a.jwtSecret)
}

// LookupUser resolves a token subject to the current user record with the
// password excluded. Used by the auth middleware.
func (a *AuthController) LookupUser(ctx context.Context, id string) (models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	err = a.users.FindOne(ctx, bson.M{"_id": objID}, opts).Decode(&user)
	return user, err
}

// Register creates a user account.
func (a *AuthController) Register(c *gin.Context) {
	type RegisterInput struct {
		Username string   `json:"username" binding:"required"`
		Password string   `json:"password" binding:"required"`
		Email    string   `json:"email" binding:"required,email"`
		Projects []string `json:"projects"`
		Project  string   `json:"project"`
	}

	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var existing models.User
	err := a.users.FindOne(ctx, bson.M{"username": input.Username}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username already exists"})
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Printf("Registration error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		log.Printf("Registration error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	user := models.User{
		Username:  input.Username,
		Password:  hashed,
		Email:     input.Email,
		Projects:  models.NormalizeProjects(input.Projects, input.Project),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := a.users.InsertOne(ctx, user); err != nil {
		log.Printf("Registration error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User registered successfully"})
}

// Login checks credentials and issues a session token. Unknown usernames
// and wrong passwords answer with the identical body.
func (a *AuthController) Login(c *gin.Context) {
	type LoginInput struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username and password required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := a.users.FindOne(ctx, bson.M{"username": input.Username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}
	if err != nil {
		log.Printf("Login error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	if !checkPasswordHash(input.Password, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := a.GenerateToken(user)
	if err != nil {
		log.Printf("Login error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// Verify echoes the user resolved by the auth middleware.
func (a *AuthController) Verify(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: No user found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "message": "Token is valid"})
}

// GetAllUsers lists every account, passwords excluded. Admin only.
func (a *AuthController) GetAllUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"password": 0})
	cursor, err := a.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Printf("Get users error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		log.Printf("Get users error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": users})
}

// hasProjectInput reports whether the update carries at least one concrete
// project value. All-blank input must not fall through to the wildcard
// default: that would silently widen the user's visibility.
func hasProjectInput(projects []string, project string) bool {
	for _, p := range projects {
		if strings.TrimSpace(p) != "" {
			return true
		}
	}
	return strings.TrimSpace(project) != ""
}

// UpdateUser replaces a user's project set. Admin only.
func (a *AuthController) UpdateUser(c *gin.Context) {
	type UpdateInput struct {
		Projects []string `json:"projects"`
		Project  string   `json:"project"`
	}

	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil || !hasProjectInput(input.Projects, input.Project) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Project or projects field is required"})
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"projects":  models.NormalizeProjects(input.Projects, input.Project),
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password": 0})

	var updated models.User
	err = a.users.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	if err != nil {
		log.Printf("Update user error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}
