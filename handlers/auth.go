package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"paper-trader/store"
)

type RegisterInput struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Confirmation string `json:"confirmation"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshInput struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if input.Username == "" || input.Password == "" || input.Confirmation == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, password and confirmation are required"})
		return
	}
	if input.Password != input.Confirmation {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passwords do not match"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	user, err := h.Store.CreateUser(c.Request.Context(), input.Username, string(hashedPassword), h.StartingCash)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"id":      user.ID,
		"cash":    user.Cash,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.Store.UserByUsername(c.Request.Context(), input.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	accessToken, err := h.signToken(user.ID, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}

	response := gin.H{"access_token": accessToken}

	// Refresh tokens live in Redis; skipped when Redis is not configured.
	if h.Rdb != nil {
		refreshToken, err := h.signToken(user.ID, 7*24*time.Hour)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating refresh token"})
			return
		}
		if err := h.Rdb.Set(c.Request.Context(), refreshToken, user.ID, 7*24*time.Hour).Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error storing refresh token"})
			return
		}
		response["refresh_token"] = refreshToken
	}

	c.JSON(http.StatusOK, response)
}

// Refresh exchanges a stored refresh token for a new access token.
func (h *Handler) Refresh(c *gin.Context) {
	if h.Rdb == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "refresh tokens not enabled"})
		return
	}

	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil || input.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
		return
	}

	id, err := h.Rdb.Get(c.Request.Context(), input.RefreshToken).Uint64()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	accessToken, err := h.signToken(uint(id), 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

// Logout invalidates the refresh token. The access token simply expires;
// the client discards it.
func (h *Handler) Logout(c *gin.Context) {
	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err == nil && input.RefreshToken != "" && h.Rdb != nil {
		h.Rdb.Del(c.Request.Context(), input.RefreshToken)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) signToken(id uint, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": id,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.JWTSecret))
}
