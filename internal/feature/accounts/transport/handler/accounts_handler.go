// Package handler provides the HTTP handlers for the accounts feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/feature/accounts/domain/entity"
	"todo_backend/internal/feature/accounts/usecase"
	"todo_backend/internal/platform/authcookie"
)

// AccountsUsecase defines the account operations the handlers need.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type AccountsUsecase interface {
	// Register creates a new profile when the username is unused and the
	// two passwords match.
	Register(ctx context.Context, username, email, password, password2 string) error
	// Login verifies the password, rotates the auth token and returns the
	// profile.
	Login(ctx context.Context, username, password string) (*entity.Profile, error)
	// GetProfile retrieves a profile with its task list by username.
	GetProfile(ctx context.Context, username string) (*entity.Profile, error)
	// UpdateProfile applies the supplied fields to an existing profile.
	UpdateProfile(ctx context.Context, username string, upd usecase.ProfileUpdate) (*entity.Profile, error)
	// DeleteProfile removes a profile and all of its tasks.
	DeleteProfile(ctx context.Context, username string) error
}

// AccountsHandler handles the HTTP requests for registration, login,
// logout and profile management.
type AccountsHandler struct {
	uc      AccountsUsecase
	cookies *authcookie.Codec
}

// NewAccountsHandler creates a new AccountsHandler.
// Constructor for dependency injection.
func NewAccountsHandler(uc AccountsUsecase, cookies *authcookie.Codec) *AccountsHandler {
	return &AccountsHandler{uc: uc, cookies: cookies}
}

// Register handles POST /api/v1/accounts.
// Requires the username, email, password and password2 form fields.
// A missing field or an already-taken username falls through to an empty
// 200 body; a password mismatch yields 400.
func (h *AccountsHandler) Register(c *gin.Context) {
	username, okU := c.GetPostForm("username")
	email, okE := c.GetPostForm("email")
	password, okP := c.GetPostForm("password")
	password2, okP2 := c.GetPostForm("password2")
	if !okU || !okE || !okP || !okP2 {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	err := h.uc.Register(c.Request.Context(), username, email, password, password2)
	switch {
	case err == nil:
		slog.Info("profile created", "username", username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusCreated, gin.H{"msg": "Profile created"})
	case errors.Is(err, usecase.ErrUsernameTaken):
		c.JSON(http.StatusOK, gin.H{})
	case errors.Is(err, usecase.ErrPasswordMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords don't match"})
	default:
		slog.Error("registration failed", "error", err, "username", username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// GetProfile handles GET /api/v1/accounts/:username.
// Responds with the full serialized profile, task list included, and
// refreshes the auth cookie for the profile being read.
func (h *AccountsHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")
	profile, err := h.uc.GetProfile(c.Request.Context(), username)
	if errors.Is(err, usecase.ErrProfileNotFound) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this profile."})
		return
	}
	if err != nil {
		slog.Error("profile lookup failed", "error", err, "username", username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	h.cookies.SetCookie(c, profile.Username, profile.Token)
	c.JSON(http.StatusOK, profile.ToMap())
}

// UpdateProfile handles PUT /api/v1/accounts/:username.
// Only the fields present in the form are applied; the password changes
// only when both password fields are present, equal and non-empty.
func (h *AccountsHandler) UpdateProfile(c *gin.Context) {
	username := c.Param("username")

	var upd usecase.ProfileUpdate
	if v, ok := c.GetPostForm("username"); ok {
		upd.Username = &v
	}
	if v, ok := c.GetPostForm("password"); ok {
		upd.Password = &v
	}
	if v, ok := c.GetPostForm("password2"); ok {
		upd.Password2 = &v
	}
	if v, ok := c.GetPostForm("email"); ok {
		upd.Email = &v
	}

	profile, err := h.uc.UpdateProfile(c.Request.Context(), username, upd)
	if errors.Is(err, usecase.ErrProfileNotFound) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this profile."})
		return
	}
	if err != nil {
		slog.Error("profile update failed", "error", err, "username", username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	h.cookies.SetCookie(c, profile.Username, profile.Token)
	c.JSON(http.StatusAccepted, gin.H{
		"msg":      "Profile updated.",
		"profile":  profile.ToMap(),
		"username": profile.Username,
	})
}

// DeleteProfile handles DELETE /api/v1/accounts/:username.
// Deleting a profile cascades to its tasks. A missing profile is an
// unhandled failure here, surfaced as a generic 500.
func (h *AccountsHandler) DeleteProfile(c *gin.Context) {
	username := c.Param("username")
	if err := h.uc.DeleteProfile(c.Request.Context(), username); err != nil {
		slog.Error("profile delete failed", "error", err, "username", username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	slog.Info("profile deleted", "username", username)
	c.JSON(http.StatusNoContent, gin.H{})
}

// Login handles POST /api/v1/accounts/login.
// On success the rotated token is set in the signed auth cookie.
func (h *AccountsHandler) Login(c *gin.Context) {
	username, okU := c.GetPostForm("username")
	password, okP := c.GetPostForm("password")
	if !okU || !okP {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Some fields are missing"})
		return
	}

	profile, err := h.uc.Login(c.Request.Context(), username, password)
	if errors.Is(err, usecase.ErrInvalidCredentials) {
		slog.Warn("login failed", "username", username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect username/password combination."})
		return
	}
	if err != nil {
		slog.Error("login failed", "error", err, "username", username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	slog.Info("login successful", "username", username, "remote_addr", c.ClientIP())
	h.cookies.SetCookie(c, profile.Username, profile.Token)
	c.JSON(http.StatusOK, gin.H{"msg": "Authenticated"})
}

// Logout handles GET /api/v1/accounts/logout.
// No server-side invalidation happens; the stored token stays valid.
func (h *AccountsHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "Logged out."})
}
