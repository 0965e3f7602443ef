// Package handler provides the HTTP handlers for the tasks feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	profileentity "todo_backend/internal/feature/accounts/domain/entity"
	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/feature/tasks/usecase"
	"todo_backend/internal/platform/authcookie"
)

// TasksUsecase defines the task operations the handlers need.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type TasksUsecase interface {
	// FindProfile retrieves the owning profile with its full task list.
	FindProfile(ctx context.Context, username string) (*profileentity.Profile, error)
	// Create stores a new task under the given profile.
	Create(ctx context.Context, profile *profileentity.Profile, in usecase.NewTask) (*entity.Task, error)
	// Get retrieves a single task owned by the given profile.
	Get(ctx context.Context, profile *profileentity.Profile, taskID uint) (*entity.Task, error)
	// Update applies the supplied fields to a task and returns it.
	Update(ctx context.Context, profile *profileentity.Profile, taskID uint, upd usecase.TaskUpdate) (*entity.Task, error)
	// Delete removes a task; a missing task is a no-op.
	Delete(ctx context.Context, profile *profileentity.Profile, taskID uint) error
}

// TasksHandler handles the HTTP requests for per-profile task CRUD.
type TasksHandler struct {
	uc      TasksUsecase
	cookies *authcookie.Codec
}

// NewTasksHandler creates a new TasksHandler.
// Constructor for dependency injection.
func NewTasksHandler(uc TasksUsecase, cookies *authcookie.Codec) *TasksHandler {
	return &TasksHandler{uc: uc, cookies: cookies}
}

// findProfile resolves the :username path parameter to its profile or
// writes the endpoint's profile-missing response and returns nil.
func (h *TasksHandler) findProfile(c *gin.Context, missingStatus int, missingBody gin.H) *profileentity.Profile {
	username := c.Param("username")
	profile, err := h.uc.FindProfile(c.Request.Context(), username)
	if errors.Is(err, usecase.ErrProfileNotFound) {
		c.JSON(missingStatus, missingBody)
		return nil
	}
	if err != nil {
		slog.Error("profile lookup failed", "error", err, "username", username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil
	}
	return profile
}

// List handles GET /api/v1/accounts/:username/tasks.
func (h *TasksHandler) List(c *gin.Context) {
	profile := h.findProfile(c, http.StatusNotFound, gin.H{"error": "The profile does not exist"})
	if profile == nil {
		return
	}
	tasks := make([]map[string]any, 0, len(profile.Tasks))
	for i := range profile.Tasks {
		tasks = append(tasks, profile.Tasks[i].ToMap())
	}
	h.cookies.SetCookie(c, profile.Username, profile.Token)
	c.JSON(http.StatusOK, gin.H{"username": profile.Username, "tasks": tasks})
}

// Create handles POST /api/v1/accounts/:username/tasks.
// The name, note, due_date and completed form fields are all required;
// an empty due_date value means the task has no due date.
func (h *TasksHandler) Create(c *gin.Context) {
	profile := h.findProfile(c, http.StatusNotFound, gin.H{"error": "You do not have permission to access this profile."})
	if profile == nil {
		return
	}

	name, okName := c.GetPostForm("name")
	note, okNote := c.GetPostForm("note")
	dueRaw, okDue := c.GetPostForm("due_date")
	completedRaw, okCompleted := c.GetPostForm("completed")
	if !okName || !okNote || !okDue || !okCompleted {
		h.cookies.SetCookie(c, profile.Username, profile.Token)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Some fields are missing"})
		return
	}
	due, err := entity.ParseDueDate(dueRaw)
	if err != nil {
		h.cookies.SetCookie(c, profile.Username, profile.Token)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Some fields are missing"})
		return
	}
	completed := false
	if completedRaw != "" {
		completed, err = strconv.ParseBool(completedRaw)
		if err != nil {
			h.cookies.SetCookie(c, profile.Username, profile.Token)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Some fields are missing"})
			return
		}
	}

	in := usecase.NewTask{Name: name, Note: note, DueDate: due, Completed: completed}
	if _, err := h.uc.Create(c.Request.Context(), profile, in); err != nil {
		slog.Error("task create failed", "error", err, "username", profile.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	h.cookies.SetCookie(c, profile.Username, profile.Token)
	c.JSON(http.StatusCreated, gin.H{"msg": "posted"})
}

// Get handles GET /api/v1/accounts/:username/tasks/:id.
// A missing task still confirms the session: the cookie is refreshed and
// the body carries a null task.
func (h *TasksHandler) Get(c *gin.Context) {
	profile := h.findProfile(c, http.StatusForbidden, gin.H{"error": "You do not have permission to access this data."})
	if profile == nil {
		return
	}

	taskID, idErr := parseTaskID(c.Param("id"))
	var (
		task *entity.Task
		err  error
	)
	if idErr == nil {
		task, err = h.uc.Get(c.Request.Context(), profile, taskID)
	} else {
		err = usecase.ErrTaskNotFound
	}
	switch {
	case err == nil:
		h.cookies.SetCookie(c, profile.Username, profile.Token)
		c.JSON(http.StatusOK, gin.H{"username": profile.Username, "task": task.ToMap()})
	case errors.Is(err, usecase.ErrTaskNotFound):
		h.cookies.SetCookie(c, profile.Username, profile.Token)
		c.JSON(http.StatusNotFound, gin.H{"username": profile.Username, "task": nil})
	default:
		slog.Error("task lookup failed", "error", err, "username", profile.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Update handles PUT /api/v1/accounts/:username/tasks/:id.
// Only the fields present in the form are applied; a present but empty
// due_date clears the task's due date.
func (h *TasksHandler) Update(c *gin.Context) {
	profile := h.findProfile(c, http.StatusForbidden, gin.H{"error": "You do not have permission to access this data."})
	if profile == nil {
		return
	}

	var upd usecase.TaskUpdate
	if v, ok := c.GetPostForm("name"); ok {
		upd.Name = &v
	}
	if v, ok := c.GetPostForm("note"); ok {
		upd.Note = &v
	}
	if v, ok := c.GetPostForm("due_date"); ok {
		due, err := entity.ParseDueDate(v)
		if err != nil {
			h.cookies.SetCookie(c, profile.Username, profile.Token)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Some fields are missing"})
			return
		}
		upd.SetDueDate = true
		upd.DueDate = due
	}
	if v, ok := c.GetPostForm("completed"); ok {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			h.cookies.SetCookie(c, profile.Username, profile.Token)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Some fields are missing"})
			return
		}
		upd.Completed = &completed
	}

	taskID, idErr := parseTaskID(c.Param("id"))
	var (
		task *entity.Task
		err  error
	)
	if idErr == nil {
		task, err = h.uc.Update(c.Request.Context(), profile, taskID, upd)
	} else {
		err = usecase.ErrTaskNotFound
	}
	switch {
	case err == nil:
		h.cookies.SetCookie(c, profile.Username, profile.Token)
		c.JSON(http.StatusOK, gin.H{"username": profile.Username, "task": task.ToMap()})
	case errors.Is(err, usecase.ErrTaskNotFound):
		h.cookies.SetCookie(c, profile.Username, profile.Token)
		c.JSON(http.StatusNotFound, gin.H{"username": profile.Username, "task": nil})
	default:
		slog.Error("task update failed", "error", err, "username", profile.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Delete handles DELETE /api/v1/accounts/:username/tasks/:id.
// Deleting a task that does not exist still responds with success.
func (h *TasksHandler) Delete(c *gin.Context) {
	profile := h.findProfile(c, http.StatusForbidden, gin.H{"error": "You do not have permission to access this data."})
	if profile == nil {
		return
	}

	if taskID, err := parseTaskID(c.Param("id")); err == nil {
		if err := h.uc.Delete(c.Request.Context(), profile, taskID); err != nil {
			slog.Error("task delete failed", "error", err, "username", profile.Username)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
	}
	h.cookies.SetCookie(c, profile.Username, profile.Token)
	c.JSON(http.StatusOK, gin.H{"username": profile.Username, "msg": "Deleted."})
}

// parseTaskID parses the :id path parameter.
func parseTaskID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	return uint(id), err
}
