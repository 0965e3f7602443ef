// Package adapters provides the repository implementations for the
// tasks feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	profileentity "todo_backend/internal/feature/accounts/domain/entity"
	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/feature/tasks/usecase"
)

// taskGorm is the GORM implementation of the tasks feature's
// ProfileRepository and TaskRepository interfaces.
type taskGorm struct {
	db *gorm.DB
}

// Compile-time checks that taskGorm implements both repository interfaces.
var (
	_ usecase.ProfileRepository = (*taskGorm)(nil)
	_ usecase.TaskRepository    = (*taskGorm)(nil)
)

// NewTaskRepository creates a taskGorm on the given gorm.DB connection.
// Constructor for dependency injection.
func NewTaskRepository(db *gorm.DB) *taskGorm {
	return &taskGorm{db: db}
}

// FindByUsername retrieves the owning profile by exact username match,
// with its task collection preloaded.
// Returns usecase.ErrProfileNotFound when no such profile exists.
func (r *taskGorm) FindByUsername(ctx context.Context, username string) (*profileentity.Profile, error) {
	var p profileentity.Profile
	err := r.db.WithContext(ctx).Preload("Tasks").Where("username = ?", username).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create adds a task to the database.
func (r *taskGorm) Create(ctx context.Context, t *entity.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// FindByProfileAndID retrieves a task by id scoped to its owning profile,
// so a task can never be read through another profile's URL space.
// Returns usecase.ErrTaskNotFound when no such task exists.
func (r *taskGorm) FindByProfileAndID(ctx context.Context, profileID, taskID uint) (*entity.Task, error) {
	var t entity.Task
	err := r.db.WithContext(ctx).Where("profile_id = ? AND id = ?", profileID, taskID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Save persists changes to an existing task.
func (r *taskGorm) Save(ctx context.Context, t *entity.Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// Delete removes a task.
func (r *taskGorm) Delete(ctx context.Context, t *entity.Task) error {
	return r.db.WithContext(ctx).Delete(t).Error
}
