package usecase

import (
	"context"
	"errors"
	"time"

	profileentity "todo_backend/internal/feature/accounts/domain/entity"
	"todo_backend/internal/feature/tasks/domain/entity"
)

// ProfileRepository abstracts the lookup of a task's owning profile.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type ProfileRepository interface {
	// FindByUsername retrieves a profile, with its full task list loaded,
	// by exact username match. Returns ErrProfileNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*profileentity.Profile, error)
}

// TaskRepository abstracts the persistence layer for task entities.
type TaskRepository interface {
	// Create persists a new task to the storage.
	Create(ctx context.Context, t *entity.Task) error

	// FindByProfileAndID retrieves a task by id scoped to the owning
	// profile. Returns ErrTaskNotFound when absent.
	FindByProfileAndID(ctx context.Context, profileID, taskID uint) (*entity.Task, error)

	// Save persists changes to an existing task.
	Save(ctx context.Context, t *entity.Task) error

	// Delete removes a task.
	Delete(ctx context.Context, t *entity.Task) error
}

// NewTask carries the fields of a task creation request.
type NewTask struct {
	Name      string
	Note      string
	DueDate   *time.Time
	Completed bool
}

// TaskUpdate carries the optional fields of a task edit. A nil field was
// absent from the request and is left untouched; SetDueDate reports
// whether DueDate was supplied at all, so a supplied empty value can
// clear an existing due date.
type TaskUpdate struct {
	Name       *string
	Note       *string
	SetDueDate bool
	DueDate    *time.Time
	Completed  *bool
}

// TasksUsecase provides the task management logic under an owning profile.
type TasksUsecase struct {
	profiles ProfileRepository
	tasks    TaskRepository
}

// NewTasksUsecase creates a new TasksUsecase with the given repositories.
func NewTasksUsecase(profiles ProfileRepository, tasks TaskRepository) *TasksUsecase {
	return &TasksUsecase{profiles: profiles, tasks: tasks}
}

// FindProfile retrieves the owning profile, with its full task list, for
// the handlers to authorize and serialize against.
func (u *TasksUsecase) FindProfile(ctx context.Context, username string) (*profileentity.Profile, error) {
	return u.profiles.FindByUsername(ctx, username)
}

// Create stores a new task under the given profile, stamping its
// creation date.
func (u *TasksUsecase) Create(ctx context.Context, profile *profileentity.Profile, in NewTask) (*entity.Task, error) {
	task := &entity.Task{
		Name:         in.Name,
		Note:         in.Note,
		CreationDate: time.Now(),
		DueDate:      in.DueDate,
		Completed:    in.Completed,
		ProfileID:    profile.ID,
	}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get retrieves a single task owned by the given profile.
func (u *TasksUsecase) Get(ctx context.Context, profile *profileentity.Profile, taskID uint) (*entity.Task, error) {
	return u.tasks.FindByProfileAndID(ctx, profile.ID, taskID)
}

// Update applies the supplied fields to a task owned by the given profile
// and returns it.
func (u *TasksUsecase) Update(ctx context.Context, profile *profileentity.Profile, taskID uint, upd TaskUpdate) (*entity.Task, error) {
	task, err := u.tasks.FindByProfileAndID(ctx, profile.ID, taskID)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		task.Name = *upd.Name
	}
	if upd.Note != nil {
		task.Note = *upd.Note
	}
	if upd.SetDueDate {
		task.DueDate = upd.DueDate
	}
	if upd.Completed != nil {
		task.Completed = *upd.Completed
	}
	if err := u.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task owned by the given profile. A missing task is
// not an error; the delete is simply a no-op then.
func (u *TasksUsecase) Delete(ctx context.Context, profile *profileentity.Profile, taskID uint) error {
	task, err := u.tasks.FindByProfileAndID(ctx, profile.ID, taskID)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil
		}
		return err
	}
	return u.tasks.Delete(ctx, task)
}
