// Package adapters provides the repository implementations for the
// accounts feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"todo_backend/internal/feature/accounts/domain/entity"
	"todo_backend/internal/feature/accounts/usecase"
)

// profileGorm is the GORM implementation of the ProfileRepository interface.
type profileGorm struct {
	db *gorm.DB
}

// Compile-time check that profileGorm implements ProfileRepository.
var _ usecase.ProfileRepository = (*profileGorm)(nil)

// NewProfileRepository creates a profileGorm on the given gorm.DB
// connection. Constructor for dependency injection.
func NewProfileRepository(db *gorm.DB) *profileGorm {
	return &profileGorm{db: db}
}

// Create adds a profile to the database.
// If the username is already taken, it returns usecase.ErrUsernameTaken.
// Relies on the connection being opened with TranslateError enabled.
func (r *profileGorm) Create(ctx context.Context, p *entity.Profile) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrUsernameTaken
		}
		return err
	}
	return nil
}

// FindByUsername retrieves a profile by exact username match, with its
// full task collection preloaded so serialization never lazy-loads.
// Returns usecase.ErrProfileNotFound when no such profile exists.
func (r *profileGorm) FindByUsername(ctx context.Context, username string) (*entity.Profile, error) {
	var p entity.Profile
	err := r.db.WithContext(ctx).Preload("Tasks").Where("username = ?", username).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Save persists changes to an existing profile.
func (r *profileGorm) Save(ctx context.Context, p *entity.Profile) error {
	return r.db.WithContext(ctx).Omit("Tasks").Save(p).Error
}

// Delete removes a profile. The OnDelete:CASCADE constraint removes its
// tasks with it, so no task is ever orphaned.
func (r *profileGorm) Delete(ctx context.Context, p *entity.Profile) error {
	return r.db.WithContext(ctx).Delete(p).Error
}
