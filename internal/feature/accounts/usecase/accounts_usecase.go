package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"todo_backend/internal/feature/accounts/domain/entity"
)

// ProfileRepository abstracts the persistence layer for profile entities.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type ProfileRepository interface {
	// Create persists a new profile to the storage.
	Create(ctx context.Context, p *entity.Profile) error

	// FindByUsername retrieves a profile, with its full task list loaded,
	// by exact username match.
	FindByUsername(ctx context.Context, username string) (*entity.Profile, error)

	// Save persists changes to an existing profile.
	Save(ctx context.Context, p *entity.Profile) error

	// Delete removes a profile; its tasks go with it (cascade).
	Delete(ctx context.Context, p *entity.Profile) error
}

// ProfileUpdate carries the optional fields of a profile edit.
// A nil field was absent from the request and is left untouched.
type ProfileUpdate struct {
	Username  *string
	Email     *string
	Password  *string
	Password2 *string
}

// AccountsUsecase provides the registration, authentication and profile
// management logic.
type AccountsUsecase struct {
	profiles ProfileRepository
}

// NewAccountsUsecase creates a new AccountsUsecase with the given repository.
func NewAccountsUsecase(profiles ProfileRepository) *AccountsUsecase {
	return &AccountsUsecase{profiles: profiles}
}

// Register creates a new profile when the username is unused and the two
// passwords match. The password is stored only as a bcrypt hash.
func (u *AccountsUsecase) Register(ctx context.Context, username, email, password, password2 string) error {
	_, err := u.profiles.FindByUsername(ctx, username)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return err
	}
	if password != password2 {
		return ErrPasswordMismatch
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return u.profiles.Create(ctx, entity.NewProfile(username, email, string(hashed)))
}

// Login verifies the password against the stored hash, rotates the
// profile's auth token and returns the profile.
// To mitigate timing attacks, bcrypt comparison runs even when the
// username does not exist.
func (u *AccountsUsecase) Login(ctx context.Context, username, password string) (*entity.Profile, error) {
	profile, err := u.profiles.FindByUsername(ctx, username)

	// Dummy hash so that CompareHashAndPassword is always called.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = profile.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	profile.Token = uuid.NewString()
	if err := u.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to rotate token: %w", err)
	}
	return profile, nil
}

// Authenticate checks a decoded cookie pair against the stored token.
// It requires exact token equality for an existing profile; it does not
// compare the cookie identity with the resource being accessed.
func (u *AccountsUsecase) Authenticate(ctx context.Context, username, token string) (bool, error) {
	profile, err := u.profiles.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return false, nil
		}
		return false, err
	}
	return profile.Token == token, nil
}

// GetProfile retrieves a profile with its task list by username.
func (u *AccountsUsecase) GetProfile(ctx context.Context, username string) (*entity.Profile, error) {
	return u.profiles.FindByUsername(ctx, username)
}

// UpdateProfile applies the supplied fields to an existing profile.
// The password changes only when both password fields are present,
// equal and non-empty; it is then re-hashed.
func (u *AccountsUsecase) UpdateProfile(ctx context.Context, username string, upd ProfileUpdate) (*entity.Profile, error) {
	profile, err := u.profiles.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if upd.Username != nil {
		profile.Username = *upd.Username
	}
	if upd.Password != nil && upd.Password2 != nil && *upd.Password == *upd.Password2 && *upd.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		profile.Password = string(hashed)
	}
	if upd.Email != nil {
		profile.Email = *upd.Email
	}
	if err := u.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteProfile removes a profile and, through the cascade, all of its tasks.
func (u *AccountsUsecase) DeleteProfile(ctx context.Context, username string) error {
	profile, err := u.profiles.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	return u.profiles.Delete(ctx, profile)
}
