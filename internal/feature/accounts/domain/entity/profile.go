// Package entity defines the domain entities for the accounts feature.
package entity

import (
	"time"

	taskentity "todo_backend/internal/feature/tasks/domain/entity"
)

// Profile represents a registered user account.
// It owns zero or more tasks; deleting a profile deletes its tasks.
type Profile struct {
	// ID is the unique identifier for the profile.
	ID uint `gorm:"primaryKey"`

	// Username identifies the profile in URLs and in the auth cookie.
	// It must be unique across all profiles.
	Username string `gorm:"uniqueIndex;size:255;not null"`

	// Email is the profile's contact address.
	Email string `gorm:"size:255;not null"`

	// Password is the bcrypt hash of the profile's password.
	// This never stores plaintext.
	Password string `gorm:"size:255;not null"`

	// Token is the opaque auth secret compared for equality on every
	// authorized request. It is rotated on each successful login and
	// empty until the first one.
	Token string `gorm:"size:255"`

	// DateJoined is stamped once when the profile is constructed.
	DateJoined time.Time `gorm:"not null"`

	// Tasks are the to-do items owned by this profile.
	Tasks []taskentity.Task `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}

// NewProfile constructs a profile with the join date stamped now.
func NewProfile(username, email, hashedPassword string) *Profile {
	return &Profile{
		Username:   username,
		Email:      email,
		Password:   hashedPassword,
		DateJoined: time.Now(),
	}
}

// ToMap returns the profile's properties as a string-keyed mapping of
// primitive values. The task list is always walked in full; there is no
// partial or lazy form.
func (p *Profile) ToMap() map[string]any {
	tasks := make([]map[string]any, 0, len(p.Tasks))
	for i := range p.Tasks {
		tasks = append(tasks, p.Tasks[i].ToMap())
	}
	return map[string]any{
		"id":          p.ID,
		"username":    p.Username,
		"email":       p.Email,
		"date_joined": p.DateJoined.Format(taskentity.DateFormat),
		"tasks":       tasks,
	}
}
