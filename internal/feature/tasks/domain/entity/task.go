// Package entity defines the domain entities for the tasks feature.
package entity

import "time"

// DateFormat is the fixed textual layout every date in the API is
// rendered with and parsed from ("DD/MM/YYYY HH:MM:SS").
const DateFormat = "02/01/2006 15:04:05"

// Task represents a single to-do item owned by exactly one profile.
type Task struct {
	// ID is the unique identifier for the task.
	ID uint `gorm:"primaryKey"`

	// Name is the short description of the task.
	Name string `gorm:"size:255;not null"`

	// Note holds optional free-form detail.
	Note string `gorm:"size:1024"`

	// CreationDate is stamped once when the task is created.
	CreationDate time.Time `gorm:"not null"`

	// DueDate is optional; nil means no due date was given.
	DueDate *time.Time

	// Completed reports whether the task is done.
	Completed bool `gorm:"not null;default:false"`

	// ProfileID references the owning profile. Deleting the profile
	// cascades to its tasks.
	ProfileID uint `gorm:"not null;index"`
}

// ToMap returns the task's properties as a string-keyed mapping of
// primitive values, dates rendered with DateFormat and a missing due
// date rendered as nil.
func (t *Task) ToMap() map[string]any {
	var due any
	if t.DueDate != nil {
		due = t.DueDate.Format(DateFormat)
	}
	return map[string]any{
		"id":            t.ID,
		"name":          t.Name,
		"note":          t.Note,
		"creation_date": t.CreationDate.Format(DateFormat),
		"due_date":      due,
		"completed":     t.Completed,
		"profile_id":    t.ProfileID,
	}
}

// ParseDueDate parses a due date in DateFormat. An empty string means
// no due date and yields nil without error.
func ParseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	ts, err := time.Parse(DateFormat, s)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
