// Package services holds the application logic between the HTTP controllers
// and the repositories. Services accept narrow store interfaces so the logic
// can be exercised without a database, and reach Google through
// googleapi.Provider with the calling session's own credentials.
package services

import (
	"context"

	"github.com/slgoiko/unirhub/internal/app/models"
	"github.com/slgoiko/unirhub/internal/app/repositories"
)

// SubjectStore is the persistence contract for subjects.
type SubjectStore interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	GetAll(ctx context.Context) ([]*models.Subject, error)
	UpdateDescription(ctx context.Context, id int64, description string) error
	Delete(ctx context.Context, id int64) error
}

// NoteStore is the persistence contract for notes.
type NoteStore interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	GetBySubjectID(ctx context.Context, subjectID int64) ([]*models.Note, error)
	Delete(ctx context.Context, id int64) error
}

// ResourceStore is the persistence contract for resources.
type ResourceStore interface {
	Create(ctx context.Context, resource *models.Resource) error
	GetByID(ctx context.Context, id int64) (*models.Resource, error)
	GetBySubjectID(ctx context.Context, subjectID int64) ([]*models.Resource, error)
	Delete(ctx context.Context, id int64) error
}

// ActivityStore is the persistence contract for activities and their files.
type ActivityStore interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, id int64) (*models.Activity, error)
	GetBySubjectID(ctx context.Context, subjectID int64) ([]*models.Activity, error)
	ToggleCompleted(ctx context.Context, id int64) (bool, error)
	UpdateGradeComments(ctx context.Context, id int64, grade *string, comments string) error
	Delete(ctx context.Context, id int64) error
	CreateFile(ctx context.Context, file *models.ActivityFile) error
	GetFiles(ctx context.Context, activityID int64) ([]*models.ActivityFile, error)
}

// EventStore is the persistence contract for events.
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetBySubjectID(ctx context.Context, subjectID int64) ([]*models.Event, error)
	GetAllWithSubject(ctx context.Context) ([]*repositories.EventWithSubject, error)
	SetGoogleEventID(ctx context.Context, id int64, googleEventID string) error
	Delete(ctx context.Context, id int64) error
}

// SessionStore is the persistence contract for login sessions.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// StagedFile is an uploaded file already written to a temporary location by
// the controller. The controller owns the temp file's lifetime; services only
// read it.
type StagedFile struct {
	Filename string
	Path     string
}
