package repositories

import (
	"github.com/slgoiko/unirhub/internal/db"
)

// Repositories is a container for all repositories
type Repositories struct {
	SubjectRepository  *SubjectRepository
	NoteRepository     *NoteRepository
	ResourceRepository *ResourceRepository
	ActivityRepository *ActivityRepository
	EventRepository    *EventRepository
	SessionRepository  *SessionRepository
}

// NewRepositories creates a new Repositories container
func NewRepositories(database *db.PostgresDB) *Repositories {
	pool := database.Pool
	return &Repositories{
		SubjectRepository:  NewSubjectRepository(pool),
		NoteRepository:     NewNoteRepository(pool),
		ResourceRepository: NewResourceRepository(pool),
		ActivityRepository: NewActivityRepository(pool),
		EventRepository:    NewEventRepository(pool),
		SessionRepository:  NewSessionRepository(database),
	}
}
