package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/slgoiko/unirhub/internal/app/models"
	"github.com/slgoiko/unirhub/internal/pkg/apperrors"
)

// NoteService handles note-related operations
type NoteService struct {
	notes    NoteStore
	subjects SubjectStore
}

// NewNoteService creates a new note service instance
func NewNoteService(notes NoteStore, subjects SubjectStore) *NoteService {
	return &NoteService{
		notes:    notes,
		subjects: subjects,
	}
}

// Add attaches a new note to a subject. Content is required.
func (s *NoteService) Add(ctx context.Context, subjectID int64, content string) (*models.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("note content is required")
	}

	if _, err := s.subjects.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}

	note := &models.Note{
		SubjectID: subjectID,
		Content:   content,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	return note, nil
}

// Delete removes a note.
func (s *NoteService) Delete(ctx context.Context, id int64) error {
	return s.notes.Delete(ctx, id)
}
