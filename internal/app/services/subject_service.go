package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/slgoiko/unirhub/internal/app/models"
	"github.com/slgoiko/unirhub/internal/app/models/dto"
	"github.com/slgoiko/unirhub/internal/pkg/apperrors"
)

// SubjectService handles subject-related operations
type SubjectService struct {
	subjects   SubjectStore
	notes      NoteStore
	resources  ResourceStore
	activities ActivityStore
	events     EventStore
}

// NewSubjectService creates a new subject service instance
func NewSubjectService(subjects SubjectStore, notes NoteStore, resources ResourceStore, activities ActivityStore, events EventStore) *SubjectService {
	return &SubjectService{
		subjects:   subjects,
		notes:      notes,
		resources:  resources,
		activities: activities,
		events:     events,
	}
}

// Create creates a new subject. The name is required and unique.
func (s *SubjectService) Create(ctx context.Context, name, description string) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("subject name is required")
	}

	subject := &models.Subject{
		Name:        name,
		Description: strings.TrimSpace(description),
	}

	if err := s.subjects.Create(ctx, subject); err != nil {
		if err == apperrors.ErrSubjectAlreadyExists {
			return nil, apperrors.NewConflictError(fmt.Sprintf("a subject named %q already exists", name))
		}
		return nil, fmt.Errorf("error creating subject: %w", err)
	}

	return subject, nil
}

// List retrieves all subjects.
func (s *SubjectService) List(ctx context.Context) ([]*models.Subject, error) {
	return s.subjects.GetAll(ctx)
}

// Detail retrieves a subject with all of its children: notes newest first,
// resources grouped by category, activities by due date, events by start time.
func (s *SubjectService) Detail(ctx context.Context, id int64) (*dto.SubjectDetail, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.GetBySubjectID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading notes: %w", err)
	}

	resources, err := s.resources.GetBySubjectID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading resources: %w", err)
	}
	grouped := make(map[string][]*models.Resource)
	for _, resource := range resources {
		grouped[resource.Type] = append(grouped[resource.Type], resource)
	}

	activities, err := s.activities.GetBySubjectID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading activities: %w", err)
	}

	events, err := s.events.GetBySubjectID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading events: %w", err)
	}

	return &dto.SubjectDetail{
		Subject:    *subject,
		Notes:      notes,
		Resources:  grouped,
		Activities: activities,
		Events:     events,
	}, nil
}

// UpdateDescription updates a subject's description.
func (s *SubjectService) UpdateDescription(ctx context.Context, id int64, description string) error {
	return s.subjects.UpdateDescription(ctx, id, strings.TrimSpace(description))
}

// Delete removes a subject and, through the schema cascade, every note,
// resource, activity (with attachment rows) and event it owns. Drive copies
// of the subject's files are deliberately left in place.
func (s *SubjectService) Delete(ctx context.Context, id int64) error {
	return s.subjects.Delete(ctx, id)
}
