package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"

	"github.com/slgoiko/unirhub/internal/app/models"
	"github.com/slgoiko/unirhub/internal/app/models/dto"
	"github.com/slgoiko/unirhub/internal/pkg/apperrors"
	"github.com/slgoiko/unirhub/internal/pkg/googleapi"
	"github.com/slgoiko/unirhub/internal/pkg/helpers"
	"github.com/slgoiko/unirhub/internal/pkg/logger"
)

// EventService handles event-related operations and the best-effort Google
// Calendar sync.
type EventService struct {
	events   EventStore
	subjects SubjectStore
	google   googleapi.Provider
}

// NewEventService creates a new event service instance
func NewEventService(events EventStore, subjects SubjectStore, google googleapi.Provider) *EventService {
	return &EventService{
		events:   events,
		subjects: subjects,
		google:   google,
	}
}

// Create records an event and mirrors it to Google Calendar. The local row is
// written first; a failed calendar insert is logged and the event simply
// stays unsynced (google_event_id empty). Returns whether the sync succeeded.
func (s *EventService) Create(ctx context.Context, token *oauth2.Token, subjectID *int64, title, description, startStr, endStr string) (*models.Event, bool, error) {
	title = strings.TrimSpace(title)
	if title == "" || startStr == "" || endStr == "" {
		return nil, false, apperrors.NewValidationError("title, start and end are required")
	}

	start, err := helpers.ParseDateTimeLocal(startStr)
	if err != nil {
		return nil, false, apperrors.NewValidationError("invalid start time, expected YYYY-MM-DDTHH:MM")
	}
	end, err := helpers.ParseDateTimeLocal(endStr)
	if err != nil {
		return nil, false, apperrors.NewValidationError("invalid end time, expected YYYY-MM-DDTHH:MM")
	}
	if end.Before(start) {
		return nil, false, apperrors.NewValidationError("end time must not be before start time")
	}

	summary := title
	if subjectID != nil {
		subject, err := s.subjects.GetByID(ctx, *subjectID)
		if err != nil {
			return nil, false, err
		}
		summary = fmt.Sprintf("[%s] %s", subject.Name, title)
	}

	event := &models.Event{
		SubjectID:   subjectID,
		Title:       title,
		StartTime:   start,
		EndTime:     end,
		Description: strings.TrimSpace(description),
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, false, fmt.Errorf("error creating event: %w", err)
	}

	synced := s.syncToCalendar(ctx, token, event, summary)
	return event, synced, nil
}

// syncToCalendar pushes the event to the user's primary calendar and records
// the returned ID. Best-effort only.
func (s *EventService) syncToCalendar(ctx context.Context, token *oauth2.Token, event *models.Event, summary string) bool {
	calendar, err := s.google.Calendar(ctx, token)
	if err != nil {
		logger.Warn().Err(err).Int64("eventID", event.ID).Msg("Could not connect to Calendar, event left unsynced")
		return false
	}

	googleEventID, err := calendar.InsertEvent(ctx, googleapi.EventInput{
		Summary:     summary,
		Description: event.Description,
		Start:       event.StartTime,
		End:         event.EndTime,
	})
	if err != nil {
		logger.Warn().Err(err).Int64("eventID", event.ID).Msg("Calendar insert failed, event left unsynced")
		return false
	}

	if err := s.events.SetGoogleEventID(ctx, event.ID, googleEventID); err != nil {
		logger.Warn().Err(err).Int64("eventID", event.ID).Msg("Failed to record google event ID")
		return false
	}

	event.GoogleEventID = &googleEventID
	return true
}

// ListCalendar returns every event in calendar-view shape, subject-owned ones
// titled "[Subject] Title".
func (s *EventService) ListCalendar(ctx context.Context) ([]dto.CalendarEvent, error) {
	events, err := s.events.GetAllWithSubject(ctx)
	if err != nil {
		return nil, err
	}

	calendarEvents := make([]dto.CalendarEvent, 0, len(events))
	for _, event := range events {
		title := event.Title
		if event.SubjectName != nil {
			title = fmt.Sprintf("[%s] %s", *event.SubjectName, event.Title)
		}
		calendarEvents = append(calendarEvents, dto.CalendarEvent{
			ID:    event.ID,
			Title: title,
			Start: event.StartTime,
			End:   event.EndTime,
		})
	}

	return calendarEvents, nil
}

// Delete removes the local event row. The calendar copy, if one was created,
// is not touched; calendar deletion is not synced.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	return s.events.Delete(ctx, id)
}
