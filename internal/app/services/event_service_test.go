package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slgoiko/unirhub/internal/pkg/apperrors"
)

func TestEventCreateSyncsToCalendar(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	events := newFakeEventStore()
	calendar := &fakeCalendar{}
	service := NewEventService(events, subjects, &fakeProvider{calendar: calendar})

	event, synced, err := service.Create(context.Background(), testToken(), &subject.ID, "Final exam", "room B-12", "2025-06-20T09:00", "2025-06-20T11:00")
	require.NoError(t, err)

	assert.True(t, synced)
	assert.Equal(t, "Final exam", event.Title)
	require.NotNil(t, event.GoogleEventID)
	assert.Equal(t, "gcal-1", *event.GoogleEventID)

	require.Len(t, calendar.inserted, 1)
	assert.Equal(t, "[Algebra] Final exam", calendar.inserted[0].Summary)
	assert.Equal(t, 9, calendar.inserted[0].Start.Hour())
}

func TestEventCreateStandalone(t *testing.T) {
	events := newFakeEventStore()
	calendar := &fakeCalendar{}
	service := NewEventService(events, newFakeSubjectStore(), &fakeProvider{calendar: calendar})

	event, synced, err := service.Create(context.Background(), testToken(), nil, "Dentist", "", "2025-06-20T09:00", "2025-06-20T10:00")
	require.NoError(t, err)

	assert.True(t, synced)
	assert.Nil(t, event.SubjectID)
	// no subject, no prefix
	assert.Equal(t, "Dentist", calendar.inserted[0].Summary)
}

func TestEventCreateValidation(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	service := NewEventService(newFakeEventStore(), subjects, &fakeProvider{calendar: &fakeCalendar{}})

	ctx := context.Background()

	_, _, err := service.Create(ctx, testToken(), &subject.ID, "", "", "2025-06-20T09:00", "2025-06-20T11:00")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, _, err = service.Create(ctx, testToken(), &subject.ID, "Final", "", "not-a-time", "2025-06-20T11:00")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// end before start is rejected outright
	_, _, err = service.Create(ctx, testToken(), &subject.ID, "Final", "", "2025-06-20T11:00", "2025-06-20T09:00")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	unknown := int64(42)
	_, _, err = service.Create(ctx, testToken(), &unknown, "Final", "", "2025-06-20T09:00", "2025-06-20T11:00")
	assert.ErrorIs(t, err, apperrors.ErrSubjectNotFound)
}

func TestEventCreateSurvivesCalendarFailure(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	events := newFakeEventStore()
	service := NewEventService(events, subjects, &fakeProvider{calendarErr: errors.New("no network")})

	event, synced, err := service.Create(context.Background(), testToken(), &subject.ID, "Final exam", "", "2025-06-20T09:00", "2025-06-20T11:00")
	require.NoError(t, err)

	assert.False(t, synced)
	assert.Nil(t, event.GoogleEventID)
	// the local row exists regardless
	assert.Len(t, events.events, 1)
}

func TestEventCreateSurvivesInsertFailure(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	events := newFakeEventStore()
	calendar := &fakeCalendar{insertErr: errors.New("quota exceeded")}
	service := NewEventService(events, subjects, &fakeProvider{calendar: calendar})

	event, synced, err := service.Create(context.Background(), testToken(), &subject.ID, "Final exam", "", "2025-06-20T09:00", "2025-06-20T11:00")
	require.NoError(t, err)
	assert.False(t, synced)
	assert.Nil(t, event.GoogleEventID)
}

func TestEventListCalendarPrefixesSubjectName(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	events := newFakeEventStore()
	events.subjectName[subject.ID] = subject.Name
	calendar := &fakeCalendar{}
	service := NewEventService(events, subjects, &fakeProvider{calendar: calendar})

	ctx := context.Background()
	_, _, err := service.Create(ctx, testToken(), &subject.ID, "Final exam", "", "2025-06-20T09:00", "2025-06-20T11:00")
	require.NoError(t, err)
	_, _, err = service.Create(ctx, testToken(), nil, "Dentist", "", "2025-06-21T09:00", "2025-06-21T10:00")
	require.NoError(t, err)

	view, err := service.ListCalendar(ctx)
	require.NoError(t, err)
	require.Len(t, view, 2)

	titles := []string{view[0].Title, view[1].Title}
	assert.Contains(t, titles, "[Algebra] Final exam")
	assert.Contains(t, titles, "Dentist")
}

func TestEventDelete(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	events := newFakeEventStore()
	service := NewEventService(events, subjects, &fakeProvider{calendar: &fakeCalendar{}})

	ctx := context.Background()
	event, _, err := service.Create(ctx, testToken(), &subject.ID, "Final exam", "", "2025-06-20T09:00", "2025-06-20T11:00")
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, event.ID))
	assert.ErrorIs(t, service.Delete(ctx, event.ID), apperrors.ErrEventNotFound)
}
