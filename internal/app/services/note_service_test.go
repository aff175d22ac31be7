package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slgoiko/unirhub/internal/pkg/apperrors"
)

func TestNoteAdd(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	notes := newFakeNoteStore()
	service := NewNoteService(notes, subjects)

	note, err := service.Add(context.Background(), subject.ID, "repasar tema 3")
	require.NoError(t, err)
	assert.Equal(t, subject.ID, note.SubjectID)
	assert.NotZero(t, note.ID)
}

func TestNoteAddValidation(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	service := NewNoteService(newFakeNoteStore(), subjects)

	_, err := service.Add(context.Background(), subject.ID, "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = service.Add(context.Background(), 42, "content")
	assert.ErrorIs(t, err, apperrors.ErrSubjectNotFound)
}

func TestNoteDelete(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	notes := newFakeNoteStore()
	service := NewNoteService(notes, subjects)

	note, err := service.Add(context.Background(), subject.ID, "content")
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), note.ID))
	assert.ErrorIs(t, service.Delete(context.Background(), note.ID), apperrors.ErrNoteNotFound)
}
