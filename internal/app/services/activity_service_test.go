package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slgoiko/unirhub/internal/app/models"
	"github.com/slgoiko/unirhub/internal/pkg/apperrors"
)

func TestActivityCreate(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	activities := newFakeActivityStore()
	service := NewActivityService(activities, subjects, &fakeProvider{})

	activity, err := service.Create(context.Background(), subject.ID, "Assignment 2", "exercises 1-10", "2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, "Assignment 2", activity.Title)
	require.NotNil(t, activity.DueDate)
	assert.Equal(t, 15, activity.DueDate.Day())
	assert.False(t, activity.IsCompleted)
}

func TestActivityCreateValidation(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	service := NewActivityService(newFakeActivityStore(), subjects, &fakeProvider{})

	_, err := service.Create(context.Background(), subject.ID, "  ", "", "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = service.Create(context.Background(), subject.ID, "Assignment", "", "15/06/2025")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = service.Create(context.Background(), 42, "Assignment", "", "")
	assert.ErrorIs(t, err, apperrors.ErrSubjectNotFound)
}

func TestActivityCreateWithoutDueDate(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	service := NewActivityService(newFakeActivityStore(), subjects, &fakeProvider{})

	activity, err := service.Create(context.Background(), subject.ID, "Reading", "", "")
	require.NoError(t, err)
	assert.Nil(t, activity.DueDate)
}

func TestActivityToggleRoundTrip(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	activities := newFakeActivityStore()
	service := NewActivityService(activities, subjects, &fakeProvider{})

	ctx := context.Background()
	activity, err := service.Create(ctx, subject.ID, "Assignment", "", "")
	require.NoError(t, err)

	done, err := service.Toggle(ctx, activity.ID)
	require.NoError(t, err)
	assert.True(t, done)

	done, err = service.Toggle(ctx, activity.ID)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestActivitySetGrade(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	activities := newFakeActivityStore()
	service := NewActivityService(activities, subjects, &fakeProvider{})

	ctx := context.Background()
	activity, err := service.Create(ctx, subject.ID, "Assignment", "", "")
	require.NoError(t, err)

	require.NoError(t, service.SetGrade(ctx, activity.ID, " 8.5 ", " good work "))
	stored := activities.activities[activity.ID]
	require.NotNil(t, stored.Grade)
	assert.Equal(t, "8.5", *stored.Grade)
	assert.Equal(t, "good work", stored.Comments)

	// clearing the grade
	require.NoError(t, service.SetGrade(ctx, activity.ID, "", ""))
	assert.Nil(t, activities.activities[activity.ID].Grade)
}

func TestActivityAttachFiles(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	activities := newFakeActivityStore()
	drive := newFakeDrive()
	service := NewActivityService(activities, subjects, &fakeProvider{drive: drive})

	ctx := context.Background()
	activity, err := service.Create(ctx, subject.ID, "Assignment", "", "")
	require.NoError(t, err)

	files := []StagedFile{
		{Filename: "solution.pdf", Path: "/tmp/solution.pdf"},
		{Filename: "notes.txt", Path: "/tmp/notes.txt"},
	}
	result, err := service.AttachFiles(ctx, testToken(), activity.ID, files)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Uploaded)
	assert.Equal(t, []string{"Algebra", "actividades"}, drive.folders)
	// attachment filenames stay verbatim, no prefix policy
	require.Len(t, drive.uploads, 2)
	assert.Equal(t, "solution.pdf", drive.uploads[0].title)

	attachments, err := activities.GetFiles(ctx, activity.ID)
	require.NoError(t, err)
	require.Len(t, attachments, 2)
	assert.Equal(t, "file-1", attachments[0].DriveFileID)
}

func TestActivityAttachFilesPartialFailure(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	activities := newFakeActivityStore()
	drive := newFakeDrive()
	drive.failUploads["broken.pdf"] = true
	service := NewActivityService(activities, subjects, &fakeProvider{drive: drive})

	ctx := context.Background()
	activity, err := service.Create(ctx, subject.ID, "Assignment", "", "")
	require.NoError(t, err)

	files := []StagedFile{
		{Filename: "broken.pdf", Path: "/tmp/broken.pdf"},
		{Filename: "fine.pdf", Path: "/tmp/fine.pdf"},
	}
	result, err := service.AttachFiles(ctx, testToken(), activity.ID, files)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Uploaded)
	assert.Equal(t, []string{"broken.pdf"}, result.Failed)
}

func TestActivityDeleteRemovesDriveAttachments(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	activities := newFakeActivityStore()
	drive := newFakeDrive()
	service := NewActivityService(activities, subjects, &fakeProvider{drive: drive})

	ctx := context.Background()
	activity, err := service.Create(ctx, subject.ID, "Assignment", "", "")
	require.NoError(t, err)
	require.NoError(t, activities.CreateFile(ctx, &models.ActivityFile{ActivityID: activity.ID, Filename: "a.pdf", DriveFileID: "file-a"}))
	require.NoError(t, activities.CreateFile(ctx, &models.ActivityFile{ActivityID: activity.ID, Filename: "b.pdf", DriveFileID: "file-b"}))

	require.NoError(t, service.Delete(ctx, testToken(), activity.ID))
	assert.ElementsMatch(t, []string{"file-a", "file-b"}, drive.deleted)
	assert.Empty(t, activities.activities)
}

func TestActivityDeleteProceedsWhenDriveUnavailable(t *testing.T) {
	subjects := newFakeSubjectStore()
	subject := subjects.add("Algebra")
	activities := newFakeActivityStore()
	service := NewActivityService(activities, subjects, &fakeProvider{driveErr: errors.New("no network")})

	ctx := context.Background()
	activity, err := service.Create(ctx, subject.ID, "Assignment", "", "")
	require.NoError(t, err)
	require.NoError(t, activities.CreateFile(ctx, &models.ActivityFile{ActivityID: activity.ID, Filename: "a.pdf", DriveFileID: "file-a"}))

	// attachments are left in Drive, the local activity still goes away
	require.NoError(t, service.Delete(ctx, testToken(), activity.ID))
	assert.Empty(t, activities.activities)
}
