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

// activityFolderName is the fixed Drive folder activity attachments live in,
// under the subject folder.
const activityFolderName = "actividades"

// ActivityService handles activity-related operations
type ActivityService struct {
	activities ActivityStore
	subjects   SubjectStore
	google     googleapi.Provider
}

// NewActivityService creates a new activity service instance
func NewActivityService(activities ActivityStore, subjects SubjectStore, google googleapi.Provider) *ActivityService {
	return &ActivityService{
		activities: activities,
		subjects:   subjects,
		google:     google,
	}
}

// Create creates a new activity. Title is required; the due date, when
// present, uses the date-input layout (2006-01-02).
func (s *ActivityService) Create(ctx context.Context, subjectID int64, title, description, dueDateStr string) (*models.Activity, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewValidationError("activity title is required")
	}

	if _, err := s.subjects.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}

	activity := &models.Activity{
		SubjectID:   subjectID,
		Title:       title,
		Description: strings.TrimSpace(description),
	}

	if dueDateStr != "" {
		dueDate, err := helpers.ParseDate(dueDateStr)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid due date, expected YYYY-MM-DD")
		}
		activity.DueDate = &dueDate
	}

	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("error creating activity: %w", err)
	}

	return activity, nil
}

// Get retrieves an activity with its attachments.
func (s *ActivityService) Get(ctx context.Context, id int64) (*models.Activity, []*models.ActivityFile, error) {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	files, err := s.activities.GetFiles(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading activity files: %w", err)
	}

	return activity, files, nil
}

// Toggle flips the completion flag and returns the new state. Toggling twice
// restores the original state.
func (s *ActivityService) Toggle(ctx context.Context, id int64) (bool, error) {
	return s.activities.ToggleCompleted(ctx, id)
}

// SetGrade records the grade and comments for an activity. An empty grade
// clears it.
func (s *ActivityService) SetGrade(ctx context.Context, id int64, grade, comments string) error {
	grade = strings.TrimSpace(grade)
	var gradePtr *string
	if grade != "" {
		gradePtr = &grade
	}
	return s.activities.UpdateGradeComments(ctx, id, gradePtr, strings.TrimSpace(comments))
}

// Delete removes an activity. Each Drive attachment is deleted best-effort
// first; failures are logged and the local delete proceeds, the attachment
// rows go with the activity through the schema cascade.
func (s *ActivityService) Delete(ctx context.Context, token *oauth2.Token, id int64) error {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return err
	}

	files, err := s.activities.GetFiles(ctx, activity.ID)
	if err != nil {
		return fmt.Errorf("error loading activity files: %w", err)
	}

	if len(files) > 0 {
		drive, err := s.google.Drive(ctx, token)
		if err != nil {
			logger.Warn().Err(err).Int64("activityID", id).Msg("Could not connect to Drive, attachments left in place")
		} else {
			for _, file := range files {
				if err := drive.Delete(ctx, file.DriveFileID); err != nil {
					logger.Warn().Err(err).Str("fileID", file.DriveFileID).Msg("Drive delete failed, attachment left in place")
				}
			}
		}
	}

	return s.activities.Delete(ctx, id)
}

// AttachFiles uploads staged files to Subject.name/actividades and records an
// attachment row per uploaded file, each succeeding or failing independently.
// Attachment filenames are kept verbatim; the title prefix policy only applies
// to resource uploads.
func (s *ActivityService) AttachFiles(ctx context.Context, token *oauth2.Token, activityID int64, files []StagedFile) (*dto.UploadResult, error) {
	if len(files) == 0 {
		return nil, apperrors.NewValidationError("no files provided")
	}

	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}

	subject, err := s.subjects.GetByID(ctx, activity.SubjectID)
	if err != nil {
		return nil, err
	}

	drive, err := s.google.Drive(ctx, token)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("could not connect to Google Drive")
	}

	subjectFolderID, err := drive.EnsureFolder(ctx, subject.Name, "")
	if err != nil {
		logger.Error().Err(err).Str("subject", subject.Name).Msg("Failed to resolve subject folder")
		return nil, apperrors.NewExternalServiceError("could not resolve the subject folder in Drive")
	}

	activityFolderID, err := drive.EnsureFolder(ctx, activityFolderName, subjectFolderID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to resolve activities folder")
		return nil, apperrors.NewExternalServiceError("could not resolve the activities folder in Drive")
	}

	result := &dto.UploadResult{}
	for _, file := range files {
		fileID, err := drive.Upload(ctx, file.Path, file.Filename, activityFolderID)
		if err != nil {
			logger.Error().Err(err).Str("filename", file.Filename).Msg("Drive upload failed")
			result.Failed = append(result.Failed, file.Filename)
			continue
		}

		attachment := &models.ActivityFile{
			ActivityID:  activityID,
			Filename:    file.Filename,
			DriveFileID: fileID,
		}
		if err := s.activities.CreateFile(ctx, attachment); err != nil {
			logger.Error().Err(err).Str("filename", file.Filename).Msg("Failed to record activity attachment")
			result.Failed = append(result.Failed, file.Filename)
			continue
		}

		result.Uploaded++
	}

	return result, nil
}
