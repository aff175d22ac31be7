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

// ResourceService handles resource-related operations, including the Drive
// uploads behind file resources.
type ResourceService struct {
	resources ResourceStore
	subjects  SubjectStore
	google    googleapi.Provider
}

// NewResourceService creates a new resource service instance
func NewResourceService(resources ResourceStore, subjects SubjectStore, google googleapi.Provider) *ResourceService {
	return &ResourceService{
		resources: resources,
		subjects:  subjects,
		google:    google,
	}
}

// Upload stores staged files in Drive under Subject.name/category and records
// a resource row per uploaded file. Files succeed or fail independently: a
// failed upload is logged and skipped, never rolled into the others.
func (s *ResourceService) Upload(ctx context.Context, token *oauth2.Token, subjectID int64, category, titlePrefix string, files []StagedFile) (*dto.UploadResult, error) {
	category = strings.TrimSpace(category)
	if len(files) == 0 || category == "" {
		return nil, apperrors.NewValidationError("files and category are required")
	}
	if category == models.ResourceTypeLinks {
		return nil, apperrors.NewValidationError("links are recorded directly, not uploaded")
	}

	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	drive, err := s.google.Drive(ctx, token)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("could not connect to Google Drive")
	}

	categoryFolderID, err := s.ensureCategoryFolder(ctx, drive, subject.Name, category)
	if err != nil {
		return nil, err
	}

	result := &dto.UploadResult{}
	for _, file := range files {
		title := helpers.DeriveUploadTitle(titlePrefix, file.Filename, len(files))

		fileID, err := drive.Upload(ctx, file.Path, title, categoryFolderID)
		if err != nil {
			logger.Error().Err(err).Str("filename", file.Filename).Msg("Drive upload failed")
			result.Failed = append(result.Failed, file.Filename)
			continue
		}

		resource := &models.Resource{
			SubjectID: subjectID,
			Type:      category,
			Title:     title,
			PathOrURL: fileID,
		}
		if err := s.resources.Create(ctx, resource); err != nil {
			logger.Error().Err(err).Str("filename", file.Filename).Msg("Failed to record uploaded resource")
			result.Failed = append(result.Failed, file.Filename)
			continue
		}

		result.Uploaded++
	}

	return result, nil
}

// ensureCategoryFolder resolves (creating when needed) the Drive folder for a
// subject category.
func (s *ResourceService) ensureCategoryFolder(ctx context.Context, drive googleapi.Drive, subjectName, category string) (string, error) {
	subjectFolderID, err := drive.EnsureFolder(ctx, subjectName, "")
	if err != nil {
		logger.Error().Err(err).Str("subject", subjectName).Msg("Failed to resolve subject folder")
		return "", apperrors.NewExternalServiceError("could not resolve the subject folder in Drive")
	}

	categoryFolderID, err := drive.EnsureFolder(ctx, category, subjectFolderID)
	if err != nil {
		logger.Error().Err(err).Str("category", category).Msg("Failed to resolve category folder")
		return "", apperrors.NewExternalServiceError("could not resolve the category folder in Drive")
	}

	return categoryFolderID, nil
}

// AddLink records a URL resource. Title and URL are required.
func (s *ResourceService) AddLink(ctx context.Context, subjectID int64, title, url string) (*models.Resource, error) {
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)
	if title == "" || url == "" {
		return nil, apperrors.NewValidationError("title and url are required")
	}

	if _, err := s.subjects.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}

	resource := &models.Resource{
		SubjectID: subjectID,
		Type:      models.ResourceTypeLinks,
		Title:     title,
		PathOrURL: url,
	}
	if err := s.resources.Create(ctx, resource); err != nil {
		return nil, fmt.Errorf("error creating link resource: %w", err)
	}

	return resource, nil
}

// Delete removes a resource row. For file resources the Drive copy is deleted
// best-effort first: a failure there is logged and the local delete proceeds,
// leaving the external file orphaned rather than blocking the user.
func (s *ResourceService) Delete(ctx context.Context, token *oauth2.Token, id int64) error {
	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !resource.IsLink() {
		s.deleteDriveFile(ctx, token, resource.PathOrURL)
	}

	return s.resources.Delete(ctx, id)
}

func (s *ResourceService) deleteDriveFile(ctx context.Context, token *oauth2.Token, fileID string) {
	drive, err := s.google.Drive(ctx, token)
	if err != nil {
		logger.Warn().Err(err).Str("fileID", fileID).Msg("Could not connect to Drive, external file left in place")
		return
	}
	if err := drive.Delete(ctx, fileID); err != nil {
		logger.Warn().Err(err).Str("fileID", fileID).Msg("Drive delete failed, external file left in place")
	}
}

// Download fetches the bytes of a file resource from Drive.
func (s *ResourceService) Download(ctx context.Context, token *oauth2.Token, id int64) (*models.Resource, []byte, error) {
	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if resource.IsLink() {
		return nil, nil, apperrors.NewValidationError("link resources have no stored file")
	}

	drive, err := s.google.Drive(ctx, token)
	if err != nil {
		return nil, nil, apperrors.NewExternalServiceError("could not connect to Google Drive")
	}

	data, err := drive.Download(ctx, resource.PathOrURL)
	if err != nil {
		logger.Error().Err(err).Str("fileID", resource.PathOrURL).Msg("Drive download failed")
		return nil, nil, apperrors.NewExternalServiceError("could not download the file from Drive")
	}

	return resource, data, nil
}
