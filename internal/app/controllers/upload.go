package controllers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/slgoiko/unirhub/internal/app/services"
	"github.com/slgoiko/unirhub/internal/pkg/helpers"
	"github.com/slgoiko/unirhub/internal/pkg/logger"
)

// uploadFieldName is the multipart field carrying uploaded files.
const uploadFieldName = "files"

// stageUploads writes the request's uploaded files to a scratch directory and
// returns them with a cleanup function. The cleanup always runs before the
// handler returns, success or not, so staging files never outlive a request.
// Entries with an empty filename are skipped.
func stageUploads(c *gin.Context) ([]services.StagedFile, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	dir, err := os.MkdirTemp("", "unirhub-upload-")
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to create staging directory: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("Failed to remove staging directory")
		}
	}

	var staged []services.StagedFile
	for _, fileHeader := range form.File[uploadFieldName] {
		if fileHeader.Filename == "" {
			continue
		}

		filename := helpers.SanitizeFilename(fileHeader.Filename)
		path := filepath.Join(dir, fmt.Sprintf("%d-%s", len(staged), filename))

		if err := c.SaveUploadedFile(fileHeader, path); err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("failed to stage %s: %w", filename, err)
		}

		staged = append(staged, services.StagedFile{
			Filename: filename,
			Path:     path,
		})
	}

	return staged, cleanup, nil
}
