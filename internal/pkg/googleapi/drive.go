package googleapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// driveClient implements Drive on top of the Drive v3 API.
type driveClient struct {
	svc     *drive.Service
	timeout time.Duration
}

func newDriveClient(ctx context.Context, httpClient *http.Client, timeout time.Duration) (*driveClient, error) {
	svc, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to build drive client: %w", err)
	}
	return &driveClient{svc: svc, timeout: timeout}, nil
}

// escapeQueryTerm escapes single quotes for use inside a Drive query string.
func escapeQueryTerm(s string) string {
	return strings.ReplaceAll(s, `'`, `\'`)
}

// EnsureFolder finds a folder by name under the optional parent, creating it
// when absent.
func (c *driveClient) EnsureFolder(ctx context.Context, name, parentID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	query := fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false", escapeQueryTerm(name), folderMimeType)
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", parentID)
	}

	list, err := c.svc.Files.List().
		Q(query).
		Spaces("drive").
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("folder lookup failed for %q: %w", name, err)
	}

	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	meta := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
	}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	folder, err := c.svc.Files.Create(meta).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("folder creation failed for %q: %w", name, err)
	}
	return folder.Id, nil
}

// Upload stores the staged local file in the given folder under the given title.
func (c *driveClient) Upload(ctx context.Context, localPath, title, folderID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open staged file: %w", err)
	}
	defer f.Close()

	meta := &drive.File{
		Name:    title,
		Parents: []string{folderID},
	}

	created, err := c.svc.Files.Create(meta).
		Media(f).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("upload failed for %q: %w", title, err)
	}
	return created.Id, nil
}

// Download returns the raw bytes of a stored file.
func (c *driveClient) Download(ctx context.Context, fileID string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download failed for file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	return data, nil
}

// Delete removes a stored file.
func (c *driveClient) Delete(ctx context.Context, fileID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.svc.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete failed for file %s: %w", fileID, err)
	}
	return nil
}
