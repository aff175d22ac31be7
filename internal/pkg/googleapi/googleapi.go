// Package googleapi is the gateway to Google Drive and Google Calendar. All
// clients are built per request from the signed-in user's own credentials;
// nothing in here holds ambient or process-wide tokens.
package googleapi

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// Drive is the narrow contract the handlers need from the file storage service.
type Drive interface {
	// EnsureFolder looks a folder up by name under the optional parent and
	// creates it when missing. Lookup-then-create is not atomic; Drive does
	// not enforce folder name uniqueness and a duplicate on a concurrent
	// first upload is accepted.
	EnsureFolder(ctx context.Context, name, parentID string) (string, error)

	// Upload stores a local file under the given folder and returns the file ID.
	Upload(ctx context.Context, localPath, title, folderID string) (string, error)

	// Download returns the raw bytes of a stored file.
	Download(ctx context.Context, fileID string) ([]byte, error)

	// Delete removes a stored file by ID.
	Delete(ctx context.Context, fileID string) error
}

// EventInput is the provider-neutral shape of a calendar event to insert.
type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// Calendar is the narrow contract the handlers need from the calendar service.
type Calendar interface {
	// InsertEvent creates the event in the user's primary calendar and
	// returns the provider event ID.
	InsertEvent(ctx context.Context, event EventInput) (string, error)
}

// Provider builds service clients scoped to one user's delegated credentials.
type Provider interface {
	Drive(ctx context.Context, token *oauth2.Token) (Drive, error)
	Calendar(ctx context.Context, token *oauth2.Token) (Calendar, error)
}
