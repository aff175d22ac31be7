package dto

import (
	"time"

	"github.com/slgoiko/unirhub/internal/app/models"
)

// APIResponse is the standard success envelope for API endpoints
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// SuccessResponse represents a plain outcome message
type SuccessResponse struct {
	Message string `json:"message"`
}

// SubjectDetail aggregates a subject with all of its children, ordered the way
// the client renders them.
type SubjectDetail struct {
	Subject    models.Subject               `json:"subject"`
	Notes      []*models.Note               `json:"notes"`
	Resources  map[string][]*models.Resource `json:"resources"`
	Activities []*models.Activity           `json:"activities"`
	Events     []*models.Event              `json:"events"`
}

// ActivityDetail pairs an activity with its Drive attachments.
type ActivityDetail struct {
	Activity models.Activity        `json:"activity"`
	Files    []*models.ActivityFile `json:"files"`
}

// UploadResult reports the outcome of a multi-file upload. Each file succeeds
// or fails independently; Failed lists the original filenames that did not
// make it to Drive.
type UploadResult struct {
	Uploaded int      `json:"uploaded"`
	Failed   []string `json:"failed,omitempty"`
}

// CalendarEvent is the calendar-view projection of an event. The title carries
// the subject name prefix when the event belongs to a subject.
type CalendarEvent struct {
	ID    int64     `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// LoginInfo carries the authorization URL the client should follow to sign in
type LoginInfo struct {
	AuthURL string `json:"auth_url"`
}

// UserInfo identifies the signed-in user
type UserInfo struct {
	Email string `json:"email"`
}
