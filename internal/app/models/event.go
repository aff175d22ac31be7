package models

import "time"

// Event is a calendar entry, optionally tied to a subject and mirrored to
// Google Calendar when the sync call succeeds.
type Event struct {
	ID            int64     `json:"id"`
	SubjectID     *int64    `json:"subject_id,omitempty"`
	Title         string    `json:"title"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Description   string    `json:"description,omitempty"`
	GoogleEventID *string   `json:"google_event_id,omitempty"`
}
