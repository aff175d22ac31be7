package models

import "time"

// Note is a free-form text note attached to a subject
type Note struct {
	ID        int64     `json:"id"`
	SubjectID int64     `json:"subject_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
