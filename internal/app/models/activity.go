package models

import "time"

// Activity is a trackable assignment with due date, completion flag and grade
type Activity struct {
	ID          int64      `json:"id"`
	SubjectID   int64      `json:"subject_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	Grade       *string    `json:"grade,omitempty"`
	Comments    string     `json:"comments,omitempty"`
}

// ActivityFile is a Drive attachment belonging to an activity
type ActivityFile struct {
	ID          int64  `json:"id"`
	ActivityID  int64  `json:"activity_id"`
	Filename    string `json:"filename"`
	DriveFileID string `json:"drive_file_id"`
}
