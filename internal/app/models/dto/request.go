package dto

// CreateSubjectRequest represents the request to create a subject
type CreateSubjectRequest struct {
	Name        string `form:"name" json:"name" binding:"required" example:"Algebra"`
	Description string `form:"description" json:"description" example:"Linear algebra, first semester"`
}

// UpdateSubjectRequest represents the request to update a subject's description
type UpdateSubjectRequest struct {
	Description string `form:"description" json:"description" example:"Linear algebra, first semester"`
}

// CreateNoteRequest represents the request to add a note to a subject
type CreateNoteRequest struct {
	Content string `form:"content" json:"content" binding:"required" example:"Review chapter 3 before the exam"`
}

// CreateLinkRequest represents the request to save a link resource
type CreateLinkRequest struct {
	Title string `form:"title" json:"title" binding:"required" example:"Course page"`
	URL   string `form:"url" json:"url" binding:"required" example:"https://example.org/course"`
}

// CreateActivityRequest represents the request to create an activity
type CreateActivityRequest struct {
	Title       string `form:"title" json:"title" binding:"required" example:"Assignment 2"`
	Description string `form:"description" json:"description" example:"Exercises 1 through 10"`
	DueDate     string `form:"due_date" json:"due_date" example:"2025-06-15"`
}

// GradeActivityRequest represents the request to record an activity's grade
type GradeActivityRequest struct {
	Grade    string `form:"grade" json:"grade" example:"8.5"`
	Comments string `form:"comments" json:"comments" example:"Good work, missing exercise 7"`
}

// CreateEventRequest represents the request to create an event
type CreateEventRequest struct {
	Title       string `form:"title" json:"title" binding:"required" example:"Final exam"`
	Description string `form:"description" json:"description" example:"Room B-12"`
	Start       string `form:"start" json:"start" binding:"required" example:"2025-06-20T09:00"`
	End         string `form:"end" json:"end" binding:"required" example:"2025-06-20T11:00"`
}
