package models

// Subject represents a course aggregating notes, resources, activities and events
type Subject struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
