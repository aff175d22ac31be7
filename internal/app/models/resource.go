package models

// Resource categories. The column is an open string, these are the ones the
// client currently uses.
const (
	ResourceTypeNotes     = "apuntes"
	ResourceTypeExercises = "ejercicios"
	ResourceTypeExams     = "examenes"
	ResourceTypeLinks     = "enlaces"
)

// Resource is a stored file or link categorized under a subject.
// For links, PathOrURL holds a raw URL; otherwise it is a Drive file ID.
type Resource struct {
	ID        int64  `json:"id"`
	SubjectID int64  `json:"subject_id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	PathOrURL string `json:"path_or_url"`
}

// IsLink reports whether the resource points at an external URL rather than a
// Drive file.
func (r *Resource) IsLink() bool {
	return r.Type == ResourceTypeLinks
}
