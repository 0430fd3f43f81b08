package modules

import (
	docstate "github.com/goliatone/go-docstate"
)

// ChecklistItem is one launch-checklist task.
type ChecklistItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Completed   bool   `json:"completed"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Checklist is the checklist document: a bare ordered list, persisted as a
// top-level JSON array.
type Checklist = []ChecklistItem

// DefaultChecklist returns an empty checklist.
func DefaultChecklist() Checklist {
	return Checklist{}
}

// ChecklistSchema requires id and title on every item.
func ChecklistSchema() docstate.Schema[Checklist] {
	return docstate.NewSliceSchema[ChecklistItem]("id", "title")
}
