package entity

type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeRemoved  ChangeType = "removed"
)

// ChangeEvent - is what the store publishes after every write.
type ChangeEvent struct {
	Type    ChangeType `json:"type"`
	Session *Session   `json:"session"`
}
