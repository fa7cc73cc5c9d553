package model

// Audit actions. The set is open; new mutation kinds add a constant here.
const (
	ActionCreatorAdded   = "CREATOR_ADDED"
	ActionCreatorUpdated = "CREATOR_UPDATED"
	ActionCreatorDeleted = "CREATOR_DELETED"
	ActionCreatorSynced  = "CREATOR_SYNCED"
)

// AuditLogEntry records one creator mutation.
type AuditLogEntry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	User      string `json:"user"`
}
