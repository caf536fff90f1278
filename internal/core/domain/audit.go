package domain

import "time"

// Audit action tags. The audit log is append-only; events are never mutated or
// deleted.
const (
	AuditActionLogin             = "login"
	AuditActionCreateShareholder = "create_shareholder"
	AuditActionIssueShares       = "issue_shares"
)

// AuditEvent is an immutable record of a sensitive action.
type AuditEvent struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	UserID    int64     `json:"user_id"`
	Details   string    `json:"details,omitempty"`
}
