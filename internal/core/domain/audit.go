package domain

import "time"

// AuditAction identifies what an audit event records.
type AuditAction string

const (
	AuditLoginSuccess     AuditAction = "login_success"
	AuditLoginFailure     AuditAction = "login_failure"
	AuditSignup           AuditAction = "signup"
	AuditTokenRejected    AuditAction = "token_rejected"
	AuditPermissionDenied AuditAction = "permission_denied"
)

// AuditEvent is an append-only record of an authentication or authorization
// decision. Events are persisted off the request path by the audit dispatcher;
// per-username ordering is preserved by the dispatcher's sharding.
type AuditEvent struct {
	Username  string      `json:"username"`
	Action    AuditAction `json:"action"`
	Detail    string      `json:"detail,omitempty"`
	Path      string      `json:"path,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
