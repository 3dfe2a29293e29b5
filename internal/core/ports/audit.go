package ports

import (
	"context"

	"github.com/memoboard/memo-api/internal/core/domain"
)

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
}

// AuditService processes a single audit event (called from dispatcher workers).
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
}

// AuditSink is the non-blocking producer side used by the request path.
// Implementations must never block the caller.
type AuditSink interface {
	Record(event domain.AuditEvent)
}
