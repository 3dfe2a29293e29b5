package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/memoboard/memo-api/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository persists authentication/authorization audit events.
// Inserts only; the collection is append-only.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	Username  string `bson:"username,omitempty"`
	Action    string `bson:"action"`
	Detail    string `bson:"detail,omitempty"`
	Path      string `bson:"path,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *AuditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	doc := mongoAuditEvent{
		Username:  event.Username,
		Action:    string(event.Action),
		Detail:    event.Detail,
		Path:      event.Path,
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
