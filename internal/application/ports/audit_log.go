package ports

import (
	"context"

	"github.com/google/uuid"

	"file-share-api/internal/domain/audit"
)

type AuditLog interface {
	// Record appends e after the state change it describes has succeeded.
	// Failures are reported to operators, never to the caller.
	Record(ctx context.Context, e audit.Entry)
	FileHistory(ctx context.Context, fileID, requesterID uuid.UUID, page int) (audit.Entries, error)
	ActorHistory(ctx context.Context, actorID uuid.UUID, page int) (audit.Entries, error)
}
