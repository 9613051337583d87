package audit

import (
	"context"

	"github.com/google/uuid"
)

// Repository is append-only. Entries are returned oldest first.
type Repository interface {
	AppendEntry(ctx context.Context, req *Entry) (*Entry, error)
	FetchFileEntries(ctx context.Context, fileID uuid.UUID, page int) (Entries, error)
	FetchActorEntries(ctx context.Context, actorID uuid.UUID, page int) (Entries, error)
}
