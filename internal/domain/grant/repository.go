package grant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// CreateDirectGrant purges expired direct grants for the same (file, user)
	// and inserts req atomically. It returns ErrDuplicate when an active one exists.
	CreateDirectGrant(ctx context.Context, req *Grant, now time.Time) (*Grant, error)
	// CreateLinkGrant returns ErrTokenTaken when the token collides.
	CreateLinkGrant(ctx context.Context, req *Grant) (*Grant, error)
	FetchGrant(ctx context.Context, id uuid.UUID) (*Grant, error)
	FetchActiveDirectGrants(ctx context.Context, fileID, userID uuid.UUID, now time.Time) (Grants, error)
	FetchLinkGrant(ctx context.Context, token string) (*Grant, error)
	FetchFileGrants(ctx context.Context, fileID uuid.UUID) (Grants, error)
	DeleteGrant(ctx context.Context, id uuid.UUID) (bool, error)
}
