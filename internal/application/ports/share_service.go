package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"file-share-api/internal/domain/access"
	"file-share-api/internal/domain/grant"
)

type ShareService interface {
	ListGrants(ctx context.Context, fileID, requesterID uuid.UUID) (grant.Grants, error)
	ShareWithUser(
		ctx context.Context,
		fileID, ownerID, targetUserID uuid.UUID,
		role access.Role,
		expiresAt *time.Time,
	) (*grant.Grant, error)
	ShareLink(ctx context.Context, fileID, ownerID uuid.UUID, expiresAt *time.Time) (*grant.Grant, error)
	Unshare(ctx context.Context, grantID, requesterID uuid.UUID) error
}
