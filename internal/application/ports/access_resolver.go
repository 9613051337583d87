package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"file-share-api/internal/domain/access"
	"file-share-api/internal/domain/grant"
)

type AccessResolver interface {
	ResolveByUser(ctx context.Context, userID, fileID uuid.UUID) (access.Decision, error)
	ResolveByToken(ctx context.Context, token string) (access.Decision, error)
	RequireOwner(ctx context.Context, fileID, userID uuid.UUID) error
	ListGrants(ctx context.Context, fileID, requesterID uuid.UUID) (grant.Grants, error)
	CreateDirectGrant(
		ctx context.Context,
		fileID, ownerID, targetUserID uuid.UUID,
		role access.Role,
		expiresAt *time.Time,
	) (*grant.Grant, error)
	CreateLinkGrant(ctx context.Context, fileID, ownerID uuid.UUID, expiresAt *time.Time) (*grant.Grant, error)
	RevokeGrant(ctx context.Context, grantID, requesterID uuid.UUID) (*grant.Grant, error)
}
