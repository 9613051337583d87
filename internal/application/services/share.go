package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"file-share-api/internal/application/ports"
	"file-share-api/internal/domain/access"
	"file-share-api/internal/domain/audit"
	"file-share-api/internal/domain/grant"
)

// ShareService pairs every grant mutation with its audit entry.
type ShareService struct {
	resolver ports.AccessResolver
	auditLog ports.AuditLog
}

func NewShareService(resolver ports.AccessResolver, auditLog ports.AuditLog) ports.ShareService {
	return &ShareService{
		resolver: resolver,
		auditLog: auditLog,
	}
}

func (ss *ShareService) ListGrants(ctx context.Context, fileID, requesterID uuid.UUID) (grant.Grants, error) {
	return ss.resolver.ListGrants(ctx, fileID, requesterID)
}

func (ss *ShareService) ShareWithUser(
	ctx context.Context,
	fileID, ownerID, targetUserID uuid.UUID,
	role access.Role,
	expiresAt *time.Time,
) (*grant.Grant, error) {
	g, err := ss.resolver.CreateDirectGrant(ctx, fileID, ownerID, targetUserID, role, expiresAt)
	if err != nil {
		return nil, err
	}

	ss.auditLog.Record(ctx, audit.Entry{
		FileID:   fileID,
		ActorID:  ownerID,
		Action:   audit.ActionShare,
		Metadata: grantMetadata(g),
	})

	return g, nil
}

func (ss *ShareService) ShareLink(
	ctx context.Context,
	fileID, ownerID uuid.UUID,
	expiresAt *time.Time,
) (*grant.Grant, error) {
	g, err := ss.resolver.CreateLinkGrant(ctx, fileID, ownerID, expiresAt)
	if err != nil {
		return nil, err
	}

	ss.auditLog.Record(ctx, audit.Entry{
		FileID:   fileID,
		ActorID:  ownerID,
		Action:   audit.ActionShare,
		Metadata: grantMetadata(g),
	})

	return g, nil
}

func (ss *ShareService) Unshare(ctx context.Context, grantID, requesterID uuid.UUID) error {
	g, err := ss.resolver.RevokeGrant(ctx, grantID, requesterID)
	if err != nil {
		return err
	}

	ss.auditLog.Record(ctx, audit.Entry{
		FileID:   g.FileID,
		ActorID:  requesterID,
		Action:   audit.ActionUnshare,
		Metadata: grantMetadata(g),
	})

	return nil
}

// grantMetadata never includes the link token, audit readers must not be able to redeem it.
func grantMetadata(g *grant.Grant) string {
	var s string
	switch g.Kind {
	case grant.KindDirectUser:
		s = fmt.Sprintf("grant=%s user=%s role=%s", g.ID, g.TargetUserID, g.Role)
	default:
		s = fmt.Sprintf("grant=%s link role=%s", g.ID, g.Role)
	}
	if g.ExpiresAt != nil {
		s += " expires=" + g.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return s
}
