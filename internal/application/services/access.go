package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	"file-share-api/internal/domain/access"
	"file-share-api/internal/domain/file"
	"file-share-api/internal/domain/grant"
)

const (
	// 256 bits, comfortably above the 128 bit floor for link tokens.
	linkTokenBytes    = 32
	linkTokenAttempts = 3
)

type AccessService struct {
	fileRepository  file.Repository
	grantRepository grant.Repository
	logger          *zap.Logger
	mDecisions      *prometheus.CounterVec
	now             func() time.Time
	newToken        func() (string, error)
}

func NewAccessService(
	fileRepository file.Repository,
	grantRepository grant.Repository,
	logger *zap.Logger,
	mDecisions *prometheus.CounterVec,
) ports.AccessResolver {
	return &AccessService{
		fileRepository:  fileRepository,
		grantRepository: grantRepository,
		logger:          logger,
		mDecisions:      mDecisions,
		now:             time.Now,
		newToken:        newLinkToken,
	}
}

func newLinkToken() (string, error) {
	b := make([]byte, linkTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", access.ErrStorageFailure, op, err)
}

func (as *AccessService) observe(path string, d access.Decision) access.Decision {
	if as.mDecisions != nil {
		as.mDecisions.WithLabelValues(path, d.Outcome.String()).Inc()
	}
	return d
}

func (as *AccessService) ResolveByUser(ctx context.Context, userID, fileID uuid.UUID) (access.Decision, error) {
	owner, err := as.fileRepository.FetchOwner(ctx, fileID)
	if err != nil {
		return access.Decision{}, storageErr("fetch owner", err)
	}
	if owner == nil {
		return as.observe("user", access.NotFound()), nil
	}
	if *owner == userID {
		return as.observe("user", access.Allowed(fileID, access.RoleOwner, nil)), nil
	}

	now := as.now()
	gs, err := as.grantRepository.FetchActiveDirectGrants(ctx, fileID, userID, now)
	if err != nil {
		return access.Decision{}, storageErr("fetch direct grants", err)
	}

	var active grant.Grants
	for _, g := range gs {
		if g.Kind == grant.KindDirectUser && g.ActiveAt(now) {
			active = append(active, g)
		}
	}

	switch len(active) {
	case 0:
		return as.observe("user", access.Denied(access.ReasonNoGrant)), nil
	case 1:
		g := active[0]
		if !g.Role.Grantable() {
			as.logger.Error("grant carries a non grantable role",
				zap.Stringer("grant_id", g.ID),
				zap.Stringer("file_id", fileID),
				zap.String("role", g.Role.String()),
			)
			return as.observe("user", access.Denied(access.ReasonIntegrity)), nil
		}
		return as.observe("user", access.Allowed(fileID, g.Role, &g.ID)), nil
	default:
		ids := make([]string, len(active))
		for i, g := range active {
			ids[i] = g.ID.String()
		}
		as.logger.Error("multiple active direct grants for one user",
			zap.Stringer("file_id", fileID),
			zap.Stringer("user_id", userID),
			zap.Strings("grant_ids", ids),
		)
		return as.observe("user", access.Denied(access.ReasonIntegrity)), nil
	}
}

func (as *AccessService) ResolveByToken(ctx context.Context, token string) (access.Decision, error) {
	if token == "" {
		return as.observe("token", access.NotFound()), nil
	}

	g, err := as.grantRepository.FetchLinkGrant(ctx, token)
	if err != nil {
		return access.Decision{}, storageErr("fetch link grant", err)
	}
	if g == nil || g.Kind != grant.KindLink || g.Token == nil || *g.Token != token {
		return as.observe("token", access.NotFound()), nil
	}
	if !g.ActiveAt(as.now()) {
		return as.observe("token", access.Denied(access.ReasonExpired)), nil
	}

	exists, err := as.fileRepository.FileExists(ctx, g.FileID)
	if err != nil {
		return access.Decision{}, storageErr("file exists", err)
	}
	if !exists {
		return as.observe("token", access.NotFound()), nil
	}

	return as.observe("token", access.Allowed(g.FileID, g.Role, &g.ID)), nil
}

// RequireOwner succeeds only for the owner of fileID. A caller who cannot
// see the file gets ErrNotFound, a grantee gets ErrNotOwner.
func (as *AccessService) RequireOwner(ctx context.Context, fileID, userID uuid.UUID) error {
	d, err := as.ResolveByUser(ctx, userID, fileID)
	if err != nil {
		return err
	}

	switch d.Outcome {
	case access.OutcomeAllowed:
		if d.Role != access.RoleOwner {
			return access.ErrNotOwner
		}
		return nil
	case access.OutcomeDenied, access.OutcomeNotFound:
		return access.ErrNotFound
	}
	return access.ErrNotFound
}

func (as *AccessService) validExpiry(expiresAt *time.Time) error {
	if expiresAt != nil && !expiresAt.After(as.now()) {
		return access.ErrInvalidExpiry
	}
	return nil
}

func (as *AccessService) ListGrants(ctx context.Context, fileID, requesterID uuid.UUID) (grant.Grants, error) {
	owner, err := as.fileRepository.FetchOwner(ctx, fileID)
	if err != nil {
		return nil, storageErr("fetch owner", err)
	}
	if owner == nil {
		return nil, access.ErrNotFound
	}
	if *owner != requesterID {
		return nil, access.ErrDenied
	}

	gs, err := as.grantRepository.FetchFileGrants(ctx, fileID)
	if err != nil {
		return nil, storageErr("fetch file grants", err)
	}

	return gs, nil
}

func (as *AccessService) CreateDirectGrant(
	ctx context.Context,
	fileID, ownerID, targetUserID uuid.UUID,
	role access.Role,
	expiresAt *time.Time,
) (*grant.Grant, error) {
	if err := as.RequireOwner(ctx, fileID, ownerID); err != nil {
		return nil, err
	}
	if targetUserID == ownerID {
		return nil, access.ErrSelfGrant
	}
	if !role.Grantable() {
		return nil, access.ErrInvalidRole
	}
	if err := as.validExpiry(expiresAt); err != nil {
		return nil, err
	}

	now := as.now()
	req := &grant.Grant{
		ID:           uuid.New(),
		FileID:       fileID,
		Kind:         grant.KindDirectUser,
		TargetUserID: &targetUserID,
		Role:         role,
		ExpiresAt:    expiresAt,
		CreatedBy:    ownerID,
		CreatedAt:    now,
	}

	g, err := as.grantRepository.CreateDirectGrant(ctx, req, now)
	if err != nil {
		if errors.Is(err, grant.ErrDuplicate) {
			return nil, access.ErrDuplicateGrant
		}
		return nil, storageErr("create direct grant", err)
	}

	return g, nil
}

func (as *AccessService) CreateLinkGrant(
	ctx context.Context,
	fileID, ownerID uuid.UUID,
	expiresAt *time.Time,
) (*grant.Grant, error) {
	if err := as.RequireOwner(ctx, fileID, ownerID); err != nil {
		return nil, err
	}
	if err := as.validExpiry(expiresAt); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		token, err := as.newToken()
		if err != nil {
			return nil, fmt.Errorf("generate link token: %w", err)
		}

		req := &grant.Grant{
			ID:        uuid.New(),
			FileID:    fileID,
			Kind:      grant.KindLink,
			Token:     &token,
			Role:      access.RoleViewer,
			ExpiresAt: expiresAt,
			CreatedBy: ownerID,
			CreatedAt: as.now(),
		}

		g, err := as.grantRepository.CreateLinkGrant(ctx, req)
		if err == nil {
			return g, nil
		}
		if !errors.Is(err, grant.ErrTokenTaken) {
			return nil, storageErr("create link grant", err)
		}
		if attempt == linkTokenAttempts {
			as.logger.Error("link token collided repeatedly", zap.Stringer("file_id", fileID), zap.Int("attempts", attempt))
			return nil, access.ErrIntegrityViolation
		}
	}
}

func (as *AccessService) RevokeGrant(ctx context.Context, grantID, requesterID uuid.UUID) (*grant.Grant, error) {
	g, err := as.grantRepository.FetchGrant(ctx, grantID)
	if err != nil {
		return nil, storageErr("fetch grant", err)
	}
	if g == nil {
		return nil, access.ErrNotFound
	}
	if err = as.RequireOwner(ctx, g.FileID, requesterID); err != nil {
		return nil, err
	}

	deleted, err := as.grantRepository.DeleteGrant(ctx, grantID)
	if err != nil {
		return nil, storageErr("delete grant", err)
	}
	if !deleted {
		// revoked concurrently
		return nil, access.ErrNotFound
	}

	return g, nil
}
