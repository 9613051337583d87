package grant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domain "file-share-api/internal/domain/grant"
	"file-share-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func scanGrant(row pgx.Row) (*Grant, error) {
	g := new(Grant)
	err := row.Scan(
		&g.ID,
		&g.FileID,
		&g.Kind,
		&g.TargetUserID,
		&g.Token,
		&g.Role,
		&g.ExpiresAt,
		&g.CreatedBy,
		&g.CreatedAt,
	)

	return g, err
}

func insertArgs(req *domain.Grant) []any {
	return []any{
		req.ID, req.FileID, string(req.Kind), req.TargetUserID, req.Token,
		string(req.Role), req.ExpiresAt, req.CreatedBy, req.CreatedAt,
	}
}

func (r *Repository) CreateDirectGrant(ctx context.Context, req *domain.Grant, now time.Time) (*domain.Grant, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}

	// an expired grant would otherwise hold the unique slot for this (file, user)
	if _, err = tx.Exec(ctx, PurgeExpiredDirect, req.FileID, req.TargetUserID, now); err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}

	g, err := scanGrant(tx.QueryRow(ctx, InsertGrant, insertArgs(req)...))
	if err != nil {
		_ = tx.Rollback(ctx)
		if postgres.IsPgUniqueViolation(err, ConstraintDirectFileUser) {
			return nil, domain.ErrDuplicate
		}
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		if postgres.IsPgUniqueViolation(err, ConstraintDirectFileUser) {
			return nil, domain.ErrDuplicate
		}
		return nil, err
	}

	return fromDBModel(g), nil
}

func (r *Repository) CreateLinkGrant(ctx context.Context, req *domain.Grant) (*domain.Grant, error) {
	g, err := scanGrant(r.db.QueryRow(ctx, InsertGrant, insertArgs(req)...))
	if err != nil {
		if postgres.IsPgUniqueViolation(err, ConstraintToken) {
			return nil, domain.ErrTokenTaken
		}
		return nil, err
	}

	return fromDBModel(g), nil
}

func (r *Repository) FetchGrant(ctx context.Context, id uuid.UUID) (*domain.Grant, error) {
	return r.fetchOne(ctx, SelectGrantByID, id)
}

func (r *Repository) FetchLinkGrant(ctx context.Context, token string) (*domain.Grant, error) {
	return r.fetchOne(ctx, SelectLinkByToken, token)
}

func (r *Repository) fetchOne(ctx context.Context, query string, args ...any) (*domain.Grant, error) {
	g, err := scanGrant(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(g), nil
}

func (r *Repository) FetchActiveDirectGrants(ctx context.Context, fileID, userID uuid.UUID, now time.Time) (domain.Grants, error) {
	return r.fetchMany(ctx, SelectActiveDirect, fileID, userID, now)
}

func (r *Repository) FetchFileGrants(ctx context.Context, fileID uuid.UUID) (domain.Grants, error) {
	return r.fetchMany(ctx, SelectFileGrants, fileID)
}

func (r *Repository) fetchMany(ctx context.Context, query string, args ...any) (domain.Grants, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gs Grants
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		gs = append(gs, g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&gs), nil
}

func (r *Repository) DeleteGrant(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, DeleteGrantByID, id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
