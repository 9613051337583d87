package audit

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domain "file-share-api/internal/domain/audit"
	"file-share-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func scanEntry(row pgx.Row) (*Entry, error) {
	e := new(Entry)
	err := row.Scan(
		&e.Seq,
		&e.ID,
		&e.FileID,
		&e.ActorID,
		&e.Action,
		&e.Metadata,
		&e.CreatedAt,
	)

	return e, err
}

func (r *Repository) AppendEntry(ctx context.Context, req *domain.Entry) (*domain.Entry, error) {
	e, err := scanEntry(r.db.QueryRow(
		ctx,
		InsertEntry,
		req.ID, req.FileID, req.ActorID, string(req.Action), req.Metadata, req.CreatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFileGone
		}
		return nil, err
	}

	return fromDBModel(e), nil
}

func (r *Repository) FetchFileEntries(ctx context.Context, fileID uuid.UUID, page int) (domain.Entries, error) {
	return r.fetchMany(ctx, SelectFileEntries, fileID, page)
}

func (r *Repository) FetchActorEntries(ctx context.Context, actorID uuid.UUID, page int) (domain.Entries, error) {
	return r.fetchMany(ctx, SelectActorEntries, actorID, page)
}

func (r *Repository) fetchMany(ctx context.Context, query string, key uuid.UUID, page int) (domain.Entries, error) {
	rows, err := r.db.Query(ctx, query, key, postgres.PageSize, postgres.Offset(page))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var es Entries
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		es = append(es, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&es), nil
}
