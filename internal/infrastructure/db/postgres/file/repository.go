package file

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domain "file-share-api/internal/domain/file"
	"file-share-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func scanFile(row pgx.Row) (*File, error) {
	f := new(File)
	err := row.Scan(
		&f.ID,
		&f.OwnerID,

		&f.FileName,
		&f.ContentType,
		&f.SizeBytes,
		&f.Bucket,
		&f.StorageKey,

		&f.CreatedAt,
		&f.UpdatedAt,
	)

	return f, err
}

func (r *Repository) FetchFile(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	f, err := scanFile(r.db.QueryRow(ctx, SelectFileByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) FetchOwner(ctx context.Context, id uuid.UUID) (*uuid.UUID, error) {
	var owner uuid.UUID
	if err := r.db.QueryRow(ctx, SelectOwnerByFileID, id).Scan(&owner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &owner, nil
}

func (r *Repository) FileExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, SelectFileExists, id).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *Repository) FetchOwnerFiles(ctx context.Context, ownerID uuid.UUID, page int) (domain.Files, error) {
	rows, err := r.db.Query(ctx, SelectOwnerFiles, ownerID, postgres.PageSize, postgres.Offset(page))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

func (r *Repository) CreateFile(ctx context.Context, req *domain.File) (*domain.File, error) {
	f, err := scanFile(r.db.QueryRow(
		ctx,
		InsertFile,
		req.ID, req.OwnerID, req.FileName, req.ContentType, int64(req.SizeBytes), req.Bucket, req.StorageKey,
	))
	if err != nil {
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) DeleteFile(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}

	deleted, err := deleteCascade(ctx, tx, id)
	if err != nil || !deleted {
		_ = tx.Rollback(ctx)
		return false, err
	}
	if err = tx.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

func deleteCascade(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	if _, err := tx.Exec(ctx, DeleteFileGrants, id); err != nil {
		return false, err
	}
	if _, err := tx.Exec(ctx, DeleteFileEntries, id); err != nil {
		return false, err
	}
	tag, err := tx.Exec(ctx, DeleteFileByID, id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
