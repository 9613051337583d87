package file

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the file registry. Fetch methods return (nil, nil) when the file is absent.
type Repository interface {
	FetchFile(ctx context.Context, id uuid.UUID) (*File, error)
	FetchOwner(ctx context.Context, id uuid.UUID) (*uuid.UUID, error)
	FileExists(ctx context.Context, id uuid.UUID) (bool, error)
	FetchOwnerFiles(ctx context.Context, ownerID uuid.UUID, page int) (Files, error)
	CreateFile(ctx context.Context, req *File) (*File, error)
	// DeleteFile removes the file together with its grants and audit entries
	// in one transaction. It reports false when the file did not exist.
	DeleteFile(ctx context.Context, id uuid.UUID) (bool, error)
}
