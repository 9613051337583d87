package ports

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"file-share-api/internal/domain/file"
)

type FileService interface {
	Upload(ctx context.Context, ownerID uuid.UUID, in *multipart.FileHeader) (*file.File, error)
	List(ctx context.Context, ownerID uuid.UUID, page int) (file.Files, error)
	Download(ctx context.Context, userID, fileID uuid.UUID) (*file.Download, error)
	Redeem(ctx context.Context, userID uuid.UUID, token string) (*file.Download, error)
	Delete(ctx context.Context, userID, fileID uuid.UUID) error
}
