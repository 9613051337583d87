package file

import (
	"time"

	"github.com/google/uuid"

	"file-share-api/internal/domain/access"
)

type (
	File struct {
		ID      uuid.UUID
		OwnerID uuid.UUID

		FileName    string
		ContentType string
		SizeBytes   uint64
		Bucket      string
		StorageKey  string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Files []*File
)

// Download is a resolved, time limited way to fetch a file's bytes.
type Download struct {
	File *File
	Role access.Role
	URL  string
}
