package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID      uuid.UUID
		OwnerID uuid.UUID

		FileName    string
		ContentType string
		SizeBytes   int64
		Bucket      string
		StorageKey  string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Files []*File
)
