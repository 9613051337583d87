package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID          uuid.UUID `json:"id"`
		OwnerID     uuid.UUID `json:"owner_id"`
		FileName    string    `json:"file_name"`
		ContentType string    `json:"content_type"`
		SizeBytes   uint64    `json:"size_bytes"`
		CreatedAt   time.Time `json:"created_at"`
	}
	Files    []File
	Download struct {
		File
		Role        string `json:"role"`
		DownloadURL string `json:"download_url"`
	}
	ResponseData struct {
		Data Files `json:"data"`
	}
)
