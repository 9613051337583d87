package grant

import (
	"time"

	"github.com/google/uuid"
)

type (
	Grant struct {
		ID           uuid.UUID  `json:"id"`
		FileID       uuid.UUID  `json:"file_id"`
		Kind         string     `json:"kind"`
		TargetUserID *uuid.UUID `json:"user_id,omitempty"`
		Token        string     `json:"token,omitempty"`
		Role         string     `json:"role"`
		ExpiresAt    *time.Time `json:"expires_at,omitempty"`
		CreatedAt    time.Time  `json:"created_at"`
	}
	Grants []Grant
	Link   struct {
		Grant
		URL string `json:"url"`
	}
	ResponseData struct {
		Data Grants `json:"data"`
	}
)
