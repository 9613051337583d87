package grant

import (
	"time"

	"github.com/google/uuid"
)

type (
	Grant struct {
		ID           uuid.UUID
		FileID       uuid.UUID
		Kind         string
		TargetUserID *uuid.UUID
		Token        *string
		Role         string
		ExpiresAt    *time.Time
		CreatedBy    uuid.UUID
		CreatedAt    time.Time
	}
	Grants []*Grant
)
