package audit

import (
	"time"

	"github.com/google/uuid"
)

type (
	Entry struct {
		Seq       int64
		ID        uuid.UUID
		FileID    uuid.UUID
		ActorID   uuid.UUID
		Action    string
		Metadata  string
		CreatedAt time.Time
	}
	Entries []*Entry
)
