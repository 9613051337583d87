package audit

import (
	"time"

	"github.com/google/uuid"
)

type (
	Entry struct {
		ID        uuid.UUID `json:"id"`
		FileID    uuid.UUID `json:"file_id"`
		ActorID   uuid.UUID `json:"actor_id"`
		Action    string    `json:"action"`
		Metadata  string    `json:"metadata,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}
	Entries      []Entry
	ResponseData struct {
		Data Entries `json:"data"`
	}
)
