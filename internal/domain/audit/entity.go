package audit

import (
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionUpload   Action = "upload"
	ActionDownload Action = "download"
	ActionShare    Action = "share"
	ActionUnshare  Action = "unshare"
	ActionDelete   Action = "delete"
)

type (
	Entry struct {
		ID        uuid.UUID
		FileID    uuid.UUID
		ActorID   uuid.UUID
		Action    Action
		Metadata  string
		CreatedAt time.Time
	}
	Entries []*Entry
)
