package audit

import (
	"file-share-api/internal/domain/audit"
)

func ToResponseEntries(es audit.Entries) Entries {
	out := make(Entries, len(es))
	for idx, e := range es {
		out[idx] = Entry{
			ID:        e.ID,
			FileID:    e.FileID,
			ActorID:   e.ActorID,
			Action:    string(e.Action),
			Metadata:  e.Metadata,
			CreatedAt: e.CreatedAt,
		}
	}

	return out
}
