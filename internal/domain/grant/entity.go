package grant

import (
	"time"

	"github.com/google/uuid"

	"file-share-api/internal/domain/access"
)

type Kind string

const (
	KindDirectUser Kind = "direct_user"
	KindLink       Kind = "link"
)

type (
	Grant struct {
		ID           uuid.UUID
		FileID       uuid.UUID
		Kind         Kind
		TargetUserID *uuid.UUID
		Token        *string
		Role         access.Role
		ExpiresAt    *time.Time
		CreatedBy    uuid.UUID
		CreatedAt    time.Time
	}
	Grants []*Grant
)

// ActiveAt reports whether the grant still confers access at t.
// A grant expiring exactly at t is already inert.
func (g *Grant) ActiveAt(t time.Time) bool {
	return g.ExpiresAt == nil || g.ExpiresAt.After(t)
}
