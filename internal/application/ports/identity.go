package ports

import (
	"file-share-api/internal/domain/principal"
)

// IdentityProvider authenticates request credentials. The service never issues them.
type IdentityProvider interface {
	Authenticate(credentials string) (*principal.Principal, error)
}
