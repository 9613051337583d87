package principal

import "github.com/google/uuid"

// Principal is an authenticated identity as vouched for by the identity provider.
type Principal struct {
	ID    uuid.UUID
	Email string
	Name  string
}
