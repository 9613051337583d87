package access

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrNotOwner           = errors.New("not the owner")
	ErrDenied             = errors.New("access denied")
	ErrLinkExpired        = errors.New("link expired")
	ErrDuplicateGrant     = errors.New("grant already exists")
	ErrSelfGrant          = errors.New("cannot share a file with its owner")
	ErrInvalidRole        = errors.New("role must be viewer or editor")
	ErrInvalidExpiry      = errors.New("expires_at must be in the future")
	ErrIntegrityViolation = errors.New("integrity violation")
	ErrStorageFailure     = errors.New("storage failure")
)
