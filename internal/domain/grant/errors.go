package grant

import "errors"

var (
	ErrDuplicate  = errors.New("direct grant already exists for this file and user")
	ErrTokenTaken = errors.New("link token already issued")
)
