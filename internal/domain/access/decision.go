package access

import (
	"github.com/google/uuid"
)

type Outcome uint8

const (
	OutcomeNotFound Outcome = iota
	OutcomeDenied
	OutcomeAllowed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAllowed:
		return "allowed"
	case OutcomeDenied:
		return "denied"
	case OutcomeNotFound:
		return "not_found"
	}
	return "unknown"
}

type DenyReason string

const (
	ReasonNone      DenyReason = ""
	ReasonNoGrant   DenyReason = "no_grant"
	ReasonExpired   DenyReason = "expired"
	ReasonIntegrity DenyReason = "integrity_violation"
)

// Decision is the result of an access check. Role and FileID are only
// meaningful when Outcome is OutcomeAllowed, Reason only when it is OutcomeDenied.
type Decision struct {
	Outcome Outcome
	Role    Role
	FileID  uuid.UUID
	GrantID *uuid.UUID
	Reason  DenyReason
}

func Allowed(fileID uuid.UUID, role Role, grantID *uuid.UUID) Decision {
	return Decision{Outcome: OutcomeAllowed, Role: role, FileID: fileID, GrantID: grantID}
}

func Denied(reason DenyReason) Decision {
	return Decision{Outcome: OutcomeDenied, Reason: reason}
}

func NotFound() Decision {
	return Decision{Outcome: OutcomeNotFound}
}

// Err maps a non-allowing decision onto the error taxonomy. It returns nil for Allowed.
func (d Decision) Err() error {
	switch d.Outcome {
	case OutcomeAllowed:
		return nil
	case OutcomeDenied:
		switch d.Reason {
		case ReasonExpired:
			return ErrLinkExpired
		case ReasonIntegrity:
			return ErrIntegrityViolation
		default:
			return ErrDenied
		}
	case OutcomeNotFound:
		return ErrNotFound
	}
	return ErrDenied
}
