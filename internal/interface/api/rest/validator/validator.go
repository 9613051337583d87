package validator

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"file-share-api/internal/interface/api/rest/dto/grant"
)

// base64url of 32 random bytes
const linkTokenLen = 43

var ErrInvalidPage = errors.New("page must be a positive integer")

func ValidatePage(page string) (int, error) {
	if page == "" {
		return 1, nil
	}

	p, err := strconv.Atoi(page)
	if err != nil || p < 1 {
		return 0, ErrInvalidPage
	}

	return p, nil
}

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil && id != uuid.Nil, id
}

// IsLinkToken rejects anything that cannot have come from a link grant
// before it reaches the database.
func IsLinkToken(s string) bool {
	if len(s) != linkTokenLen {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func ValidateGrantRequest(r grant.Request) map[string]string {
	errs := make(map[string]string)

	userID := strings.TrimSpace(r.UserID)
	role := strings.ToLower(strings.TrimSpace(r.Role))

	if userID == "" {
		errs["user_id"] = "user_id is required"
	} else if ok, _ := IsUUID(userID); !ok {
		errs["user_id"] = "user_id must be a valid UUID"
	}

	if role == "" {
		errs["role"] = "role is required"
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}
