package grant

import "time"

type (
	Request struct {
		UserID    string     `json:"user_id"`
		Role      string     `json:"role"`
		ExpiresAt *time.Time `json:"expires_at,omitempty"`
	}
	LinkRequest struct {
		ExpiresAt *time.Time `json:"expires_at,omitempty"`
	}
)
