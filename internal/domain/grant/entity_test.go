package grant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGrant_ActiveAt(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	assert.True(t, (&Grant{}).ActiveAt(now))
	assert.True(t, (&Grant{ExpiresAt: &future}).ActiveAt(now))
	assert.False(t, (&Grant{ExpiresAt: &now}).ActiveAt(now))
	assert.False(t, (&Grant{ExpiresAt: &past}).ActiveAt(now))
}
