package grant

import (
	"strings"

	"file-share-api/internal/domain/grant"
)

func ToResponseGrant(g grant.Grant) Grant {
	out := Grant{
		ID:           g.ID,
		FileID:       g.FileID,
		Kind:         string(g.Kind),
		TargetUserID: g.TargetUserID,
		Role:         g.Role.String(),
		ExpiresAt:    g.ExpiresAt,
		CreatedAt:    g.CreatedAt,
	}
	if g.Token != nil {
		out.Token = *g.Token
	}

	return out
}

func ToResponseGrants(gs grant.Grants) Grants {
	out := make(Grants, len(gs))
	for idx, g := range gs {
		out[idx] = ToResponseGrant(*g)
	}

	return out
}

// ToResponseLink builds the shareable URL as linksURL/<token>.
func ToResponseLink(g grant.Grant, linksURL string) Link {
	out := Link{Grant: ToResponseGrant(g)}
	if g.Token != nil {
		out.URL = strings.TrimSuffix(linksURL, "/") + "/" + *g.Token
	}

	return out
}
