package grant

import (
	"file-share-api/internal/domain/access"
	domain "file-share-api/internal/domain/grant"
)

func fromDBModel(model *Grant) *domain.Grant {
	var g = &domain.Grant{
		ID:           model.ID,
		FileID:       model.FileID,
		Kind:         domain.Kind(model.Kind),
		TargetUserID: model.TargetUserID,
		Token:        model.Token,
		Role:         access.Role(model.Role),
		ExpiresAt:    model.ExpiresAt,
		CreatedBy:    model.CreatedBy,
		CreatedAt:    model.CreatedAt,
	}

	return g
}

func fromDBModels(models *Grants) domain.Grants {
	gs := make(domain.Grants, len(*models))
	for idx, g := range *models {
		gs[idx] = fromDBModel(g)
	}

	return gs
}
