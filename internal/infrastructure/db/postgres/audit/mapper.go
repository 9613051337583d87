package audit

import (
	domain "file-share-api/internal/domain/audit"
)

func fromDBModel(model *Entry) *domain.Entry {
	var e = &domain.Entry{
		ID:        model.ID,
		FileID:    model.FileID,
		ActorID:   model.ActorID,
		Action:    domain.Action(model.Action),
		Metadata:  model.Metadata,
		CreatedAt: model.CreatedAt,
	}

	return e
}

func fromDBModels(models *Entries) domain.Entries {
	es := make(domain.Entries, len(*models))
	for idx, e := range *models {
		es[idx] = fromDBModel(e)
	}

	return es
}
