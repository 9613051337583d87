package file

import (
	domain "file-share-api/internal/domain/file"
)

func fromDBModel(model *File) *domain.File {
	var f = &domain.File{
		ID:      model.ID,
		OwnerID: model.OwnerID,

		FileName:    model.FileName,
		ContentType: model.ContentType,
		SizeBytes:   uint64(model.SizeBytes),
		Bucket:      model.Bucket,
		StorageKey:  model.StorageKey,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return f
}

func fromDBModels(models *Files) domain.Files {
	fs := make(domain.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
