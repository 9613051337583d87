package file

import (
	"file-share-api/internal/domain/file"
)

func ToResponseFile(f file.File) File {
	return File{
		ID:          f.ID,
		OwnerID:     f.OwnerID,
		FileName:    f.FileName,
		ContentType: f.ContentType,
		SizeBytes:   f.SizeBytes,
		CreatedAt:   f.CreatedAt,
	}
}

func ToResponseFiles(fs file.Files) Files {
	out := make(Files, len(fs))
	for idx, f := range fs {
		out[idx] = ToResponseFile(*f)
	}

	return out
}

func ToResponseDownload(d file.Download) Download {
	return Download{
		File:        ToResponseFile(*d.File),
		Role:        d.Role.String(),
		DownloadURL: d.URL,
	}
}
