package file

const (
	SelectFileByID = `
		SELECT id, owner_id, file_name, content_type, size_bytes, bucket, storage_key, created_at, updated_at
		FROM files
		WHERE id = $1
	`
	SelectOwnerByFileID = `SELECT owner_id FROM files WHERE id = $1`
	SelectFileExists    = `SELECT EXISTS (SELECT 1 FROM files WHERE id = $1)`
	SelectOwnerFiles    = `
		SELECT id, owner_id, file_name, content_type, size_bytes, bucket, storage_key, created_at, updated_at
		FROM files
		WHERE owner_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`
	InsertFile = `
		INSERT INTO files (id, owner_id, file_name, content_type, size_bytes, bucket, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING
		  id, owner_id, file_name, content_type, size_bytes, bucket, storage_key, created_at, updated_at
	`
	DeleteFileGrants  = `DELETE FROM grants WHERE file_id = $1`
	DeleteFileEntries = `DELETE FROM audit_entries WHERE file_id = $1`
	DeleteFileByID    = `DELETE FROM files WHERE id = $1`
)
