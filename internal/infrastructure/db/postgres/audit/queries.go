package audit

const (
	entryColumns = `seq, id, file_id, actor_id, action, metadata, created_at`

	// FOR SHARE waits for a concurrent delete of the file to settle, so only
	// the delete entry itself can outlive the file row.
	InsertEntry = `
		INSERT INTO audit_entries (id, file_id, actor_id, action, metadata, created_at)
		SELECT $1::uuid, $2::uuid, $3::uuid, $4::text, $5::text, $6::timestamptz
		WHERE $4::text = 'delete'
		   OR EXISTS (SELECT 1 FROM files WHERE id = $2::uuid FOR SHARE)
		RETURNING ` + entryColumns
	SelectFileEntries = `
		SELECT ` + entryColumns + `
		FROM audit_entries
		WHERE file_id = $1
		ORDER BY seq
		LIMIT $2 OFFSET $3
	`
	SelectActorEntries = `
		SELECT ` + entryColumns + `
		FROM audit_entries
		WHERE actor_id = $1
		ORDER BY seq
		LIMIT $2 OFFSET $3
	`
)
