package grant

const (
	// unique indexes from migrations/000001_init.up.sql
	ConstraintDirectFileUser = "grants_direct_file_user_uq"
	ConstraintToken          = "grants_token_uq"

	grantColumns = `id, file_id, kind, target_user_id, token, role, expires_at, created_by, created_at`

	PurgeExpiredDirect = `
		DELETE FROM grants
		WHERE file_id = $1 AND target_user_id = $2 AND kind = 'direct_user'
		  AND expires_at IS NOT NULL AND expires_at <= $3
	`
	InsertGrant = `
		INSERT INTO grants (id, file_id, kind, target_user_id, token, role, expires_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + grantColumns
	SelectGrantByID = `
		SELECT ` + grantColumns + `
		FROM grants
		WHERE id = $1
	`
	SelectActiveDirect = `
		SELECT ` + grantColumns + `
		FROM grants
		WHERE file_id = $1 AND target_user_id = $2 AND kind = 'direct_user'
		  AND (expires_at IS NULL OR expires_at > $3)
	`
	SelectLinkByToken = `
		SELECT ` + grantColumns + `
		FROM grants
		WHERE token = $1 AND kind = 'link'
	`
	SelectFileGrants = `
		SELECT ` + grantColumns + `
		FROM grants
		WHERE file_id = $1
		ORDER BY created_at, id
	`
	DeleteGrantByID = `DELETE FROM grants WHERE id = $1`
)
