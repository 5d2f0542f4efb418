package store

import (
	"context"
	"time"
)

const getSetting = `
SELECT id, secret, updated_at FROM settings ORDER BY id LIMIT 1
`

// GetSetting returns the authoritative admin secret record (lowest id).
// Returns sql.ErrNoRows if no record has been seeded.
func (q *Queries) GetSetting(ctx context.Context) (Setting, error) {
	row := q.db.QueryRowContext(ctx, getSetting)
	var s Setting
	err := row.Scan(&s.ID, &s.Secret, &s.UpdatedAt)
	return s, err
}

const createSetting = `
INSERT INTO settings (secret, updated_at) VALUES (?, ?)
RETURNING id, secret, updated_at
`

// CreateSettingParams holds the parameters for CreateSetting.
type CreateSettingParams struct {
	Secret    string
	UpdatedAt time.Time
}

// CreateSetting inserts the admin secret record. Used only by seeding.
func (q *Queries) CreateSetting(ctx context.Context, arg CreateSettingParams) (Setting, error) {
	row := q.db.QueryRowContext(ctx, createSetting, arg.Secret, arg.UpdatedAt)
	var s Setting
	err := row.Scan(&s.ID, &s.Secret, &s.UpdatedAt)
	return s, err
}

const rotateSetting = `
UPDATE settings SET secret = ?, updated_at = ? WHERE id = ? AND secret = ?
`

// RotateSettingParams holds the parameters for RotateSetting.
type RotateSettingParams struct {
	Secret    string
	UpdatedAt time.Time
	ID        int64
	OldSecret string
}

// RotateSetting replaces the stored hash, guarded by a compare-and-swap on
// the previous hash so a racing rotation cannot silently clobber the write.
// Returns the number of rows updated (0 means the guard failed).
func (q *Queries) RotateSetting(ctx context.Context, arg RotateSettingParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, rotateSetting, arg.Secret, arg.UpdatedAt, arg.ID, arg.OldSecret)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
