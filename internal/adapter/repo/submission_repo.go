package repo

import (
	"context"
	"fmt"

	"futureself/internal/domain"
	"futureself/internal/infra"
)

const qInsertSubmission = `
INSERT INTO submissions (id, name, mobile, goal, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id;
`

// The admin/test number is exempt from the uniqueness constraint: repeated
// submissions overwrite the previous record and refresh the timestamp.
const qUpsertSubmission = `
INSERT INTO submissions (id, name, mobile, goal, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (mobile) DO UPDATE
SET name = EXCLUDED.name,
    goal = EXCLUDED.goal,
    created_at = EXCLUDED.created_at
RETURNING id;
`

const qAttachBackup = `
UPDATE submissions
SET backup_url = $2,
    backup_file_id = $3
WHERE id = $1;
`

// SubmissionRepoPG implements domain.SubmissionRepository backed by PostgreSQL.
type SubmissionRepoPG struct {
	sql         infra.SQLExecutor
	adminNumber string
}

// NewSubmissionRepo creates a new SubmissionRepoPG. adminNumber may be empty,
// in which case every mobile is subject to the uniqueness constraint.
func NewSubmissionRepo(sql infra.SQLExecutor, adminNumber string) *SubmissionRepoPG {
	return &SubmissionRepoPG{sql: sql, adminNumber: adminNumber}
}

// Save inserts the submission. The configured admin number upserts instead of
// rejecting duplicates; for every other mobile a unique violation maps to
// domain.ErrDuplicateContact and the stored record is left unchanged.
func (r *SubmissionRepoPG) Save(ctx context.Context, sub *domain.Submission) error {
	query := qInsertSubmission
	if r.adminNumber != "" && sub.Mobile == r.adminNumber {
		query = qUpsertSubmission
	}

	row := r.sql.QueryRow(ctx, query, sub.ID, sub.Name, sub.Mobile, sub.Goal, sub.CreatedAt)
	var id string
	if err := row.Scan(&id); err != nil {
		if infra.IsUniqueViolation(err) {
			return domain.ErrDuplicateContact
		}
		return fmt.Errorf("save submission: %w", err)
	}
	sub.ID = id
	return nil
}

// AttachBackup patches the backup link onto a stored record. The caller
// treats failures here as non-fatal.
func (r *SubmissionRepoPG) AttachBackup(ctx context.Context, id, url, fileID string) error {
	if id == "" {
		return domain.ErrNotFound
	}
	tag, err := r.sql.Exec(ctx, qAttachBackup, id, url, fileID)
	if err != nil {
		return fmt.Errorf("attach backup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.SubmissionRepository = (*SubmissionRepoPG)(nil)
