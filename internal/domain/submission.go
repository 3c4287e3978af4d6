package domain

import (
	"context"
	"time"
)

// Submission is one visitor's request record: identity, career goal and
// references to the stored images. BackupURL and BackupFileID stay empty
// until the Drive upload completes.
type Submission struct {
	ID           string
	Name         string
	Mobile       string
	Goal         string
	CreatedAt    time.Time
	OriginalKey  string
	GeneratedKey string
	BackupURL    string
	BackupFileID string
}

// SubmissionRepository persists submissions. Save performs a plain insert for
// regular mobiles and an upsert for the configured admin/test number;
// AttachBackup patches the backup link onto an existing record.
type SubmissionRepository interface {
	Save(ctx context.Context, sub *Submission) error
	AttachBackup(ctx context.Context, id, url, fileID string) error
}

// Careers lists the goal choices offered on the create page. "Other" lets
// the visitor type a custom goal.
var Careers = []string{
	"Doctor",
	"Indian Police Officer",
	"Software Engineer",
	"Teacher",
	"Scientist",
	"Businessperson / Entrepreneur",
	"Army Officer",
	"Lawyer",
	"Artist / Musician",
	"Other",
}
