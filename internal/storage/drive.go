package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveStore backs up generated portraits to a Google Drive folder using a
// service account. Construction is gated on configuration: callers must not
// build a DriveStore unless both the credentials file and the folder id are
// present, so upload is never attempted half-configured.
type DriveStore struct {
	svc      *drive.Service
	folderID string
}

// NewDriveStore builds a Drive client from a service-account credentials file.
func NewDriveStore(ctx context.Context, credentialsFile, folderID string) (*DriveStore, error) {
	if credentialsFile == "" || folderID == "" {
		return nil, errors.New("storage: drive backup not configured")
	}
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, fmt.Errorf("storage: service account file: %w", err)
	}
	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveFileScope),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: drive service: %w", err)
	}
	return &DriveStore{svc: svc, folderID: folderID}, nil
}

// Upload stores the bytes in the configured folder, grants anyone-with-link
// read access, and returns the file id plus the public download URL.
func (s *DriveStore) Upload(ctx context.Context, data []byte, filename string) (string, string, error) {
	if s == nil || s.svc == nil {
		return "", "", errors.New("storage: drive store not configured")
	}

	meta := &drive.File{Name: filename, Parents: []string{s.folderID}}
	created, err := s.svc.Files.Create(meta).
		Media(bytes.NewReader(data)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", "", fmt.Errorf("storage: drive upload: %w", err)
	}

	perm := &drive.Permission{Role: "reader", Type: "anyone"}
	if _, err := s.svc.Permissions.Create(created.Id, perm).Context(ctx).Do(); err != nil {
		return created.Id, "", fmt.Errorf("storage: drive permission: %w", err)
	}

	return created.Id, PublicURL(created.Id), nil
}

// PublicURL renders the direct-download link for an uploaded file.
func PublicURL(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/uc?id=%s&export=download", fileID)
}
