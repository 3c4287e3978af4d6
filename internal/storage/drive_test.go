package storage

import (
	"context"
	"testing"
)

func TestPublicURL(t *testing.T) {
	got := PublicURL("abc123")
	want := "https://drive.google.com/uc?id=abc123&export=download"
	if got != want {
		t.Fatalf("PublicURL mismatch: got %q want %q", got, want)
	}
}

func TestNewDriveStoreConfigurationGate(t *testing.T) {
	ctx := context.Background()

	if _, err := NewDriveStore(ctx, "", "folder"); err == nil {
		t.Fatal("expected error without credentials file")
	}
	if _, err := NewDriveStore(ctx, "creds.json", ""); err == nil {
		t.Fatal("expected error without folder id")
	}
	if _, err := NewDriveStore(ctx, "/nonexistent/creds.json", "folder"); err == nil {
		t.Fatal("expected error for missing credentials file")
	}
}

func TestNilDriveStoreUpload(t *testing.T) {
	var s *DriveStore
	if _, _, err := s.Upload(context.Background(), []byte("x"), "f.jpg"); err == nil {
		t.Fatal("expected error from unconfigured store")
	}
}
