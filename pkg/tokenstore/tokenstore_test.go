package tokenstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/polijecare/polijecare_web/pkg/apiclient"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Token(context.Background()); !errors.Is(err, apiclient.ErrNoToken) {
		t.Fatalf("empty store: got %v, want ErrNoToken", err)
	}

	if err := s.Save("abc123"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Token(context.Background())
	if err != nil || got != "abc123" {
		t.Fatalf("Token() = %q, %v", got, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("perm = %o, want 600", perm)
	}

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Token(context.Background()); !errors.Is(err, apiclient.ErrNoToken) {
		t.Errorf("after clear: got %v", err)
	}
}

func TestFileStore_KeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte(`{"user":"sari","token":"old"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	s, _ := New(path)
	if err := s.Save("new"); err != nil {
		t.Fatal(err)
	}
	data, err := s.read()
	if err != nil {
		t.Fatal(err)
	}
	if data["user"] != "sari" || data[Key] != "new" {
		t.Errorf("data = %v", data)
	}
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	_ = os.WriteFile(path, []byte(`{not json`), 0o600)
	s, _ := New(path)
	if _, err := s.Token(context.Background()); err == nil || errors.Is(err, apiclient.ErrNoToken) {
		t.Errorf("expected decode error, got %v", err)
	}
}
