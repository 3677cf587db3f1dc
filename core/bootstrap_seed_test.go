package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestBootstrapSeedCreatesProfiles(t *testing.T) {
	path := writeSeedFile(t, `
- email: a@example.com
  handle: ada
  password: correct-pw
- email: b@example.com
  handle: bob
  password: other-pw
`)
	repo := newFakeProfileRepo()
	cfg := Config{BootstrapSeed: true, SeedProfilesPath: path}

	if err := BootstrapSeed(context.Background(), repo, cfg); err != nil {
		t.Fatalf("BootstrapSeed error: %v", err)
	}

	for _, email := range []string{"a@example.com", "b@example.com"} {
		p, err := repo.FindByEmail(context.Background(), email)
		if err != nil || p == nil {
			t.Fatalf("expected seeded profile %s, got (%v, %v)", email, p, err)
		}
		if p.PasswordHash == "" || p.PasswordHash == "correct-pw" {
			t.Fatalf("seeded password stored unhashed for %s", email)
		}
	}

	p, _ := repo.FindByEmail(context.Background(), "a@example.com")
	if !VerifyPassword(p.PasswordHash, "correct-pw") {
		t.Fatalf("seeded hash does not verify the seed password")
	}
}

func TestBootstrapSeedIdempotent(t *testing.T) {
	path := writeSeedFile(t, `
- email: a@example.com
  handle: ada
  password: correct-pw
`)
	repo := newFakeProfileRepo()
	cfg := Config{BootstrapSeed: true, SeedProfilesPath: path}

	if err := BootstrapSeed(context.Background(), repo, cfg); err != nil {
		t.Fatalf("BootstrapSeed error: %v", err)
	}
	first, _ := repo.FindByEmail(context.Background(), "a@example.com")

	if err := BootstrapSeed(context.Background(), repo, cfg); err != nil {
		t.Fatalf("BootstrapSeed (second run) error: %v", err)
	}
	second, _ := repo.FindByEmail(context.Background(), "a@example.com")

	if first.ID != second.ID || first.PasswordHash != second.PasswordHash {
		t.Fatalf("second run replaced an existing profile")
	}
}

func TestBootstrapSeedDisabled(t *testing.T) {
	repo := newFakeProfileRepo()
	cfg := Config{BootstrapSeed: false, SeedProfilesPath: "/does/not/exist.yaml"}

	if err := BootstrapSeed(context.Background(), repo, cfg); err != nil {
		t.Fatalf("disabled seeding must be a no-op, got %v", err)
	}
}

func TestBootstrapSeedRejectsIncompleteEntry(t *testing.T) {
	path := writeSeedFile(t, `
- email: a@example.com
  handle: ""
  password: correct-pw
`)
	repo := newFakeProfileRepo()
	cfg := Config{BootstrapSeed: true, SeedProfilesPath: path}

	if err := BootstrapSeed(context.Background(), repo, cfg); err == nil {
		t.Fatalf("expected error for incomplete seed entry")
	}
}
