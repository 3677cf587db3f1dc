package core

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type seedProfile struct {
	Email    string `yaml:"email"`
	Handle   string `yaml:"handle"`
	Password string `yaml:"password"`
}

// BootstrapSeed creates profiles listed in the seed manifest when they do not
// exist yet. It is idempotent: profiles whose email is already taken are
// skipped.
func BootstrapSeed(ctx context.Context, repo ProfileRepository, cfg Config) error {
	if !cfg.BootstrapSeed || cfg.SeedProfilesPath == "" {
		return nil
	}

	data, err := os.ReadFile(cfg.SeedProfilesPath)
	if err != nil {
		return fmt.Errorf("read seed manifest %s: %w", cfg.SeedProfilesPath, err)
	}

	var entries []seedProfile
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse seed manifest %s: %w", cfg.SeedProfilesPath, err)
	}

	for _, e := range entries {
		if strings.TrimSpace(e.Email) == "" || strings.TrimSpace(e.Handle) == "" || e.Password == "" {
			return fmt.Errorf("seed manifest entry missing email, handle, or password")
		}

		existing, err := repo.FindByEmail(ctx, e.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		hash, err := HashPassword(e.Password)
		if err != nil {
			return err
		}
		if _, err := repo.Create(ctx, e.Email, e.Handle, hash); err != nil {
			return err
		}
		log.Printf("seeded profile %s", e.Email)
	}

	return nil
}
