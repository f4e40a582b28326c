// app/bootstrap.go
package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"

	"librarysystem/db"
	"librarysystem/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SeedLibrarian creates the first staff account from env. There is no
// registration endpoint, so without this nobody can pass the auth gate.
func SeedLibrarian(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.BootstrapEmail == "" {
		return
	}
	if _, err := repo.FindLibrarianByEmail(ctx, cfg.BootstrapEmail); err == nil {
		return // 已存在，跳过
	}

	pwd := cfg.BootstrapPassword
	if pwd == "" {
		buf := make([]byte, 12)
		rand.Read(buf)
		pwd = hex.EncodeToString(buf)
		log.Printf("[BOOTSTRAP] Generated password for %s: %s", cfg.BootstrapEmail, pwd)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("bootstrap hash failed: %v", err)
		return
	}
	l := &models.Librarian{
		ID:           uuid.NewString(),
		Email:        cfg.BootstrapEmail,
		DisplayName:  cfg.BootstrapEmail,
		PasswordHash: hash,
	}
	if err := repo.CreateLibrarian(ctx, l); err != nil {
		log.Printf("bootstrap librarian failed: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] Created librarian account for %s", cfg.BootstrapEmail)
}
