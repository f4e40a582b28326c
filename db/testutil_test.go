package db

import (
	"context"
	"path/filepath"
	"testing"

	"librarysystem/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testRepo(t *testing.T) *Repo {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "lib.db") + "?_busy_timeout=5000&_journal_mode=WAL"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewRepo(gdb)
}

func seedBook(t *testing.T, r *Repo, title, author string) *models.Book {
	t.Helper()
	b := &models.Book{Title: title, AuthorID: 1, AuthorName: author, Price: 9.99}
	if err := r.CreateBook(context.Background(), b); err != nil {
		t.Fatalf("seed book %q: %v", title, err)
	}
	return b
}
