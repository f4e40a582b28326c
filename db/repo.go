package db

import (
	"context"
	"time"

	"librarysystem/models"

	"gorm.io/gorm"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

// Librarians

func (r *Repo) CreateLibrarian(ctx context.Context, l *models.Librarian) error {
	return r.DB.WithContext(ctx).Create(l).Error
}

func (r *Repo) FindLibrarianByID(ctx context.Context, id string) (*models.Librarian, error) {
	var l models.Librarian
	if err := r.DB.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repo) FindLibrarianByEmail(ctx context.Context, email string) (*models.Librarian, error) {
	var l models.Librarian
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repo) TouchLibrarianLogin(ctx context.Context, id, ip, ua string) error {
	now := time.Now().UTC()
	return r.DB.WithContext(ctx).Model(&models.Librarian{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login_at": now,
			"last_seen_at":  now,
			"login_count":   gorm.Expr("login_count + 1"),
			"last_login_ip": ip,
			"last_login_ua": ua,
		}).Error
}

func (r *Repo) TouchLibrarianSeen(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Model(&models.Librarian{}).
		Where("id = ?", id).
		Update("last_seen_at", time.Now().UTC()).Error
}
