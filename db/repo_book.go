package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"librarysystem/models"

	"gorm.io/gorm"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrBookOnLoan   = errors.New("book has an open borrowing")
)

// PageSize is fixed for catalog listings.
const PageSize = 10

type BooksQuery struct {
	Title  string // substring, case-insensitive
	Author string // substring, case-insensitive
	Status string // "Available"/"Borrowed"; ""/"All" = no filter
	Page   int    // 1-based, clamped
}

type PagedBooks struct {
	Books      []models.Book `json:"books"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"totalPages"`
	Page       int           `json:"page"`
}

func totalPages(total int64) int {
	return int((total + PageSize - 1) / PageSize)
}

// normalizePage clamps a requested page into [1, totalPages]. With zero
// pages the request stays at page 1 with no rows.
func normalizePage(page, totalPages int) int {
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	return page
}

// ListBooks is the catalog view: conjunctive filters, count before
// pagination, title-ascending order with id as tiebreak so pages are
// deterministic. Purely a read.
func (r *Repo) ListBooks(ctx context.Context, q BooksQuery) (PagedBooks, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Book{})

	if t := strings.TrimSpace(q.Title); t != "" {
		tx = tx.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(t)+"%")
	}
	if a := strings.TrimSpace(q.Author); a != "" {
		tx = tx.Where("LOWER(author_name) LIKE ?", "%"+strings.ToLower(a)+"%")
	}
	if s := strings.TrimSpace(q.Status); s != "" && s != "All" {
		tx = tx.Where("status = ?", s)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return PagedBooks{}, err
	}

	pages := totalPages(total)
	page := normalizePage(q.Page, pages)

	books := []models.Book{}
	if err := tx.
		Order("LOWER(title) ASC, id ASC").
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&books).Error; err != nil {
		return PagedBooks{}, err
	}
	return PagedBooks{Books: books, Total: total, TotalPages: pages, Page: page}, nil
}

func (r *Repo) FindBookByID(ctx context.Context, id uint) (*models.Book, error) {
	var b models.Book
	if err := r.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *Repo) CreateBook(ctx context.Context, b *models.Book) error {
	b.Status = models.BookAvailable
	b.LastModified = time.Now().UTC()
	return r.DB.WithContext(ctx).Create(b).Error
}

type UpdateBookInput struct {
	Title      string
	AuthorID   int
	AuthorName string
	Price      float64
}

// UpdateBook edits catalog fields only. Status belongs to the lending
// transition and is never written here.
func (r *Repo) UpdateBook(ctx context.Context, id uint, in UpdateBookInput) (*models.Book, error) {
	res := r.DB.WithContext(ctx).Model(&models.Book{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":         in.Title,
			"author_id":     in.AuthorID,
			"author_name":   in.AuthorName,
			"price":         in.Price,
			"last_modified": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrBookNotFound
	}
	return r.FindBookByID(ctx, id)
}

// DeleteBook refuses to delete a book with an open borrowing so ledger
// entries never end up orphaned.
func (r *Repo) DeleteBook(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Borrowing{}).
			Where("book_id = ? AND return_date IS NULL", id).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrBookOnLoan
		}
		res := tx.Delete(&models.Book{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBookNotFound
		}
		return nil
	})
}
