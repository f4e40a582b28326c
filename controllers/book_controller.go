// controllers/book_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"librarysystem/app"
	"librarysystem/db"
	"librarysystem/models"

	"github.com/gin-gonic/gin"
)

type BookController struct{ *Srv }

func NewBookController(s *Srv) *BookController { return &BookController{Srv: s} }

func bookID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid book id"})
		return 0, false
	}
	return uint(id), true
}

// GET /api/books?title=&author=&status=&page=
func (bc *BookController) ListBooks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	q := db.BooksQuery{
		Title:  c.Query("title"),
		Author: c.Query("author"),
		Status: c.Query("status"),
		Page:   page,
	}
	res, err := bc.Repo.ListBooks(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/books/:id
func (bc *BookController) GetBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}
	b, err := bc.Repo.FindBookByID(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

type bookInput struct {
	Title      string  `json:"title" binding:"required,min=2,max=200"`
	AuthorID   int     `json:"authorId" binding:"required,gt=0"`
	AuthorName string  `json:"authorName" binding:"required,min=2,max=100"`
	Price      float64 `json:"price" binding:"required,gte=1,lte=10000"`
}

// POST /api/books
func (bc *BookController) CreateBook(c *gin.Context) {
	var in bookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	b := &models.Book{
		Title:      in.Title,
		AuthorID:   in.AuthorID,
		AuthorName: in.AuthorName,
		Price:      in.Price,
	}
	if err := bc.Repo.CreateBook(c.Request.Context(), b); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, b)
}

// PUT /api/books/:id — catalog fields only, never status
func (bc *BookController) UpdateBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}
	var in bookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	b, err := bc.Repo.UpdateBook(c.Request.Context(), id, db.UpdateBookInput{
		Title:      in.Title,
		AuthorID:   in.AuthorID,
		AuthorName: in.AuthorName,
		Price:      in.Price,
	})
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DELETE /api/books/:id
func (bc *BookController) DeleteBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}
	if err := bc.Repo.DeleteBook(c.Request.Context(), id); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
