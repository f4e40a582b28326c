// controllers/borrow_controller.go
package controllers

import (
	"net/http"

	"librarysystem/app"
)

type BorrowController struct{ *Srv }

func NewBorrowController(s *Srv) *BorrowController { return &BorrowController{Srv: s} }

// POST /api/books/:id/borrow
func (bc *BorrowController) Borrow(c *app.Ctx) {
	id, ok := bookID(c)
	if !ok {
		return
	}
	entry, err := bc.Repo.BorrowBook(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// POST /api/books/:id/return
func (bc *BorrowController) Return(c *app.Ctx) {
	id, ok := bookID(c)
	if !ok {
		return
	}
	entry, err := bc.Repo.ReturnBook(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GET /api/books/:id/history
func (bc *BorrowController) History(c *app.Ctx) {
	id, ok := bookID(c)
	if !ok {
		return
	}
	entries, err := bc.Repo.BookHistory(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"bookId": id, "history": entries})
}
