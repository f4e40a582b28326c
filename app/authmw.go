package app

import (
	"context"
	"net/http"

	"librarysystem/models"
	"librarysystem/session"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "app_session"

// SessionReader is the slice of the session store the gate needs.
type SessionReader interface {
	Get(ctx context.Context, id string) (*session.Session, error)
	Delete(ctx context.Context, id string) error
}

// LibrarianFinder confirms the session's account still exists.
type LibrarianFinder interface {
	FindLibrarianByID(ctx context.Context, id string) (*models.Librarian, error)
}

// AuthRequired is the auth gate: every protected operation runs behind it.
func AuthRequired(appSess SessionReader, repo LibrarianFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		sess, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		// 确认账号仍存在（只查一次）
		l, err := repo.FindLibrarianByID(c.Request.Context(), sess.LibrarianID)
		if err != nil {
			_ = appSess.Delete(c.Request.Context(), ck.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		c.Set("librarianID", sess.LibrarianID)
		c.Set("email", l.Email)

		c.Next()
	}
}
