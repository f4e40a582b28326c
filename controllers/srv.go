// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"librarysystem/app"
	"librarysystem/db"
	"librarysystem/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Srv struct {
	Repo      *db.Repo
	AppSess   *session.Store
	WebOrigin string
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:      db.NewRepo(a.DB),
		AppSess:   a.AppSessions(),
		WebOrigin: a.Config.WebOrigin,
		Cfg:       a.Config,
	}
}

// --- helpers ---

// 统一设置业务会话 Cookie
func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

// 登录成功：创建会话 + 触发登录快照
func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, librarianID, ip, ua string) error {
	_ = s.Repo.TouchLibrarianLogin(ctx, librarianID, ip, ua) // 不阻塞
	id := uuid.NewString()
	if err := s.AppSess.Create(ctx, id, librarianID); err != nil {
		return err
	}
	s.setAppCookie(w, id, s.Cfg.SessionTTL)
	return nil
}

// writeRepoError maps the repo's sentinel errors onto HTTP statuses.
// Anything unmapped is a storage failure and goes out as 500, never
// swallowed.
func writeRepoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, db.ErrBookNotFound), errors.Is(err, db.ErrMemberNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrNotAvailable), errors.Is(err, db.ErrNotBorrowed), errors.Is(err, db.ErrBookOnLoan):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrLedgerMismatch):
		// Operator attention: status and ledger disagree.
		log.Printf("ledger mismatch: %v", err)
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}
