package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"librarysystem/models"
	"librarysystem/session"

	"github.com/gin-gonic/gin"
)

type stubSessions struct {
	sess *session.Session
	err  error
}

func (s stubSessions) Get(ctx context.Context, id string) (*session.Session, error) {
	return s.sess, s.err
}
func (s stubSessions) Delete(ctx context.Context, id string) error { return nil }

type stubLibrarians struct {
	l   *models.Librarian
	err error
}

func (s stubLibrarians) FindLibrarianByID(ctx context.Context, id string) (*models.Librarian, error) {
	return s.l, s.err
}

func gateRouter(sessions SessionReader, librarians LibrarianFinder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/p", AuthRequired(sessions, librarians), func(c *gin.Context) {
		c.JSON(http.StatusOK, H{"librarianID": c.GetString("librarianID")})
	})
	return r
}

func TestAuthRequiredNoCookie(t *testing.T) {
	r := gateRouter(stubSessions{}, stubLibrarians{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/p", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no cookie: %d", w.Code)
	}
}

func TestAuthRequiredBadSession(t *testing.T) {
	r := gateRouter(stubSessions{err: errors.New("redis: nil")}, stubLibrarians{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/p", nil)
	req.AddCookie(&http.Cookie{Name: AppSessionCookie, Value: "stale"})
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("stale session: %d", w.Code)
	}
}

func TestAuthRequiredGoneLibrarian(t *testing.T) {
	r := gateRouter(
		stubSessions{sess: &session.Session{LibrarianID: "lib-1"}},
		stubLibrarians{err: errors.New("record not found")},
	)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/p", nil)
	req.AddCookie(&http.Cookie{Name: AppSessionCookie, Value: "ok"})
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("deleted librarian: %d", w.Code)
	}
}

func TestAuthRequiredOK(t *testing.T) {
	r := gateRouter(
		stubSessions{sess: &session.Session{LibrarianID: "lib-1"}},
		stubLibrarians{l: &models.Librarian{ID: "lib-1", Email: "a@b.c"}},
	)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/p", nil)
	req.AddCookie(&http.Cookie{Name: AppSessionCookie, Value: "ok"})
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid session: %d, body %s", w.Code, w.Body.String())
	}
}
