package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/aurora-nuptials/marketplace/internal/config"
	"github.com/aurora-nuptials/marketplace/internal/middleware"
	"github.com/aurora-nuptials/marketplace/internal/model"
	"github.com/aurora-nuptials/marketplace/internal/repository"
	"github.com/aurora-nuptials/marketplace/internal/utils"
)

const authTestSecret = "test-secret"

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	cfg := config.Config{JWTSecret: authTestSecret, AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: 4}
	return NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db)), mock
}

func logoutContext(t *testing.T, setup func(*http.Request)) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLogoutCookieRevokesAllSessions(t *testing.T) {
	h, mock := newAuthHandler(t)
	at, err := utils.NewAccessToken(authTestSecret, 7, model.RoleCouple, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at=NOW\(\) WHERE user_id=\? AND revoked_at IS NULL`).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	// Cookie only, no Authorization header: browser clients log out
	// without ever handling the header.
	c, rec := logoutContext(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: at.Token})
	})
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	cleared := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.TokenCookie && ck.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("token cookie not expired")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLogoutBearerRevokesAllSessions(t *testing.T) {
	h, mock := newAuthHandler(t)
	at, err := utils.NewAccessToken(authTestSecret, 11, model.RoleVendor, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at=NOW\(\) WHERE user_id=\? AND revoked_at IS NULL`).
		WithArgs(uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := logoutContext(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+at.Token)
	})
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLogoutWithoutCredentials(t *testing.T) {
	h, mock := newAuthHandler(t)

	c, rec := logoutContext(t, nil)
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLogoutForgedTokenIsRejected(t *testing.T) {
	h, mock := newAuthHandler(t)
	at, err := utils.NewAccessToken("other-secret", 7, model.RoleCouple, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	c, rec := logoutContext(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: at.Token})
	})
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
