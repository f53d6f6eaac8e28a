package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aurora-nuptials/marketplace/internal/model"
	"github.com/aurora-nuptials/marketplace/internal/utils"
)

const testSecret = "test-secret"

func newContext(t *testing.T, setup func(*http.Request)) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestExtractToken(t *testing.T) {
	c, _ := newContext(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer from-header")
		r.AddCookie(&http.Cookie{Name: TokenCookie, Value: "from-cookie"})
	})
	if got := ExtractToken(c); got != "from-header" {
		t.Fatalf("ExtractToken = %q, header should win", got)
	}

	c, _ = newContext(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: TokenCookie, Value: "from-cookie"})
	})
	if got := ExtractToken(c); got != "from-cookie" {
		t.Fatalf("ExtractToken = %q, want cookie value", got)
	}

	c, _ = newContext(t, nil)
	if got := ExtractToken(c); got != "" {
		t.Fatalf("ExtractToken = %q, want empty", got)
	}
}

func TestJWTAuthMissingToken(t *testing.T) {
	c, rec := newContext(t, nil)
	if err := JWTAuth(testSecret)(okHandler)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthBearerHeader(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, model.RoleCouple, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	c, rec := newContext(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+at.Token)
	})
	if err := JWTAuth(testSecret)(okHandler)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if uid, ok := c.Get("user_id").(uint64); !ok || uid != 7 {
		t.Fatalf("user_id = %v, want uint64 7", c.Get("user_id"))
	}
	if role, ok := c.Get("role").(model.Role); !ok || role != model.RoleCouple {
		t.Fatalf("role = %v, want COUPLE", c.Get("role"))
	}
}

func TestJWTAuthCookieFallback(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 3, model.RoleVendor, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	c, rec := newContext(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: TokenCookie, Value: at.Token})
	})
	if err := JWTAuth(testSecret)(okHandler)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if uid, _ := c.Get("user_id").(uint64); uid != 3 {
		t.Fatalf("user_id = %v, want 3", c.Get("user_id"))
	}
}

func TestJWTAuthHeaderWinsOverCookie(t *testing.T) {
	header, _ := utils.NewAccessToken(testSecret, 1, model.RoleAdmin, 15)
	cookie, _ := utils.NewAccessToken(testSecret, 2, model.RoleCouple, 15)
	c, _ := newContext(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+header.Token)
		r.AddCookie(&http.Cookie{Name: TokenCookie, Value: cookie.Token})
	})
	if err := JWTAuth(testSecret)(okHandler)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if uid, _ := c.Get("user_id").(uint64); uid != 1 {
		t.Fatalf("user_id = %v, header token should win", c.Get("user_id"))
	}
}

func TestJWTAuthForgedToken(t *testing.T) {
	at, _ := utils.NewAccessToken("other-secret", 9, model.RoleAdmin, 15)
	c, rec := newContext(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+at.Token)
	})
	if err := JWTAuth(testSecret)(okHandler)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthUnknownRole(t *testing.T) {
	at, _ := utils.NewAccessToken(testSecret, 9, model.Role("SUPERUSER"), 15)
	c, rec := newContext(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+at.Token)
	})
	if err := JWTAuth(testSecret)(okHandler)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	guard := RequireRole(model.RoleAdmin)

	c, rec := newContext(t, nil)
	c.Set("role", model.RoleAdmin)
	if err := guard(okHandler)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", rec.Code)
	}

	c, rec = newContext(t, nil)
	c.Set("role", model.RoleCouple)
	if err := guard(okHandler)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("couple status = %d, want 403", rec.Code)
	}

	// No role in context at all.
	c, rec = newContext(t, nil)
	if err := guard(okHandler)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("anonymous status = %d, want 403", rec.Code)
	}
}
