package logout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/waygo/internal/app/features/logout"
	"github.com/dalemusser/waygo/internal/app/system/httpjson"
	"github.com/dalemusser/waygo/internal/testutil"
	"go.uber.org/zap"
)

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("expected cookie %q to be set for deletion", name)
	return nil
}

func TestServeLogout_ClearsCookie(t *testing.T) {
	h := logout.NewHandler("token", []byte("test-cookie-key-for-testing-only"), false, zap.NewNop())

	req := httptest.NewRequest("GET", "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "issued-elsewhere"})
	rec := httptest.NewRecorder()
	h.ServeLogout(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)

	c := findCookie(t, rec, "token")
	if c.MaxAge != -1 {
		t.Errorf("cookie MaxAge: got %d, want -1 (delete)", c.MaxAge)
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Errorf("SameSite: got %v, want Strict", c.SameSite)
	}
	if c.Secure {
		t.Error("cookie should not be Secure outside production")
	}

	var body httpjson.Result
	testutil.DecodeJSON(t, rec, &body)
	if !body.Success || body.Message != "Logged out successfully" {
		t.Errorf("body: %+v", body)
	}
}

func TestServeLogout_Production(t *testing.T) {
	h := logout.NewHandler("token", nil, true, zap.NewNop())

	rec := httptest.NewRecorder()
	logout.Routes(h).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	testutil.AssertStatus(t, rec, http.StatusOK)
	c := findCookie(t, rec, "token")
	if !c.Secure {
		t.Error("cookie should be Secure in production")
	}
	if c.SameSite != http.SameSiteNoneMode {
		t.Errorf("SameSite: got %v, want None", c.SameSite)
	}
}
