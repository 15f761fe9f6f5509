package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joestump/bookmarks/internal/auth"
)

// okHandler is a simple handler that returns 200 and records that it ran.
func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}

func serve(t *testing.T, token, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	var called bool
	mw := auth.NewBearerTokenMiddleware(token)
	h := mw.Authenticate(okHandler(&called))

	req := httptest.NewRequest("GET", "/bookmarks", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, called
}

func assertUnauthorized(t *testing.T, rec *httptest.ResponseRecorder, called bool) {
	t.Helper()
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if called {
		t.Error("next handler ran for a rejected request")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	want := `{"error":"Unauthorized request"}` + "\n"
	if rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}
}

func TestBearerTokenMiddleware_ValidToken(t *testing.T) {
	rec, called := serve(t, "s3cret", "Bearer s3cret")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !called {
		t.Error("next handler did not run")
	}
}

func TestBearerTokenMiddleware_MissingHeader(t *testing.T) {
	rec, called := serve(t, "s3cret", "")
	assertUnauthorized(t, rec, called)
}

func TestBearerTokenMiddleware_WrongToken(t *testing.T) {
	rec, called := serve(t, "s3cret", "Bearer nope")
	assertUnauthorized(t, rec, called)
}

func TestBearerTokenMiddleware_WrongScheme(t *testing.T) {
	rec, called := serve(t, "s3cret", "Basic s3cret")
	assertUnauthorized(t, rec, called)
}

func TestBearerTokenMiddleware_TokenPrefixOnly(t *testing.T) {
	rec, called := serve(t, "s3cret", "Bearer s3c")
	assertUnauthorized(t, rec, called)
}

func TestBearerTokenMiddleware_CaseSensitive(t *testing.T) {
	rec, called := serve(t, "s3cret", "bearer s3cret")
	assertUnauthorized(t, rec, called)
}

func TestBearerTokenMiddleware_EmptyConfiguredToken(t *testing.T) {
	rec, called := serve(t, "", "Bearer ")
	assertUnauthorized(t, rec, called)
}
