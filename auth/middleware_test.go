package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/officedesk/officedesk/cache"
)

func newVerifier(t *testing.T, codec *Codec, opts ...MiddlewareOption) http.Handler {
	t.Helper()
	mw, err := NewMiddleware(codec, opts...)
	if err != nil {
		t.Fatalf("NewMiddleware() error = %v", err)
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := PrincipalFromContext(r.Context()); ok {
			w.Header().Set("X-Test-Principal", p.Username)
		}
		w.WriteHeader(http.StatusOK)
	})
	return mw.Handler(next)
}

func TestMiddlewareNoHeaderPassesThrough(t *testing.T) {
	codec := newTestCodec(t)
	handler := newVerifier(t, codec)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Test-Principal") != "" {
		t.Fatal("expected no principal without Authorization header")
	}
}

func TestMiddlewareNonBearerPassesThrough(t *testing.T) {
	codec := newTestCodec(t)
	handler := newVerifier(t, codec)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Test-Principal") != "" {
		t.Fatal("expected no principal for non-Bearer header")
	}
}

func TestMiddlewareValidTokenSetsPrincipal(t *testing.T) {
	codec := newTestCodec(t)
	handler := newVerifier(t, codec)

	raw, err := codec.Encode(Claims{Subject: "alice", Authorities: []string{AuthorityAdmin}}, time.Minute)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Test-Principal"); got != "alice" {
		t.Fatalf("principal = %q, want alice", got)
	}
}

func TestMiddlewareBadTokenRejected(t *testing.T) {
	codec := newTestCodec(t)
	handler := newVerifier(t, codec)

	for _, token := range []string{
		"garbage",
		"a.b.c",
	} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status for %q = %d, want 401", token, rec.Code)
		}
		if body := strings.TrimSpace(rec.Body.String()); body != "untrusted token" {
			t.Fatalf("body = %q, want generic untrusted token message", body)
		}
	}
}

func TestMiddlewareExpiredTokenRejected(t *testing.T) {
	codec := newTestCodec(t)
	issued := time.Now().Add(-time.Hour)
	codec.SetNowFunc(func() time.Time { return issued })
	raw, err := codec.Encode(Claims{Subject: "alice"}, time.Minute)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	codec.SetNowFunc(nil)

	handler := newVerifier(t, codec)
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 for expired token", rec.Code)
	}
}

func TestMiddlewareSkipper(t *testing.T) {
	codec := newTestCodec(t)
	handler := newVerifier(t, codec, WithSkipper(func(r *http.Request) bool {
		return strings.HasPrefix(r.URL.Path, "/health")
	}))

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Authorization", "Bearer not-even-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for skipped route", rec.Code)
	}
}

func TestMiddlewareCustomErrorHandler(t *testing.T) {
	codec := newTestCodec(t)
	handler := newVerifier(t, codec, WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, _ error) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer junk")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want custom handler status", rec.Code)
	}
}

func TestMiddlewareDenylist(t *testing.T) {
	codec := newTestCodec(t)
	denylist := NewDenylist(cache.NewMemoryStore())
	handler := newVerifier(t, codec, WithDenylist(denylist))

	raw, err := codec.Encode(Claims{Subject: "alice"}, time.Hour)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status before revocation = %d, want 200", rec.Code)
	}

	if err := denylist.Revoke(req.Context(), raw, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status after revocation = %d, want 401", rec.Code)
	}
}

func TestNewMiddlewareRequiresCodec(t *testing.T) {
	if _, err := NewMiddleware(nil); err == nil {
		t.Fatal("expected error for nil codec")
	}
}

func TestBearerTokenExtractor(t *testing.T) {
	extractor := BearerTokenExtractor()

	req := httptest.NewRequest("GET", "/", nil)
	if _, err := extractor(req); err != ErrTokenNotFound {
		t.Fatalf("missing header error = %v, want ErrTokenNotFound", err)
	}

	req.Header.Set("Authorization", "Basic abc")
	if _, err := extractor(req); err != ErrTokenInvalidInput {
		t.Fatalf("non-bearer error = %v, want ErrTokenInvalidInput", err)
	}

	req.Header.Set("Authorization", "Bearer   ")
	if _, err := extractor(req); err != ErrTokenInvalidInput {
		t.Fatalf("empty token error = %v, want ErrTokenInvalidInput", err)
	}

	req.Header.Set("Authorization", "bearer tok-123")
	token, err := extractor(req)
	if err != nil {
		t.Fatalf("extractor error = %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("token = %q, want tok-123", token)
	}
}
