package httpx

import (
	"context"
	"net/http"
	"testing"

	"github.com/officedesk/officedesk/auth"
)

func TestServerAndClientRoundTrip(t *testing.T) {
	server := NewServer()
	server.RegisterRoutes(func(e *Echo) {
		e.GET("/ping", func(c Context) error {
			return c.JSON(StatusOK, map[string]string{"message": "pong"})
		})
	})

	ts := NewTestServer(server.Handler())
	defer ts.Close()

	client := NewClient(WithBaseURL(ts.BaseURL()))

	var body struct {
		Message string `json:"message"`
	}
	resp, err := client.Get(context.Background(), "/ping", &body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode() != StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode())
	}
	if body.Message != "pong" {
		t.Fatalf("unexpected body: %#v", body)
	}
}

func TestErrorHandlerWrapsEchoHTTPError(t *testing.T) {
	server := NewServer()
	server.RegisterRoutes(func(e *Echo) {
		e.GET("/fail", func(c Context) error {
			return HTTPError(StatusBadRequest, "bad request")
		})
	})

	ts := NewTestServer(server.Handler())
	defer ts.Close()

	client := NewClient(WithBaseURL(ts.BaseURL()))

	resp, err := client.Get(context.Background(), "/fail", nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if resp == nil {
		t.Fatalf("expected response for error path")
	}
	if resp.StatusCode() != StatusBadRequest {
		t.Fatalf("unexpected status: %d", resp.StatusCode())
	}
}

func TestRegisterRoutesTable(t *testing.T) {
	server := NewServer()
	server.RegisterRoutes(func(e *Echo) {
		e.RegisterRoutes(
			Route{Method: http.MethodGet, Path: "/a", Handler: func(c Context) error { return c.NoContent(StatusOK) }},
			Route{Method: http.MethodPost, Path: "/b", Handler: func(c Context) error { return c.NoContent(StatusCreated) }},
			Route{}, // incomplete entries are skipped
		)
	})

	ts := NewTestServer(server.Handler())
	defer ts.Close()

	client := NewClient(WithBaseURL(ts.BaseURL()))
	if resp, err := client.Get(context.Background(), "/a", nil); err != nil || resp.StatusCode() != StatusOK {
		t.Fatalf("GET /a = %v, %v", resp, err)
	}
	if resp, err := client.Post(context.Background(), "/b", nil, nil); err != nil || resp.StatusCode() != StatusCreated {
		t.Fatalf("POST /b = %v, %v", resp, err)
	}
}

func TestWrapMiddlewareBridgesAuthVerifier(t *testing.T) {
	codec, err := auth.NewCodec([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	verifier, err := auth.NewMiddleware(codec)
	if err != nil {
		t.Fatalf("NewMiddleware() error = %v", err)
	}

	server := NewServer(WithMiddlewares(WrapMiddleware(verifier.Handler)))
	server.RegisterRoutes(func(e *Echo) {
		e.GET("/whoami", func(c Context) error {
			p, ok := auth.PrincipalFromContext(c.Request().Context())
			if !ok {
				return c.JSON(StatusOK, map[string]string{"subject": ""})
			}
			return c.JSON(StatusOK, map[string]string{"subject": p.Username})
		})
	})

	ts := NewTestServer(server.Handler())
	defer ts.Close()

	client := NewClient(WithBaseURL(ts.BaseURL()))

	// Anonymous request still reaches the handler.
	var out map[string]string
	if _, err := client.Get(context.Background(), "/whoami", &out); err != nil {
		t.Fatalf("anonymous request error = %v", err)
	}
	if out["subject"] != "" {
		t.Fatalf("anonymous subject = %q, want empty", out["subject"])
	}

	// A valid bearer token flows through the bridge into the echo handler's
	// request context.
	token, err := codec.Encode(auth.Claims{Subject: "alice"}, auth.DefaultAccessTokenTTL)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if _, err := client.Get(context.Background(), "/whoami", &out, WithBearer(token)); err != nil {
		t.Fatalf("authenticated request error = %v", err)
	}
	if out["subject"] != "alice" {
		t.Fatalf("authenticated subject = %q, want alice", out["subject"])
	}

	// A bad token is rejected by the wrapped middleware before the handler.
	resp, err := client.Get(context.Background(), "/whoami", nil, WithBearer("junk"))
	if err == nil {
		t.Fatal("expected error for bad token")
	}
	if resp.StatusCode() != StatusUnauthorized {
		t.Fatalf("bad token status = %d, want 401", resp.StatusCode())
	}
}

func TestWrapMiddlewareBridgesGatekeeper(t *testing.T) {
	gk, err := auth.NewGatekeeper("office-client", "office-secret")
	if err != nil {
		t.Fatalf("NewGatekeeper() error = %v", err)
	}

	server := NewServer(WithMiddlewares(WrapMiddleware(gk.Handler)))
	server.RegisterRoutes(func(e *Echo) {
		e.GET("/ping", func(c Context) error { return c.NoContent(StatusOK) })
	})

	ts := NewTestServer(server.Handler())
	defer ts.Close()

	client := NewClient(WithBaseURL(ts.BaseURL()))

	if _, err := client.Get(context.Background(), "/ping", nil); err == nil {
		t.Fatal("expected rejection without gatekeeper headers")
	}

	headers := map[string]string{
		auth.GatekeeperClientHeader: "office-client",
		auth.GatekeeperSecretHeader: "office-secret",
	}
	resp, err := client.Get(context.Background(), "/ping", nil, WithRequestHeaders(headers))
	if err != nil {
		t.Fatalf("request with headers error = %v", err)
	}
	if resp.StatusCode() != StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode())
	}
}

func TestClientQueryParams(t *testing.T) {
	server := NewServer()
	server.RegisterRoutes(func(e *Echo) {
		e.GET("/echo", func(c Context) error {
			return c.JSON(StatusOK, map[string]string{"q": c.QueryParam("q")})
		})
	})

	ts := NewTestServer(server.Handler())
	defer ts.Close()

	client := NewClient(WithBaseURL(ts.BaseURL()))
	var out map[string]string
	if _, err := client.Get(context.Background(), "/echo", &out, WithQuery(map[string]string{"q": "value"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["q"] != "value" {
		t.Fatalf("query param = %q, want value", out["q"])
	}
}
