package classify_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/llmaniac/beacon/internal/classify"
	"github.com/llmaniac/beacon/internal/origins"
	"github.com/llmaniac/beacon/internal/tenants"
)

type mockSystem struct {
	classifyFn func(ctx context.Context, cmd classify.Command) (*classify.Result, error)
}

func (m *mockSystem) Handler() *classify.Handler {
	return classify.NewHandler(m, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (m *mockSystem) Classify(ctx context.Context, cmd classify.Command) (*classify.Result, error) {
	return m.classifyFn(ctx, cmd)
}

func setupMux(sys *mockSystem) *http.ServeMux {
	mux := http.NewServeMux()
	group := sys.Handler().Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func postClassify(mux *http.ServeMux, body, origin string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/classify", strings.NewReader(body))
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	mux.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"text": "lunch tomorrow?", "sender": "human", "containerId": "acme"}`

func TestHandlerClassify(t *testing.T) {
	event := "schedule_meeting"
	sys := &mockSystem{
		classifyFn: func(_ context.Context, cmd classify.Command) (*classify.Result, error) {
			return &classify.Result{
				Event:      &event,
				Confidence: 0.9,
				ShouldPush: true,
				Sender:     cmd.Sender,
			}, nil
		},
	}
	mux := setupMux(sys)

	t.Run("returns decision", func(t *testing.T) {
		rec := postClassify(mux, validBody, "https://example.com")

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var result classify.Result
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if result.Event == nil || *result.Event != "schedule_meeting" {
			t.Errorf("event = %v, want schedule_meeting", result.Event)
		}
		if !result.ShouldPush {
			t.Error("expected shouldPush")
		}
	})

	t.Run("forwards origin header", func(t *testing.T) {
		var captured classify.Command
		sys.classifyFn = func(_ context.Context, cmd classify.Command) (*classify.Result, error) {
			captured = cmd
			return &classify.Result{Sender: cmd.Sender}, nil
		}

		postClassify(mux, validBody, "https://example.com")

		if captured.Origin != "https://example.com" {
			t.Errorf("origin = %q, want https://example.com", captured.Origin)
		}
	})
}

func TestHandlerClassifyValidation(t *testing.T) {
	called := false
	sys := &mockSystem{
		classifyFn: func(_ context.Context, cmd classify.Command) (*classify.Result, error) {
			called = true
			return &classify.Result{}, nil
		},
	}
	mux := setupMux(sys)

	cases := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"text":`},
		{name: "missing text", body: `{"sender": "human", "containerId": "acme"}`},
		{name: "unknown sender", body: `{"text": "hi", "sender": "bot", "containerId": "acme"}`},
		{name: "missing container", body: `{"text": "hi", "sender": "human"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postClassify(mux, tc.body, "https://example.com")

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if called {
				t.Error("system must not be called for invalid input")
			}
		})
	}
}

func TestHandlerClassifyErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "origin denied", err: origins.ErrDenied, want: http.StatusForbidden},
		{name: "tenant missing", err: tenants.ErrNotFound, want: http.StatusNotFound},
		{name: "tenant invalid", err: tenants.ErrInvalid, want: http.StatusUnprocessableEntity},
		{
			name: "capability failure",
			err:  fmt.Errorf("%w: connection refused", classify.ErrClassifyFailed),
			want: http.StatusBadGateway,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sys := &mockSystem{
				classifyFn: func(_ context.Context, _ classify.Command) (*classify.Result, error) {
					return nil, tc.err
				},
			}

			rec := postClassify(setupMux(sys), validBody, "https://example.com")
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}

	t.Run("capability detail stays internal", func(t *testing.T) {
		sys := &mockSystem{
			classifyFn: func(_ context.Context, _ classify.Command) (*classify.Result, error) {
				return nil, fmt.Errorf("%w: token leaked-secret rejected", classify.ErrClassifyFailed)
			},
		}

		rec := postClassify(setupMux(sys), validBody, "https://example.com")
		if strings.Contains(rec.Body.String(), "leaked-secret") {
			t.Error("response body exposes internal error detail")
		}
	})
}
