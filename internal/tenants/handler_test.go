package tenants_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/llmaniac/beacon/internal/tenants"
	"github.com/llmaniac/beacon/pkg/lifecycle"
)

type mockSystem struct {
	findFn func(ctx context.Context, containerID string) (*tenants.TenantConfig, error)
}

func (m *mockSystem) Handler() *tenants.Handler {
	return tenants.NewHandler(m, testLogger())
}

func (m *mockSystem) Find(ctx context.Context, containerID string) (*tenants.TenantConfig, error) {
	return m.findFn(ctx, containerID)
}

func (m *mockSystem) Start(lc *lifecycle.Coordinator) error {
	return nil
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

func TestHandlerEvents(t *testing.T) {
	sys := &mockSystem{
		findFn: func(_ context.Context, containerID string) (*tenants.TenantConfig, error) {
			if containerID != "acme" {
				return nil, fmt.Errorf("%w: %s", tenants.ErrNotFound, containerID)
			}
			return &tenants.TenantConfig{
				ContainerID: "acme",
				Events: []tenants.EventDefinition{
					{Name: "schedule_meeting", Description: "meet", Sender: tenants.SenderHuman},
				},
				AllowedOrigins: []string{"example.com"},
			}, nil
		},
	}
	mux := setupMux(sys)

	t.Run("returns event definitions", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/tenants/acme/events", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var events []tenants.EventDefinition
		if err := json.NewDecoder(rec.Body).Decode(&events); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(events) != 1 || events[0].Name != "schedule_meeting" {
			t.Errorf("events = %+v", events)
		}
	})

	t.Run("unknown container", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/tenants/ghost/events", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
