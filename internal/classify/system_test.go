package classify_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/llmaniac/beacon/internal/classify"
	"github.com/llmaniac/beacon/internal/conversation"
	"github.com/llmaniac/beacon/internal/origins"
	"github.com/llmaniac/beacon/internal/tenants"
	"github.com/llmaniac/beacon/pkg/lifecycle"
)

type mockTenants struct {
	findFn func(ctx context.Context, containerID string) (*tenants.TenantConfig, error)
}

func (m *mockTenants) Handler() *tenants.Handler {
	return nil
}

func (m *mockTenants) Find(ctx context.Context, containerID string) (*tenants.TenantConfig, error) {
	return m.findFn(ctx, containerID)
}

func (m *mockTenants) Start(lc *lifecycle.Coordinator) error {
	return nil
}

func acmeConfig() *tenants.TenantConfig {
	return &tenants.TenantConfig{
		ContainerID:    "acme",
		Events:         humanCandidates(),
		AllowedOrigins: []string{"example.com"},
	}
}

func newSystem(capability *fakeCapability, store tenants.System, tracker *conversation.Tracker) classify.System {
	return classify.New(
		capability,
		5*time.Second,
		store,
		tracker,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func allowedCommand(text string) classify.Command {
	cmd := humanCommand(text)
	cmd.Origin = "https://example.com"
	return cmd
}

func TestSystemClassify(t *testing.T) {
	store := &mockTenants{
		findFn: func(_ context.Context, _ string) (*tenants.TenantConfig, error) {
			return acmeConfig(), nil
		},
	}

	t.Run("classifies and records the turn", func(t *testing.T) {
		capability := &fakeCapability{
			response: `{"event": "schedule_meeting", "confidence": 0.9}`,
		}
		tracker := conversation.NewTracker()
		sys := newSystem(capability, store, tracker)

		result, err := sys.Classify(context.Background(), allowedCommand("lunch tomorrow?"))
		if err != nil {
			t.Fatalf("classify: %v", err)
		}

		if result.Event == nil || *result.Event != "schedule_meeting" {
			t.Errorf("event = %v, want schedule_meeting", result.Event)
		}

		turn, ok := tracker.Previous("acme")
		if !ok {
			t.Fatal("expected turn to be recorded")
		}
		if turn.Text != "lunch tomorrow?" || turn.Sender != tenants.SenderHuman {
			t.Errorf("turn = %+v", turn)
		}
	})

	t.Run("previous turn feeds the prompt", func(t *testing.T) {
		capability := &fakeCapability{
			response: `{"event": null, "confidence": 0}`,
		}
		tracker := conversation.NewTracker()
		tracker.SetLast("acme", conversation.Turn{Text: "how about 3pm?", Sender: tenants.SenderAI})
		sys := newSystem(capability, store, tracker)

		if _, err := sys.Classify(context.Background(), allowedCommand("sounds good")); err != nil {
			t.Fatalf("classify: %v", err)
		}

		if capability.prompt == "" {
			t.Fatal("capability was not called")
		}
		if !strings.Contains(capability.prompt, "how about 3pm?") {
			t.Error("prompt missing previous turn")
		}
	})

	t.Run("session id scopes the context", func(t *testing.T) {
		capability := &fakeCapability{
			response: `{"event": null, "confidence": 0}`,
		}
		tracker := conversation.NewTracker()
		sys := newSystem(capability, store, tracker)

		cmd := allowedCommand("hi there")
		cmd.SessionID = "sess-1"
		if _, err := sys.Classify(context.Background(), cmd); err != nil {
			t.Fatalf("classify: %v", err)
		}

		if _, ok := tracker.Previous("acme:sess-1"); !ok {
			t.Error("expected turn under session-scoped key")
		}
		if _, ok := tracker.Previous("acme"); ok {
			t.Error("container-only key should be untouched")
		}
	})

	t.Run("no-match still records the turn", func(t *testing.T) {
		capability := &fakeCapability{
			response: `{"event": null, "confidence": 0}`,
		}
		tracker := conversation.NewTracker()
		sys := newSystem(capability, store, tracker)

		result, err := sys.Classify(context.Background(), allowedCommand("just saying hi"))
		if err != nil {
			t.Fatalf("classify: %v", err)
		}
		if result.ShouldPush {
			t.Error("expected no match")
		}

		if _, ok := tracker.Previous("acme"); !ok {
			t.Error("expected turn to be recorded on no-match")
		}
	})

	t.Run("failure leaves context untouched", func(t *testing.T) {
		capability := &fakeCapability{err: errors.New("timeout")}
		tracker := conversation.NewTracker()
		tracker.SetLast("acme", conversation.Turn{Text: "earlier", Sender: tenants.SenderAI})
		sys := newSystem(capability, store, tracker)

		_, err := sys.Classify(context.Background(), allowedCommand("hello?"))
		if !errors.Is(err, classify.ErrClassifyFailed) {
			t.Fatalf("error = %v, want ErrClassifyFailed", err)
		}

		turn, _ := tracker.Previous("acme")
		if turn.Text != "earlier" {
			t.Errorf("turn = %+v, want untouched previous turn", turn)
		}
	})

	t.Run("denied origin stops before classification", func(t *testing.T) {
		capability := &fakeCapability{
			response: `{"event": "schedule_meeting", "confidence": 0.9}`,
		}
		tracker := conversation.NewTracker()
		sys := newSystem(capability, store, tracker)

		cmd := humanCommand("lunch tomorrow?")
		cmd.Origin = "https://evil.com"

		_, err := sys.Classify(context.Background(), cmd)
		if !errors.Is(err, origins.ErrDenied) {
			t.Fatalf("error = %v, want ErrDenied", err)
		}
		if capability.calls != 0 {
			t.Errorf("capability calls = %d, want 0", capability.calls)
		}
		if _, ok := tracker.Previous("acme"); ok {
			t.Error("denied request must not record a turn")
		}
	})

	t.Run("unknown tenant", func(t *testing.T) {
		missing := &mockTenants{
			findFn: func(_ context.Context, id string) (*tenants.TenantConfig, error) {
				return nil, fmt.Errorf("%w: %s", tenants.ErrNotFound, id)
			},
		}
		capability := &fakeCapability{}
		sys := newSystem(capability, missing, conversation.NewTracker())

		_, err := sys.Classify(context.Background(), allowedCommand("hello"))
		if !errors.Is(err, tenants.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
		if capability.calls != 0 {
			t.Errorf("capability calls = %d, want 0", capability.calls)
		}
	})

	t.Run("sender with no events skips the capability", func(t *testing.T) {
		capability := &fakeCapability{}
		tracker := conversation.NewTracker()
		sys := newSystem(capability, store, tracker)

		cmd := allowedCommand("offer accepted")
		cmd.Sender = tenants.SenderAI

		result, err := sys.Classify(context.Background(), cmd)
		if err != nil {
			t.Fatalf("classify: %v", err)
		}
		if result.ShouldPush || result.Event != nil {
			t.Errorf("result = %+v, want no match", result)
		}
		if capability.calls != 0 {
			t.Errorf("capability calls = %d, want 0", capability.calls)
		}
		if _, ok := tracker.Previous("acme"); !ok {
			t.Error("expected turn to be recorded")
		}
	})
}
