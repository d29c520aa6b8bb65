package conversation_test

import (
	"sync"
	"testing"

	"github.com/llmaniac/beacon/internal/conversation"
	"github.com/llmaniac/beacon/internal/tenants"
)

func TestTracker(t *testing.T) {
	tracker := conversation.NewTracker()

	t.Run("empty tracker has no previous turn", func(t *testing.T) {
		if _, ok := tracker.Previous("acme"); ok {
			t.Error("expected no previous turn")
		}
	})

	t.Run("set then get", func(t *testing.T) {
		tracker.SetLast("acme", conversation.Turn{Text: "hello", Sender: tenants.SenderHuman})

		turn, ok := tracker.Previous("acme")
		if !ok {
			t.Fatal("expected a previous turn")
		}
		if turn.Text != "hello" || turn.Sender != tenants.SenderHuman {
			t.Errorf("turn = %+v", turn)
		}
	})

	t.Run("replaces prior turn", func(t *testing.T) {
		tracker.SetLast("acme", conversation.Turn{Text: "sure, 3pm works", Sender: tenants.SenderAI})

		turn, _ := tracker.Previous("acme")
		if turn.Text != "sure, 3pm works" || turn.Sender != tenants.SenderAI {
			t.Errorf("turn = %+v", turn)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		tracker.SetLast("other", conversation.Turn{Text: "hi", Sender: tenants.SenderHuman})

		turn, _ := tracker.Previous("acme")
		if turn.Text == "hi" {
			t.Error("keys should not share slots")
		}
	})
}

func TestTrackerConcurrentWritesNeverTear(t *testing.T) {
	tracker := conversation.NewTracker()

	// Two distinct whole turns; any observed mix of one's text with the
	// other's sender is a torn read.
	human := conversation.Turn{Text: "when can we meet?", Sender: tenants.SenderHuman}
	ai := conversation.Turn{Text: "how about thursday?", Sender: tenants.SenderAI}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			turn := human
			if i%2 == 1 {
				turn = ai
			}

			for j := 0; j < 200; j++ {
				tracker.SetLast("acme", turn)

				seen, ok := tracker.Previous("acme")
				if !ok {
					continue
				}
				if seen != human && seen != ai {
					t.Errorf("observed torn turn: %+v", seen)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestKey(t *testing.T) {
	cases := []struct {
		name      string
		container string
		session   string
		want      string
	}{
		{name: "with session", container: "acme", session: "sess-1", want: "acme:sess-1"},
		{name: "dotted session", container: "acme", session: "user.42", want: "acme:user.42"},
		{name: "no session", container: "acme", session: "", want: "acme"},
		{name: "unsafe session falls back", container: "acme", session: "a b/c", want: "acme"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := conversation.Key(tc.container, tc.session); got != tc.want {
				t.Errorf("key = %q, want %q", got, tc.want)
			}
		})
	}
}
