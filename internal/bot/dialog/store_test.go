package dialog

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "dialogues.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetDefaultsToStart(t *testing.T) {
	s := setupStore(t)

	state, err := s.Get(42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if state.Kind != KindStart {
		t.Errorf("kind = %q, want %q", state.Kind, KindStart)
	}
}

func TestSetGetRoundtrip(t *testing.T) {
	s := setupStore(t)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	in := State{
		Kind: KindPolling,
		Polling: &Polling{
			Start:    start,
			End:      end,
			Selected: map[string]bool{"2024-01-02": true},
		},
	}
	if err := s.Set(42, in); err != nil {
		t.Fatalf("set: %v", err)
	}

	out, err := s.Get(42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Kind != KindPolling || out.Polling == nil {
		t.Fatalf("state = %+v", out)
	}
	if !out.Polling.Start.Equal(start) || !out.Polling.End.Equal(end) {
		t.Errorf("range = %v..%v", out.Polling.Start, out.Polling.End)
	}
	if !out.Polling.Selected["2024-01-02"] {
		t.Error("selected date lost in roundtrip")
	}

	// States are chat-scoped
	other, err := s.Get(43)
	if err != nil {
		t.Fatalf("get other chat: %v", err)
	}
	if other.Kind != KindStart {
		t.Errorf("other chat kind = %q, want %q", other.Kind, KindStart)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := setupStore(t)

	if err := s.Set(42, State{Kind: KindPolling, Polling: &Polling{Selected: map[string]bool{}}}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(42, StartState()); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	out, _ := s.Get(42)
	if out.Kind != KindStart {
		t.Errorf("kind = %q, want %q", out.Kind, KindStart)
	}
}

func TestReset(t *testing.T) {
	s := setupStore(t)

	s.Set(42, State{Kind: KindPolling, Polling: &Polling{Selected: map[string]bool{}}})
	if err := s.Reset(42); err != nil {
		t.Fatalf("reset: %v", err)
	}

	out, _ := s.Get(42)
	if out.Kind != KindStart {
		t.Errorf("kind = %q, want %q", out.Kind, KindStart)
	}
}

func TestUnknownSchemaRejected(t *testing.T) {
	s := setupStore(t)

	_, err := s.db.Exec(
		`INSERT INTO dialogue_states (chat_id, state) VALUES (?, ?)`,
		42, `{"schema":99,"state":{"kind":"start"}}`,
	)
	if err != nil {
		t.Fatalf("insert raw row: %v", err)
	}

	_, err = s.Get(42)
	if err == nil || !strings.Contains(err.Error(), "schema") {
		t.Errorf("err = %v, want schema rejection", err)
	}
}
