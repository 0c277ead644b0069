// Package dialog persists per-chat conversation state between updates.
package dialog

import (
	"encoding/json"
	"fmt"
	"time"
)

// schemaVersion guards the serialized form. Bump it when State changes
// shape; old rows are then rejected instead of silently misread.
const schemaVersion = 1

type Kind string

const (
	// KindStart is the idle state; no poll is being built.
	KindStart Kind = "start"
	// KindPolling means a date poll keyboard is live in the chat.
	KindPolling Kind = "polling"
)

type State struct {
	Kind    Kind     `json:"kind"`
	Polling *Polling `json:"polling,omitempty"`
}

// Polling holds the date range of the live poll and which dates the chat
// has ticked so far, keyed by YYYY-MM-DD.
type Polling struct {
	Start    time.Time       `json:"start"`
	End      time.Time       `json:"end"`
	Selected map[string]bool `json:"selected"`
}

// StartState returns the idle state.
func StartState() State {
	return State{Kind: KindStart}
}

type envelope struct {
	Schema int   `json:"schema"`
	State  State `json:"state"`
}

func marshalState(s State) ([]byte, error) {
	return json.Marshal(envelope{Schema: schemaVersion, State: s})
}

func unmarshalState(data []byte) (State, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return State{}, fmt.Errorf("decode state: %w", err)
	}
	if env.Schema != schemaVersion {
		return State{}, fmt.Errorf("unsupported state schema %d", env.Schema)
	}
	return env.State, nil
}
