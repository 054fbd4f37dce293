package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"rubikpi-setup/internal/logger"
)

// ActionState records the last successful completion of a provisioning action.
type ActionState struct {
	CompletedAt time.Time `json:"completed_at"`
}

// FailureState records the action that stopped the most recent run.
type FailureState struct {
	Action   string    `json:"action"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

// State holds what previous runs achieved on this board, keyed by action name.
type State struct {
	Actions     map[string]ActionState `json:"actions"`
	LastFailure *FailureState          `json:"last_failure,omitempty"`
}

// New returns an empty state.
func New() *State {
	return &State{Actions: make(map[string]ActionState)}
}

// LoadState loads the saved state from a JSON file at the given path.
// If the file does not exist or cannot be parsed, it returns a new empty State.
func LoadState(path string) *State {
	file, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("[WARN] Failed to read state file %s: %v\n", path, err)
		}
		return New()
	}

	var st State
	if err := json.Unmarshal(file, &st); err != nil {
		logger.Warn("[WARN] Ignoring unreadable state file %s: %v\n", path, err)
		return New()
	}
	// JSON may contain null for the map
	if st.Actions == nil {
		st.Actions = make(map[string]ActionState)
	}
	return &st
}

// MarkDone records a successful action and clears a failure recorded for it.
func (st *State) MarkDone(action string, at time.Time) {
	st.Actions[action] = ActionState{CompletedAt: at.UTC()}
	if st.LastFailure != nil && st.LastFailure.Action == action {
		st.LastFailure = nil
	}
}

// MarkFailed records the action that aborted the run.
func (st *State) MarkFailed(action string, err error, at time.Time) {
	st.LastFailure = &FailureState{Action: action, Error: err.Error(), FailedAt: at.UTC()}
}

// SaveState writes the given State to a JSON file at the given path, creating the
// parent directory when needed. Errors are logged but not propagated: losing the
// state file only costs the resume hint.
func SaveState(path string, st *State) {
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal state: %v\n", err)
		return
	}

	logger.Debug("[DEBUG] Writing state to %s:\n%s\n", path, string(file))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Error("[ERROR] Failed to create state directory for %s: %v\n", path, err)
		return
	}
	if err := os.WriteFile(path, file, 0o644); err != nil {
		logger.Error("[ERROR] Failed to write state file %s: %v\n", path, err)
	}
}
