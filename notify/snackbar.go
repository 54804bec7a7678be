package notify

import "sync"

// SnackbarState is what a presentation layer renders.
type SnackbarState struct {
	Visible  bool     `json:"visible"`
	Message  string   `json:"message"`
	Severity Severity `json:"type"`
}

// Snackbar keeps only the most recent notification, the way a single banner does.
type Snackbar struct {
	mu    sync.RWMutex
	state SnackbarState
}

var _ Notifier = (*Snackbar)(nil)

func NewSnackbar() *Snackbar {
	return &Snackbar{state: SnackbarState{Severity: SeveritySuccess}}
}

func (s *Snackbar) Notify(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SnackbarState{Visible: true, Message: n.Message, Severity: n.Severity}
}

func (s *Snackbar) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Visible = false
}

func (s *Snackbar) State() SnackbarState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
