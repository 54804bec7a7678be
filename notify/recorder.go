package notify

import "sync"

// Recorder keeps every notification in order. Handy in tests and for
// presentation layers that show a history.
type Recorder struct {
	mu   sync.Mutex
	seen []Notification
}

var _ Notifier = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.seen))
	copy(out, r.seen)
	return out
}

func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.seen))
	for _, n := range r.seen {
		out = append(out, n.Message)
	}
	return out
}

// Last returns the most recent notification and false if none was recorded.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.seen) == 0 {
		return Notification{}, false
	}
	return r.seen[len(r.seen)-1], true
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = nil
}
