package navigation

import "sync"

// Navigator performs a client side redirect.
type Navigator interface {
	NavigateTo(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) NavigateTo(path string) {
	f(path)
}

// Discard ignores every redirect.
var Discard Navigator = NavigatorFunc(func(string) {})

// Recorder remembers redirects in order, e.g. for a CLI to print or a test to assert.
type Recorder struct {
	mu    sync.Mutex
	paths []string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NavigateTo(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// Last returns the most recent redirect or "".
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.paths) == 0 {
		return ""
	}
	return r.paths[len(r.paths)-1]
}
