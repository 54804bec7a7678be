// Package servicetest provides a fake marketplace backend wired to a real
// Gateway for feature service tests.
package servicetest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/apiclient/apiclientfakes"
	"github.com/jrsteele09/go-marketplace-client/notify"
)

const apiPrefix = "/api"

// Recorded is one request seen by the backend. Multipart values and file
// names end up in Form, anything else in Body.
type Recorded struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
	Form   map[string]string
}

// JSON decodes the recorded body.
func (r Recorded) JSON(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(r.Body, &m))
	return m
}

type Backend struct {
	Server      *httptest.Server
	Recorder    *notify.Recorder
	Credentials *apiclientfakes.FakeCredentials
	Gateway     *apiclient.Gateway

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []Recorded
}

func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		Recorder:    notify.NewRecorder(),
		Credentials: apiclientfakes.NewFakeCredentials("abc123", "r1"),
		routes:      map[string]http.HandlerFunc{},
	}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Server.Close)

	transport := apiclient.NewTransport(b.Server.URL+apiPrefix, apiclient.WithHTTPClient(b.Server.Client()))
	b.Gateway = apiclient.NewGateway(transport, b.Credentials, b.Recorder)
	return b
}

// Handle answers method and path (relative to the API root) with a fixed
// JSON body.
func (b *Backend) Handle(method, path string, status int, body string) {
	b.HandleFunc(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (b *Backend) HandleFunc(method, path string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = h
}

func (b *Backend) Requests() []Recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Recorded(nil), b.requests...)
}

// Last returns the most recent request, zero if there was none.
func (b *Backend) Last() Recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return Recorded{}
	}
	return b.requests[len(b.requests)-1]
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	rec := Recorded{
		Method: r.Method,
		Path:   strings.TrimPrefix(r.URL.EscapedPath(), apiPrefix),
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rec.Form = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			rec.Form[k] = v[0]
		}
		for k, files := range r.MultipartForm.File {
			rec.Form[k] = "file:" + files[0].Filename
		}
	} else {
		rec.Body, _ = io.ReadAll(r.Body)
	}

	b.mu.Lock()
	b.requests = append(b.requests, rec)
	h, ok := b.routes[r.Method+" "+rec.Path]
	b.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Not found."}`)
		return
	}
	h(w, r)
}
