package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-marketplace-client/form"
	"github.com/jrsteele09/go-marketplace-client/internal/utils"
)

const (
	HeaderRequestID = "X-Request-ID"
	contentTypeJSON = "application/json"
)

// Doer sends a request and decodes a 2xx JSON body into out (which may be nil).
type Doer interface {
	Do(ctx context.Context, req Request, out any) error
}

// Transport is the raw client: no credentials are looked up and no side
// effects run on failure.
type Transport struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

type TransportOption func(*Transport)

func WithHTTPClient(c *http.Client) TransportOption {
	return func(t *Transport) {
		t.client = c
	}
}

func WithTimeout(d time.Duration) TransportOption {
	return func(t *Transport) {
		if d > 0 {
			t.client.Timeout = d
		}
	}
}

func WithTransportLogger(l zerolog.Logger) TransportOption {
	return func(t *Transport) {
		t.logger = l
	}
}

func NewTransport(baseURL string, opts ...TransportOption) *Transport {
	t := &Transport{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  log.Logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// BaseURL is the API root requests are resolved against.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

func (t *Transport) Do(ctx context.Context, req Request, out any) error {
	httpReq, err := t.build(ctx, req)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := t.client.Do(httpReq)
	if err != nil {
		t.logger.Debug().Err(err).Str("method", httpReq.Method).Str("url", httpReq.URL.String()).Msg("request failed")
		return &APIError{
			Kind:    KindNetwork,
			Message: MsgNetworkError,
			Method:  httpReq.Method,
			URL:     httpReq.URL.String(),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{
			Kind:    KindNetwork,
			Status:  resp.StatusCode,
			Message: MsgNetworkError,
			Method:  httpReq.Method,
			URL:     httpReq.URL.String(),
			Err:     err,
		}
	}

	t.logger.Debug().
		Str("method", httpReq.Method).
		Str("url", httpReq.URL.String()).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Str("request_id", httpReq.Header.Get(HeaderRequestID)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Kind:    KindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: ExtractMessage(body),
			Method:  httpReq.Method,
			URL:     httpReq.URL.String(),
			Body:    body,
		}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], body...)
		return nil
	}
	return errors.Wrapf(json.Unmarshal(body, out), "[Transport.Do] decode %s %s", httpReq.Method, httpReq.URL.Path)
}

func (t *Transport) build(ctx context.Context, req Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := utils.JoinURL(t.baseURL, req.Path)
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.RawBody != nil:
		body = bytes.NewReader(req.RawBody)
		contentType = req.ContentType
	case req.Body != nil && req.Multipart:
		data, ct, err := form.Encode(req.Body)
		if err != nil {
			return nil, errors.Wrap(err, "[Transport.build] multipart")
		}
		body = bytes.NewReader(data)
		contentType = ct
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrap(err, "[Transport.build] json")
		}
		body = bytes.NewReader(data)
		contentType = contentTypeJSON
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.Wrap(err, "[Transport.build]")
	}
	for k, v := range req.Header {
		httpReq.Header[k] = append([]string(nil), v...)
	}
	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", contentTypeJSON)
	}
	if httpReq.Header.Get(HeaderRequestID) == "" {
		httpReq.Header.Set(HeaderRequestID, uuid.NewString())
	}
	if req.Token != nil && req.Token.AccessToken != "" {
		req.Token.SetAuthHeader(httpReq)
	}
	return httpReq, nil
}
