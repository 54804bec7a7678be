// Package service holds the call pattern shared by the feature services:
// send through the gateway, notify the outcome, log and wrap failures.
package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/notify"
)

// Base is embedded by every feature service.
type Base struct {
	name     string
	doer     apiclient.Doer
	notifier notify.Notifier
	logger   zerolog.Logger
}

type Option func(*Base)

func WithLogger(l zerolog.Logger) Option {
	return func(b *Base) {
		b.logger = l
	}
}

func NewBase(name string, doer apiclient.Doer, notifier notify.Notifier, opts ...Option) Base {
	if notifier == nil {
		notifier = notify.Discard
	}
	b := Base{
		name:     name,
		doer:     doer,
		notifier: notifier,
		logger:   log.Logger,
	}
	for _, opt := range opts {
		opt(&b)
	}
	b.logger = b.logger.With().Str("service", name).Logger()
	return b
}

func (b *Base) Notifier() notify.Notifier {
	return b.notifier
}

func (b *Base) Logger() *zerolog.Logger {
	return &b.logger
}

// Call is one backend request together with the messages shown for it.
// An empty Success or Failure shows nothing for that outcome.
type Call struct {
	Op        string
	Method    string
	Path      string
	Query     url.Values
	Body      any
	Multipart bool
	Success   string
	Failure   string
}

// Run sends c and decodes the response into a T.
func Run[T any](ctx context.Context, b *Base, c Call) (T, error) {
	var out T
	err := b.do(ctx, c, &out)
	return out, err
}

// Exec sends c and discards the response body.
func Exec(ctx context.Context, b *Base, c Call) error {
	return b.do(ctx, c, nil)
}

func (b *Base) do(ctx context.Context, c Call, out any) error {
	method := c.Method
	if method == "" {
		method = http.MethodGet
	}
	req := apiclient.Request{
		Method:    method,
		Path:      c.Path,
		Query:     c.Query,
		Body:      c.Body,
		Multipart: c.Multipart,
	}
	if err := b.doer.Do(ctx, req, out); err != nil {
		b.logger.Error().Err(err).Str("op", c.Op).Str("path", c.Path).Msg("request failed")
		// a cancelled caller has moved on, only real failures are shown
		if c.Failure != "" && ctx.Err() == nil {
			notify.Error(b.notifier, c.Failure)
		}
		return errors.Wrapf(err, "[%s.%s]", b.name, c.Op)
	}
	if c.Success != "" {
		notify.Success(b.notifier, c.Success)
	}
	return nil
}

// Pathf formats an endpoint path, escaping string arguments as path segments.
func Pathf(format string, args ...any) string {
	escaped := make([]any, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok {
			escaped[i] = url.PathEscape(s)
			continue
		}
		escaped[i] = a
	}
	return fmt.Sprintf(format, escaped...)
}
