package apiclient

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
	"github.com/jrsteele09/go-marketplace-client/notify"
)

// Credentials is the part of the session the gateway depends on.
type Credentials interface {
	AccessToken() string
	RefreshToken() string
	// RefreshAuthToken exchanges the refresh token. A failure it has
	// already handled (notified and logged out) wraps errors.ErrRefreshFailed;
	// a session that ended while the refresh was in flight gives
	// errors.ErrNotLoggedIn.
	RefreshAuthToken(ctx context.Context) error
	// EndSession clears the session and sends the user to the login route
	// without any notification of its own.
	EndSession(ctx context.Context) error
}

// Gateway is the authenticated client every feature service goes through.
type Gateway struct {
	doer        Doer
	credentials Credentials
	notifier    notify.Notifier
	logger      zerolog.Logger
	replay      bool
}

type GatewayOption func(*Gateway)

// WithReplayAfterRefresh controls whether a request that hit a 401 is sent
// once more after a successful refresh. Enabled by default.
func WithReplayAfterRefresh(enabled bool) GatewayOption {
	return func(g *Gateway) {
		g.replay = enabled
	}
}

func WithGatewayLogger(l zerolog.Logger) GatewayOption {
	return func(g *Gateway) {
		g.logger = l
	}
}

func NewGateway(doer Doer, credentials Credentials, notifier notify.Notifier, opts ...GatewayOption) *Gateway {
	if notifier == nil {
		notifier = notify.Discard
	}
	g := &Gateway{
		doer:        doer,
		credentials: credentials,
		notifier:    notifier,
		logger:      log.Logger,
		replay:      true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Do attaches the current access token, sends the request and triages a
// failure. The original error is always returned, even when a replay after
// refresh also fails.
func (g *Gateway) Do(ctx context.Context, req Request, out any) error {
	sentWith := g.credentials.AccessToken()
	err := g.doer.Do(ctx, g.authorize(req, sentWith), out)
	if err == nil {
		return nil
	}

	apiErr, ok := AsAPIError(err)
	if !ok {
		// encoding or decoding failure, the call itself was fine
		return err
	}
	g.logAPIError(apiErr)
	if apiErr.Kind == KindAuthentication {
		return g.unauthorized(ctx, req, sentWith, out, err)
	}
	g.surface(ctx, apiErr)
	return err
}

func (g *Gateway) unauthorized(ctx context.Context, req Request, sentWith string, out any, original error) error {
	if g.credentials.RefreshToken() == "" {
		notify.Error(g.notifier, MsgPleaseLogIn)
		g.endSession(ctx)
		return original
	}

	// A concurrent caller may already have refreshed while this request was in flight.
	if current := g.credentials.AccessToken(); current == "" || current == sentWith {
		if err := g.credentials.RefreshAuthToken(ctx); err != nil {
			g.logger.Warn().Err(err).Msg("refresh after 401 failed")
			if !refreshHandled(ctx, err) {
				notify.Error(g.notifier, MsgSessionExpired)
				g.endSession(ctx)
			}
			return original
		}
	}

	if !g.replay || ctx.Err() != nil {
		return original
	}
	retryErr := g.doer.Do(ctx, g.authorize(req, g.credentials.AccessToken()), out)
	if retryErr == nil {
		return nil
	}
	if IsUnauthorized(retryErr) {
		notify.Error(g.notifier, MsgSessionExpired)
		g.endSession(ctx)
		return original
	}
	if apiErr, ok := AsAPIError(retryErr); ok {
		g.logAPIError(apiErr)
		g.surface(ctx, apiErr)
	}
	return original
}

// refreshHandled reports whether a refresh error needs no further action here:
// the session already ended it, or the caller stopped waiting while the shared
// refresh carries on.
func refreshHandled(ctx context.Context, err error) bool {
	if ctx.Err() != nil || perrors.Is(err, context.Canceled) || perrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return perrors.Is(err, perrors.ErrRefreshFailed) || perrors.Is(err, perrors.ErrNotLoggedIn)
}

func (g *Gateway) logAPIError(apiErr *APIError) {
	g.logger.Error().Msgf("API Error: %d - %s for %s", apiErr.Status, apiErr.Message, apiErr.URL)
}

// surface notifies a non-401 failure. Cancellation by the caller is not reported.
func (g *Gateway) surface(ctx context.Context, apiErr *APIError) {
	switch apiErr.Kind {
	case KindClientRequest:
		notify.Error(g.notifier, "Error: "+apiErr.Message)
	case KindServer:
		notify.Error(g.notifier, MsgServerError)
	default:
		if ctx.Err() == nil {
			notify.Error(g.notifier, MsgNetworkError)
		}
	}
}

func (g *Gateway) authorize(req Request, accessToken string) Request {
	r := req.Clone()
	r.Token = nil
	if accessToken != "" {
		r.Token = &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
	}
	return r
}

func (g *Gateway) endSession(ctx context.Context) {
	if err := g.credentials.EndSession(context.WithoutCancel(ctx)); err != nil {
		g.logger.Err(err).Msg("could not clear session")
	}
}
