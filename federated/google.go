package federated

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/authmodel"
	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
	"github.com/jrsteele09/go-marketplace-client/navigation"
	"github.com/jrsteele09/go-marketplace-client/notify"
	"github.com/jrsteele09/go-marketplace-client/users"
)

// Mode is the page the Google button was rendered on.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

const (
	MsgNoCredential   = "Google did not return a token. Please try again."
	MsgAccountCreated = "Account created successfully with Google!"
	MsgAuthFailed     = "Google authentication failed. Please try again."
)

// Exchanger trades a Google ID token for a backend session. *session.Store
// implements it.
type Exchanger interface {
	GoogleLogin(ctx context.Context, idToken string, userType users.UserType) (*authmodel.AuthResponse, error)
}

// GoogleAuth handles the credential returned by Google Identity Services.
type GoogleAuth struct {
	exchanger Exchanger
	notifier  notify.Notifier
	navigator navigation.Navigator
	clientID  string
	verifier  *oidc.IDTokenVerifier
	logger    zerolog.Logger
}

type Option func(*GoogleAuth)

// WithVerifier checks ID tokens locally before they are sent to the backend.
func WithVerifier(v *oidc.IDTokenVerifier) Option {
	return func(g *GoogleAuth) {
		g.verifier = v
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(g *GoogleAuth) {
		g.logger = l
	}
}

func NewGoogleAuth(exchanger Exchanger, notifier notify.Notifier, navigator navigation.Navigator, clientID string, opts ...Option) (*GoogleAuth, error) {
	if exchanger == nil {
		return nil, errors.New("[NewGoogleAuth] Exchanger is required")
	}
	if notifier == nil {
		notifier = notify.Discard
	}
	if navigator == nil {
		navigator = navigation.Discard
	}
	g := &GoogleAuth{
		exchanger: exchanger,
		notifier:  notifier,
		navigator: navigator,
		clientID:  clientID,
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// NewProviderVerifier discovers the issuer's keys and returns a verifier bound
// to clientID.
func NewProviderVerifier(ctx context.Context, issuer, clientID string) (*oidc.IDTokenVerifier, error) {
	if clientID == "" {
		return nil, perrors.ErrMissingClientID
	}
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, errors.Wrap(err, "[NewProviderVerifier] failed to create OIDC provider")
	}
	return provider.Verifier(&oidc.Config{ClientID: clientID}), nil
}

// HandleCredential signs in (or signs up, in register mode) with a Google ID
// token and redirects to the role dashboard. Failures are notified.
func (g *GoogleAuth) HandleCredential(ctx context.Context, credential string, mode Mode, userType users.UserType) (*authmodel.AuthResponse, error) {
	if credential == "" {
		g.logger.Error().Msg("No id_token received from Google")
		notify.Error(g.notifier, MsgNoCredential)
		return nil, perrors.ErrMissingIDToken
	}

	if g.verifier != nil {
		if err := g.verify(ctx, credential); err != nil {
			notify.Error(g.notifier, MsgAuthFailed)
			return nil, err
		}
	}

	// only a sign up carries the role; the backend keeps the existing one otherwise
	var requested users.UserType
	if mode == ModeRegister {
		requested = userType
	}

	resp, err := g.exchanger.GoogleLogin(ctx, credential, requested)
	if err != nil {
		g.logger.Error().Err(err).Msg("Google auth failed")
		notify.Error(g.notifier, backendMessage(err))
		return nil, errors.Wrap(err, "[GoogleAuth.HandleCredential]")
	}

	if resp.IsNew {
		notify.Success(g.notifier, MsgAccountCreated)
	}

	final := resp.UserType
	if final == "" {
		final = userType
	}
	if final == users.UserTypeClient {
		g.navigator.NavigateTo(navigation.RouteClientDashboard)
	} else {
		g.navigator.NavigateTo(navigation.RouteFreelancerDashboard)
	}
	return resp, nil
}

func (g *GoogleAuth) verify(ctx context.Context, raw string) error {
	token, err := g.verifier.Verify(ctx, raw)
	if err != nil {
		g.logger.Error().Err(err).Msg("ID token verification failed")
		return perrors.Wrapf(perrors.ErrInvalidToken, "%v", err)
	}
	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := token.Claims(&claims); err != nil {
		return perrors.Wrapf(perrors.ErrInvalidToken, "claims: %v", err)
	}
	g.logger.Debug().Str("email", claims.Email).Bool("email_verified", claims.EmailVerified).Msg("Google ID token verified")
	return nil
}

// backendMessage prefers the backend's "error" key, then "detail".
func backendMessage(err error) string {
	apiErr, ok := apiclient.AsAPIError(err)
	if !ok || len(apiErr.Body) == 0 {
		return MsgAuthFailed
	}
	return apiclient.ExtractMessageFrom(apiErr.Body, MsgAuthFailed, "error", "detail")
}
