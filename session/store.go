package session

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/authmodel"
	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
	"github.com/jrsteele09/go-marketplace-client/navigation"
	"github.com/jrsteele09/go-marketplace-client/notify"
	"github.com/jrsteele09/go-marketplace-client/storage"
	"github.com/jrsteele09/go-marketplace-client/users"
	"github.com/jrsteele09/go-marketplace-client/validation"
)

// Backend endpoints used by the session.
const (
	EndpointLogin              = "/auth/login/"
	EndpointRegister           = "/auth/register/"
	EndpointLogout             = "/auth/logout/"
	EndpointRefresh            = "/auth/token/refresh/"
	EndpointGoogleLogin        = "/oauth2callback/"
	EndpointPasswordChange     = "/auth/password-change/"
	EndpointPasswordReset      = "/auth/password-reset/"
	EndpointPasswordConfirm    = "/auth/password-change-confirm/"
	EndpointResendVerification = "/auth/resend-verification/"
)

// State of the session state machine.
type State int

const (
	StateLoggedOut State = iota
	StateLoggedIn
	StateRefreshing
)

func (s State) String() string {
	switch s {
	case StateLoggedIn:
		return "logged_in"
	case StateRefreshing:
		return "refreshing"
	default:
		return "logged_out"
	}
}

// Session is a point in time copy of the store.
type Session struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
	User         *users.User
	State        State
}

// Dependencies holds everything the Store talks to.
type Dependencies struct {
	Transport    apiclient.Doer       // raw transport, never the Gateway
	Repo         storage.Repo         // durable slots
	Notifier     notify.Notifier      // optional
	Navigator    navigation.Navigator // optional
	MediaBaseURL string               // prefix for profile pictures
}

// Store is the single source of truth for the signed in identity.
type Store struct {
	deps    Dependencies
	logger  zerolog.Logger
	nowTime func() time.Time

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiry       time.Time
	user         *users.User
	refreshing   bool

	refreshGroup singleflight.Group
}

var (
	_ apiclient.Credentials = (*Store)(nil)
	_ navigation.UserSource = (*Store)(nil)
	_ oauth2.TokenSource    = (*Store)(nil)
)

type StoreOption func(*Store)

func WithLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = l
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

func NewStore(deps Dependencies, options ...StoreOption) (*Store, error) {
	if deps.Transport == nil {
		return nil, errors.New("[NewStore] Transport is required")
	}
	if deps.Repo == nil {
		return nil, errors.New("[NewStore] Repo is required")
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.Discard
	}
	if deps.Navigator == nil {
		deps.Navigator = navigation.Discard
	}

	s := &Store{
		deps:    deps,
		logger:  log.Logger,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// User returns a copy of the signed in user, nil when logged out.
func (s *Store) User() *users.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// IsLoggedIn holds while both an access token and a user are present,
// including during a refresh.
func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken != "" && s.user != nil
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() State {
	switch {
	case s.refreshing:
		return StateRefreshing
	case s.accessToken != "" && s.user != nil:
		return StateLoggedIn
	default:
		return StateLoggedOut
	}
}

func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Session{
		AccessToken:  s.accessToken,
		RefreshToken: s.refreshToken,
		Expiry:       s.expiry,
		User:         s.user.Clone(),
		State:        s.stateLocked(),
	}
}

// Token implements oauth2.TokenSource. An access token known to be expired
// is refreshed first.
func (s *Store) Token() (*oauth2.Token, error) {
	snap := s.Snapshot()
	if snap.AccessToken == "" {
		return nil, perrors.ErrNotLoggedIn
	}
	if !snap.Expiry.IsZero() && !s.nowTime().Before(snap.Expiry) && snap.RefreshToken != "" {
		if err := s.RefreshAuthToken(context.Background()); err != nil {
			return nil, err
		}
		snap = s.Snapshot()
		if snap.AccessToken == "" {
			return nil, perrors.ErrNotLoggedIn
		}
	}
	return &oauth2.Token{
		AccessToken:  snap.AccessToken,
		RefreshToken: snap.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       snap.Expiry,
	}, nil
}

// Login posts credentials and establishes the session.
func (s *Store) Login(ctx context.Context, payload authmodel.LoginPayload) (*authmodel.AuthResponse, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}

	resp, err := apiclient.Send[authmodel.AuthResponse](ctx, s.deps.Transport, http.MethodPost, EndpointLogin, payload)
	if err != nil {
		s.logger.Error().Err(err).Str("username", payload.Username).Msg("login failed")
		notify.Error(s.deps.Notifier, failureMessage(err))
		return nil, errors.Wrap(err, "[Store.Login]")
	}

	user := authmodel.NormalizeUser(&resp, s.deps.MediaBaseURL, false)
	if err := s.establish(ctx, resp.Access, resp.Refresh, s.expiryOf(resp.Access, resp.AccessExpiry()), user); err != nil {
		return nil, errors.Wrap(err, "[Store.Login]")
	}
	s.logger.Info().Int64("user_id", user.ID).Str("user_type", string(user.UserType)).Msg("logged in")
	notify.Success(s.deps.Notifier, "Logged in successfully!")
	return &resp, nil
}

// GoogleLogin exchanges a Google ID token for a backend session. userType is
// the role used when the account does not exist yet.
func (s *Store) GoogleLogin(ctx context.Context, idToken string, userType users.UserType) (*authmodel.AuthResponse, error) {
	if idToken == "" {
		return nil, perrors.ErrMissingIDToken
	}

	body := authmodel.GoogleLoginRequest{IDToken: idToken, UserType: userType}
	resp, err := apiclient.Send[authmodel.AuthResponse](ctx, s.deps.Transport, http.MethodPost, EndpointGoogleLogin, body)
	if err != nil {
		s.logger.Error().Err(err).Msg("Google login failed")
		notify.Error(s.deps.Notifier, "Google login failed. Please try again.")
		return nil, errors.Wrap(err, "[Store.GoogleLogin]")
	}

	user := authmodel.NormalizeUser(&resp, s.deps.MediaBaseURL, true)
	if err := s.establish(ctx, resp.Access, resp.Refresh, s.expiryOf(resp.Access, resp.AccessExpiry()), user); err != nil {
		return nil, errors.Wrap(err, "[Store.GoogleLogin]")
	}
	notify.Success(s.deps.Notifier, "Logged in successfully with Google!")
	return &resp, nil
}

// Register creates an account. It does not sign the user in.
func (s *Store) Register(ctx context.Context, payload authmodel.RegisterPayload) (json.RawMessage, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	var ack json.RawMessage
	req := apiclient.Request{Method: http.MethodPost, Path: EndpointRegister, Body: authmodel.NewRegisterRequest(payload)}
	if err := s.deps.Transport.Do(ctx, req, &ack); err != nil {
		s.logger.Error().Err(err).Str("username", payload.User.Username).Msg("registration failed")
		notify.Error(s.deps.Notifier, failureMessage(err))
		return nil, errors.Wrap(err, "[Store.Register]")
	}
	notify.Success(s.deps.Notifier, "Registration successful! Verification email sent.")
	return ack, nil
}

// Logout tells the backend when a refresh token exists and always clears the
// local session. A backend failure is notified, not returned.
func (s *Store) Logout(ctx context.Context) error {
	refresh := s.RefreshToken()
	if refresh != "" {
		req := apiclient.Request{
			Method: http.MethodPost,
			Path:   EndpointLogout,
			Body:   authmodel.RefreshRequest{Refresh: refresh},
			Token:  s.bearer(),
		}
		if err := s.deps.Transport.Do(ctx, req, nil); err != nil {
			s.logger.Error().Err(err).Msg("Logout API Error")
			notify.Error(s.deps.Notifier, "Logout failed on server, but session cleared locally.")
		} else {
			notify.Success(s.deps.Notifier, "Logged out successfully!")
		}
	} else {
		notify.Info(s.deps.Notifier, "No active session to log out.")
	}
	return s.EndSession(ctx)
}

// EndSession clears the session and redirects to the login route without
// contacting the backend or notifying.
func (s *Store) EndSession(ctx context.Context) error {
	err := s.clear(context.WithoutCancel(ctx))
	s.deps.Navigator.NavigateTo(navigation.RouteLogin)
	return err
}

// CheckAuth restores the session from storage at startup. Without both
// tokens it behaves like Logout.
func (s *Store) CheckAuth(ctx context.Context) error {
	access := s.load(ctx, storage.KeyAccessToken)
	refresh := s.load(ctx, storage.KeyRefreshToken)
	if access == "" || refresh == "" {
		return s.Logout(ctx)
	}

	var user *users.User
	if raw := s.load(ctx, storage.KeyUser); raw != "" {
		user = &users.User{}
		if err := json.Unmarshal([]byte(raw), user); err != nil {
			s.logger.Error().Err(err).Msg("Failed to parse stored user data")
			user = nil
		}
	}

	s.mu.Lock()
	s.accessToken = access
	s.refreshToken = refresh
	s.expiry = accessTokenExpiry(access)
	s.user = user
	s.mu.Unlock()
	return nil
}

// UpdateUser applies fn to the signed in user and persists the result.
func (s *Store) UpdateUser(ctx context.Context, fn func(u *users.User)) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return perrors.ErrNotLoggedIn
	}
	updated := s.user.Clone()
	fn(updated)
	s.user = updated
	s.mu.Unlock()

	return s.persistUser(ctx, updated)
}

func (s *Store) bearer() *oauth2.Token {
	access := s.AccessToken()
	if access == "" {
		return nil
	}
	return &oauth2.Token{AccessToken: access, TokenType: "Bearer"}
}

func (s *Store) expiryOf(accessToken string, sent time.Time) time.Time {
	if !sent.IsZero() {
		return sent
	}
	return accessTokenExpiry(accessToken)
}

// failureMessage renders a rejected auth call the way the gateway renders
// any other client error.
func failureMessage(err error) string {
	if apiErr, ok := apiclient.AsAPIError(err); ok && apiErr.Kind == apiclient.KindAuthentication {
		return "Error: " + apiErr.Message
	}
	return apiclient.UserMessage(err)
}
