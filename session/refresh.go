package session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/authmodel"
	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
	"github.com/jrsteele09/go-marketplace-client/notify"
	"github.com/jrsteele09/go-marketplace-client/storage"
)

// RefreshAuthToken exchanges the refresh token for a new access token.
// Without a refresh token it only logs a warning. Concurrent callers share a
// single backend call. On failure the session is ended and the returned
// error wraps errors.ErrRefreshFailed.
func (s *Store) RefreshAuthToken(ctx context.Context) error {
	refresh := s.RefreshToken()
	if refresh == "" {
		s.logger.Warn().Msg("No refresh token available. Cannot refresh authentication.")
		return nil
	}

	ch := s.refreshGroup.DoChan(refresh, func() (any, error) {
		return nil, s.refresh(context.WithoutCancel(ctx), refresh)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) refresh(ctx context.Context, refresh string) error {
	s.mu.Lock()
	s.refreshing = true
	s.mu.Unlock()

	var resp authmodel.TokenRefreshResponse
	req := apiclient.Request{Method: http.MethodPost, Path: EndpointRefresh, Body: authmodel.RefreshRequest{Refresh: refresh}}
	err := s.deps.Transport.Do(ctx, req, &resp)
	if err == nil && resp.Access == "" {
		err = errors.New("refresh response carried no access token")
	}

	s.mu.Lock()
	s.refreshing = false
	if s.refreshToken != refresh {
		loggedOut := s.refreshToken == ""
		s.mu.Unlock()
		if loggedOut {
			return fmt.Errorf("[Store.RefreshAuthToken] session ended during refresh: %w", perrors.ErrNotLoggedIn)
		}
		// a new login replaced the session, its tokens are current
		return nil
	}
	if err != nil {
		s.mu.Unlock()
		s.logger.Error().Err(err).Msg("Failed to refresh access token")
		notify.Error(s.deps.Notifier, apiclient.MsgSessionExpired)
		// EndSession rather than Logout: the backend already rejected this
		// refresh token, so there is nothing to revoke server side.
		_ = s.EndSession(ctx)
		return fmt.Errorf("[Store.RefreshAuthToken] %w: %w", perrors.ErrRefreshFailed, err)
	}

	s.accessToken = resp.Access
	if resp.Refresh != "" {
		s.refreshToken = resp.Refresh
	}
	s.expiry = s.expiryOf(resp.Access, resp.AccessExpiry())
	access, rotated := s.accessToken, s.refreshToken
	s.mu.Unlock()

	if err := s.deps.Repo.Set(ctx, storage.KeyAccessToken, access); err != nil {
		s.logger.Error().Err(err).Msg("could not persist refreshed access token")
	}
	if err := s.deps.Repo.Set(ctx, storage.KeyRefreshToken, rotated); err != nil {
		s.logger.Error().Err(err).Msg("could not persist refresh token")
	}
	s.logger.Info().Msg("Access token refreshed successfully.")
	return nil
}
