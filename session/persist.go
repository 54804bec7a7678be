package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
	"github.com/jrsteele09/go-marketplace-client/storage"
	"github.com/jrsteele09/go-marketplace-client/users"
)

// establish replaces the whole session and persists the three slots.
func (s *Store) establish(ctx context.Context, access, refresh string, expiry time.Time, user *users.User) error {
	s.mu.Lock()
	s.accessToken = access
	s.refreshToken = refresh
	s.expiry = expiry
	s.user = user.Clone()
	s.mu.Unlock()

	if err := s.deps.Repo.Set(ctx, storage.KeyAccessToken, access); err != nil {
		return errors.Wrap(err, "[Store.establish] access token")
	}
	if err := s.deps.Repo.Set(ctx, storage.KeyRefreshToken, refresh); err != nil {
		return errors.Wrap(err, "[Store.establish] refresh token")
	}
	return s.persistUser(ctx, user)
}

func (s *Store) persistUser(ctx context.Context, user *users.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "[Store.persistUser] encode")
	}
	return errors.Wrap(s.deps.Repo.Set(ctx, storage.KeyUser, string(raw)), "[Store.persistUser]")
}

// clear empties memory before storage.
func (s *Store) clear(ctx context.Context) error {
	s.mu.Lock()
	s.accessToken = ""
	s.refreshToken = ""
	s.expiry = time.Time{}
	s.user = nil
	s.mu.Unlock()

	err := s.deps.Repo.Delete(ctx, storage.KeyAccessToken, storage.KeyRefreshToken, storage.KeyUser)
	if err != nil {
		s.logger.Error().Err(err).Msg("could not clear stored session")
		return errors.Wrap(err, "[Store.clear]")
	}
	return nil
}

// load returns "" for a missing or unreadable slot.
func (s *Store) load(ctx context.Context, key string) string {
	v, err := s.deps.Repo.Get(ctx, key)
	if err != nil {
		if !perrors.Is(err, perrors.ErrStorageKeyNotFound) {
			s.logger.Warn().Err(err).Str("slot", key).Msg("could not read stored session")
		}
		return ""
	}
	return v
}

// accessTokenExpiry reads the unverified exp claim, zero when there is none.
func accessTokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
