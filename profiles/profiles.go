// Package profiles manages the signed in user's own client or freelancer
// profile and keeps the session user in step with it.
package profiles

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-marketplace-client/authmodel"
	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
	"github.com/jrsteele09/go-marketplace-client/internal/service"
	"github.com/jrsteele09/go-marketplace-client/internal/utils"
	"github.com/jrsteele09/go-marketplace-client/users"
)

// UserUpdater is the part of the session store a profile fetch writes to.
type UserUpdater interface {
	UpdateUser(ctx context.Context, fn func(u *users.User)) error
}

// Details is the account block nested in both profile kinds.
type Details struct {
	User       authmodel.PersonRecord `json:"user"`
	Phone      string                 `json:"phone"`
	Location   string                 `json:"location"`
	ProfilePic *string                `json:"profile_pic"`
	Bio        string                 `json:"bio"`
	PayID      string                 `json:"pay_id"`
	PayIDNo    string                 `json:"pay_id_no"`
	IDCard     string                 `json:"id_card"`
	Device     string                 `json:"device"`
	UserType   users.UserType         `json:"user_type"`
}

// envelope is the {"data": ...} wrapper of the "me" endpoints.
type envelope[T any] struct {
	Data T `json:"data"`
}

// syncer copies profile identity fields onto the session user.
type syncer struct {
	session   UserUpdater
	mediaBase string
	logger    *zerolog.Logger
}

func (s syncer) sync(ctx context.Context, fullName string, d Details) {
	if s.session == nil {
		return
	}
	err := s.session.UpdateUser(ctx, func(u *users.User) {
		u.FullName = fullName
		u.Email = d.User.Email
		u.ProfilePhotoURL = utils.MediaURL(s.mediaBase, utils.Value(d.ProfilePic))
	})
	if err != nil && !perrors.Is(err, perrors.ErrNotLoggedIn) {
		s.logger.Warn().Err(err).Msg("could not update session user from profile")
	}
}

func newSyncer(session UserUpdater, mediaBase string, b *service.Base) syncer {
	return syncer{session: session, mediaBase: mediaBase, logger: b.Logger()}
}
