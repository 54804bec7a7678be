package session

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/authmodel"
	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
	"github.com/jrsteele09/go-marketplace-client/notify"
	"github.com/jrsteele09/go-marketplace-client/validation"
)

// ChangePassword sets a new password for the signed in user.
func (s *Store) ChangePassword(ctx context.Context, payload authmodel.PasswordChangePayload) (json.RawMessage, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	snap := s.Snapshot()
	if snap.AccessToken == "" || snap.User == nil {
		return nil, perrors.ErrNotLoggedIn
	}
	body := authmodel.PasswordChangeRequest{
		Token:        snap.AccessToken,
		UID:          snap.User.Username,
		NewPassword1: payload.NewPassword,
		NewPassword2: payload.ConfirmNewPassword,
	}
	return s.post(ctx, "ChangePassword", EndpointPasswordChange, body, "Password updated successfully!")
}

func (s *Store) RequestPasswordReset(ctx context.Context, payload authmodel.PasswordResetRequestPayload) (json.RawMessage, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	return s.post(ctx, "RequestPasswordReset", EndpointPasswordReset, payload, "Password reset email sent.")
}

func (s *Store) ConfirmPasswordReset(ctx context.Context, payload authmodel.PasswordResetConfirmPayload) (json.RawMessage, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	body := authmodel.PasswordResetConfirmRequest{
		UID:          payload.UID,
		Token:        payload.Token,
		NewPassword1: payload.NewPassword,
		NewPassword2: payload.NewPasswordConfirm,
	}
	return s.post(ctx, "ConfirmPasswordReset", EndpointPasswordConfirm, body, "Password reset successful!")
}

func (s *Store) ResendVerificationEmail(ctx context.Context, email string) (json.RawMessage, error) {
	body := authmodel.ResendVerificationRequest{Email: email}
	return s.post(ctx, "ResendVerificationEmail", EndpointResendVerification, body, "Verification email resent.")
}

// post sends an account call with the bearer token attached when there is one.
func (s *Store) post(ctx context.Context, op, path string, body any, success string) (json.RawMessage, error) {
	var ack json.RawMessage
	req := apiclient.Request{Method: http.MethodPost, Path: path, Body: body, Token: s.bearer()}
	if err := s.deps.Transport.Do(ctx, req, &ack); err != nil {
		s.logger.Error().Err(err).Str("op", op).Msg("account request failed")
		notify.Error(s.deps.Notifier, failureMessage(err))
		return nil, errors.Wrapf(err, "[Store.%s]", op)
	}
	notify.Success(s.deps.Notifier, success)
	return ack, nil
}
