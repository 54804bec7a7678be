package authmodel

import "github.com/jrsteele09/go-marketplace-client/users"

// LoginPayload is posted to /auth/login/.
type LoginPayload struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me,omitempty"`
}

type RegisterUser struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// RegisterPayload is what a sign up form collects.
type RegisterPayload struct {
	User                 RegisterUser   `json:"user"`
	Password             string         `json:"password" validate:"required,min=8,password"`
	PasswordConfirmation string         `json:"password_confirmation" validate:"required,eqfield=Password"`
	UserType             users.UserType `json:"user_type" validate:"required,oneof=client freelancer"`
}

// RegisterRequest is the body sent to /auth/register/: the payload plus the
// dual password fields the backend's registration serializer expects.
type RegisterRequest struct {
	RegisterPayload
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

func NewRegisterRequest(p RegisterPayload) RegisterRequest {
	return RegisterRequest{RegisterPayload: p, Password1: p.Password, Password2: p.PasswordConfirmation}
}

// RefreshRequest is posted to /auth/token/refresh/ and /auth/logout/.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// GoogleLoginRequest is posted to /oauth2callback/.
type GoogleLoginRequest struct {
	IDToken  string         `json:"id_token"`
	UserType users.UserType `json:"user_type,omitempty"`
}

type PasswordChangePayload struct {
	NewPassword        string `json:"new_password" validate:"required,min=8,password"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,eqfield=NewPassword"`
}

// PasswordChangeRequest is posted to /auth/password-change/.
type PasswordChangeRequest struct {
	Token        string `json:"token"`
	UID          string `json:"uid"`
	NewPassword1 string `json:"new_password1"`
	NewPassword2 string `json:"new_password2"`
}

type PasswordResetRequestPayload struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirmPayload struct {
	UID                string `json:"uid" validate:"required"`
	Token              string `json:"token" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=8,password"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required,eqfield=NewPassword"`
}

// PasswordResetConfirmRequest is posted to /auth/password-change-confirm/.
type PasswordResetConfirmRequest struct {
	UID          string `json:"uid"`
	Token        string `json:"token"`
	NewPassword1 string `json:"new_password1"`
	NewPassword2 string `json:"new_password2"`
}

type ResendVerificationRequest struct {
	Email string `json:"email"`
}
