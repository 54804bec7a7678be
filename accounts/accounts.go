// Package accounts is the admin user directory.
package accounts

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/internal/service"
	"github.com/jrsteele09/go-marketplace-client/notify"
	"github.com/jrsteele09/go-marketplace-client/profiles"
	"github.com/jrsteele09/go-marketplace-client/users"
	"github.com/jrsteele09/go-marketplace-client/validation"
)

// Account is a user record as the admin endpoints return it.
type Account struct {
	ID         int64          `json:"id"`
	Username   string         `json:"username"`
	Email      string         `json:"email"`
	FirstName  string         `json:"first_name"`
	LastName   string         `json:"last_name"`
	UserType   users.UserType `json:"user_type,omitempty"`
	IsActive   bool           `json:"is_active"`
	IsStaff    bool           `json:"is_staff"`
	DateJoined string         `json:"date_joined,omitempty"`
}

func (a Account) FullName() string {
	return users.FullName(a.FirstName, a.LastName)
}

type CreatePayload struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password,omitempty" validate:"omitempty,min=8,password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type UpdatePayload struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

type Service struct {
	service.Base
}

func NewService(doer apiclient.Doer, notifier notify.Notifier, opts ...service.Option) *Service {
	return &Service{Base: service.NewBase("Accounts", doer, notifier, opts...)}
}

// List accepts search, page and ordering.
func (s *Service) List(ctx context.Context, params apiclient.ListParams) (*apiclient.Page[Account], error) {
	page, err := service.Run[apiclient.Page[Account]](ctx, &s.Base, service.Call{
		Op:      "List",
		Path:    "/accounts/users/",
		Query:   params.Values(),
		Failure: "Failed to load user list.",
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Service) Details(ctx context.Context, userID int64) (*Account, error) {
	return s.one(ctx, service.Call{
		Op:      "Details",
		Path:    service.Pathf("/accounts/users/%d/", userID),
		Failure: "Failed to load user details.",
	})
}

func (s *Service) Create(ctx context.Context, payload CreatePayload) (*Account, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	return s.one(ctx, service.Call{
		Op:      "Create",
		Method:  http.MethodPost,
		Path:    "/accounts/users/",
		Body:    payload,
		Success: "User created successfully!",
		Failure: "Failed to create user account.",
	})
}

func (s *Service) Update(ctx context.Context, userID int64, payload UpdatePayload) (*Account, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	return s.one(ctx, service.Call{
		Op:      "Update",
		Method:  http.MethodPatch,
		Path:    service.Pathf("/accounts/users/%d/", userID),
		Body:    payload,
		Success: "User updated successfully!",
		Failure: "Failed to update user.",
	})
}

func (s *Service) Delete(ctx context.Context, userID int64) error {
	return service.Exec(ctx, &s.Base, service.Call{
		Op:      "Delete",
		Method:  http.MethodDelete,
		Path:    service.Pathf("/accounts/users/%d/", userID),
		Success: "User deleted successfully!",
		Failure: "Failed to delete user.",
	})
}

func (s *Service) ClientProfile(ctx context.Context, userID int64) (*profiles.ClientProfile, error) {
	p, err := service.Run[profiles.ClientProfile](ctx, &s.Base, service.Call{
		Op:      "ClientProfile",
		Path:    service.Pathf("/client-form/%d/", userID),
		Failure: profiles.MsgClientLoadFailed,
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) FreelancerProfile(ctx context.Context, userID int64) (*profiles.FreelancerProfile, error) {
	p, err := service.Run[profiles.FreelancerProfile](ctx, &s.Base, service.Call{
		Op:      "FreelancerProfile",
		Path:    service.Pathf("/freelancer-form/%d/", userID),
		Failure: "Failed to load freelancer profile.",
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) one(ctx context.Context, c service.Call) (*Account, error) {
	a, err := service.Run[Account](ctx, &s.Base, c)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
