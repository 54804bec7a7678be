package accounts_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-marketplace-client/accounts"
	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/internal/service/servicetest"
	"github.com/jrsteele09/go-marketplace-client/internal/utils"
	"github.com/jrsteele09/go-marketplace-client/validation"
)

type testFixture struct {
	backend  *servicetest.Backend
	accounts *accounts.Service
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	b := servicetest.NewBackend(t)
	return &testFixture{backend: b, accounts: accounts.NewService(b.Gateway, b.Recorder)}
}

func TestListAndDetails(t *testing.T) {
	f := setupTestFixture(t)
	f.backend.Handle(http.MethodGet, "/accounts/users/", http.StatusOK, `{"count": 1, "results": [{"id": 5, "username": "jane", "first_name": "Jane", "last_name": "Doe"}]}`)
	f.backend.Handle(http.MethodGet, "/accounts/users/5/", http.StatusOK, `{"id": 5, "username": "jane", "user_type": "client", "is_active": true}`)

	page, err := f.accounts.List(context.Background(), apiclient.ListParams{Search: "jane", Ordering: "username"})
	require.NoError(t, err)
	require.Equal(t, "jane", f.backend.Last().Query.Get("search"))
	require.Equal(t, "Jane Doe", page.Results[0].FullName())

	a, err := f.accounts.Details(context.Background(), 5)
	require.NoError(t, err)
	require.True(t, a.IsActive)
	require.Equal(t, "client", string(a.UserType))
	require.Empty(t, f.backend.Recorder.Messages())
}

func TestCreateValidates(t *testing.T) {
	tests := []struct {
		name    string
		payload accounts.CreatePayload
		field   string
		message string
	}{
		{"missing username", accounts.CreatePayload{Email: "a@b.co"}, "username", validation.MsgRequired},
		{"bad email", accounts.CreatePayload{Username: "a", Email: "nope"}, "email", validation.MsgEmailFormat},
		{"short password", accounts.CreatePayload{Username: "a", Email: "a@b.co", Password: "Ab1!"}, "password", "Must be at least 8 characters long."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTestFixture(t)

			_, err := f.accounts.Create(context.Background(), tt.payload)
			var fieldErrs validation.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Equal(t, tt.message, fieldErrs[tt.field])
			require.Empty(t, f.backend.Requests())
		})
	}
}

func TestCreateUpdateDelete(t *testing.T) {
	f := setupTestFixture(t)
	f.backend.Handle(http.MethodPost, "/accounts/users/", http.StatusCreated, `{"id": 6, "username": "sam"}`)
	f.backend.Handle(http.MethodPatch, "/accounts/users/6/", http.StatusOK, `{"id": 6, "username": "sam", "email": "sam@new.example.com"}`)
	f.backend.Handle(http.MethodDelete, "/accounts/users/6/", http.StatusNoContent, ``)

	a, err := f.accounts.Create(context.Background(), accounts.CreatePayload{Username: "sam", Email: "sam@example.com"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"username": "sam", "email": "sam@example.com"}, f.backend.Last().JSON(t))

	a, err = f.accounts.Update(context.Background(), a.ID, accounts.UpdatePayload{Email: utils.Ptr("sam@new.example.com")})
	require.NoError(t, err)
	require.Equal(t, "sam@new.example.com", a.Email)
	require.Equal(t, map[string]any{"email": "sam@new.example.com"}, f.backend.Last().JSON(t))

	require.NoError(t, f.accounts.Delete(context.Background(), a.ID))
	require.Equal(t, []string{"User created successfully!", "User updated successfully!", "User deleted successfully!"}, f.backend.Recorder.Messages())
}

func TestProfilesForUser(t *testing.T) {
	f := setupTestFixture(t)
	f.backend.Handle(http.MethodGet, "/client-form/5/", http.StatusOK, `{"id": 2, "full_name": "Jane Doe", "company_name": "Acme"}`)

	cp, err := f.accounts.ClientProfile(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, "Acme", cp.CompanyName)

	_, err = f.accounts.FreelancerProfile(context.Background(), 5)
	require.Error(t, err)
	require.Equal(t, "/freelancer-form/5/", f.backend.Last().Path)
	require.Equal(t, []string{"Error: Not found.", "Failed to load freelancer profile."}, f.backend.Recorder.Messages())
}

func TestDeleteServerError(t *testing.T) {
	f := setupTestFixture(t)
	f.backend.Handle(http.MethodDelete, "/accounts/users/9/", http.StatusInternalServerError, ``)

	err := f.accounts.Delete(context.Background(), 9)
	require.Error(t, err)
	require.Contains(t, err.Error(), "[Accounts.Delete]")
	require.Equal(t, []string{apiclient.MsgServerError, "Failed to delete user."}, f.backend.Recorder.Messages())
}
