package reviews_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/internal/service/servicetest"
	"github.com/jrsteele09/go-marketplace-client/internal/utils"
	"github.com/jrsteele09/go-marketplace-client/reviews"
	"github.com/jrsteele09/go-marketplace-client/validation"
)

type testFixture struct {
	backend *servicetest.Backend
	reviews *reviews.Service
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	b := servicetest.NewBackend(t)
	return &testFixture{backend: b, reviews: reviews.NewService(b.Gateway, b.Recorder)}
}

func TestCreateEndpointsPerRole(t *testing.T) {
	f := setupTestFixture(t)
	f.backend.Handle(http.MethodPost, "/reviews/", http.StatusCreated, `{"id": 1, "rating": 5}`)
	f.backend.Handle(http.MethodPost, "/reviews/reviews/", http.StatusCreated, `{"id": 2, "rating": 4}`)
	payload := reviews.Payload{Recipient: "sam", Rating: 5, Comment: "Great work"}

	r, err := f.reviews.Create(context.Background(), payload)
	require.NoError(t, err)
	require.Equal(t, int64(1), r.ID)

	r, err = f.reviews.CreateForClient(context.Background(), payload)
	require.NoError(t, err)
	require.Equal(t, int64(2), r.ID)

	require.Equal(t, []string{"Review submitted successfully!", "Review submitted for client successfully!"}, f.backend.Recorder.Messages())
}

func TestCreateValidatesRating(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.reviews.Create(context.Background(), reviews.Payload{Recipient: "sam", Rating: 7, Comment: "ok"})
	var fieldErrs validation.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Equal(t, "Cannot exceed 5.", fieldErrs["rating"])
	require.Empty(t, f.backend.Requests())
}

func TestListFilters(t *testing.T) {
	f := setupTestFixture(t)
	f.backend.Handle(http.MethodGet, "/reviews/reviews/", http.StatusOK, `{"count": 0, "results": []}`)
	f.backend.Handle(http.MethodGet, "/reviews/", http.StatusOK, `{"count": 1, "results": [{"id": 3, "reviewer": {"id": 1, "user_type": "client"}}]}`)

	_, err := f.reviews.ByReviewer(context.Background(), 12, apiclient.ListParams{Ordering: "-created_at"})
	require.NoError(t, err)
	require.Equal(t, "12", f.backend.Last().Query.Get("reviewer_id"))
	require.Equal(t, "-created_at", f.backend.Last().Query.Get("ordering"))

	page, err := f.reviews.Received(context.Background(), "sam", apiclient.ListParams{})
	require.NoError(t, err)
	require.Equal(t, "sam", f.backend.Last().Query.Get("username"))
	require.Equal(t, "client", string(page.Results[0].Reviewer.UserType))
}

func TestUpdateAndDelete(t *testing.T) {
	f := setupTestFixture(t)
	f.backend.Handle(http.MethodPatch, "/reviews/reviews/3/", http.StatusOK, `{"id": 3, "comment": "Edited"}`)

	r, err := f.reviews.Update(context.Background(), 3, reviews.UpdatePayload{Comment: utils.Ptr("Edited")})
	require.NoError(t, err)
	require.Equal(t, "Edited", r.Comment)
	require.Equal(t, map[string]any{"comment": "Edited"}, f.backend.Last().JSON(t))

	err = f.reviews.Delete(context.Background(), 3)
	require.Error(t, err)
	require.Equal(t, []string{"Review updated successfully!", "Error: Not found.", "Failed to delete review."}, f.backend.Recorder.Messages())
}
