package trainings_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/form"
	"github.com/jrsteele09/go-marketplace-client/internal/service/servicetest"
	"github.com/jrsteele09/go-marketplace-client/trainings"
)

type testFixture struct {
	backend   *servicetest.Backend
	trainings *trainings.Service
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	b := servicetest.NewBackend(t)
	return &testFixture{backend: b, trainings: trainings.NewService(b.Gateway, b.Recorder)}
}

func TestCreateWithPDFIsMultipart(t *testing.T) {
	f := setupTestFixture(t)
	f.backend.Handle(http.MethodPost, "/academy/trainings/logo/", http.StatusCreated, `{"id": 1, "slug": "brand-guide", "job": "logo"}`)

	tr, err := f.trainings.Create(context.Background(), "logo", trainings.Payload{
		Title:       "Brand guide",
		Texts:       "Read first",
		PDFDocument: &form.File{Name: "guide.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")},
	})
	require.NoError(t, err)
	require.Equal(t, "brand-guide", tr.Slug)
	require.Equal(t, map[string]string{
		"title":        "Brand guide",
		"texts":        "Read first",
		"pdf_document": "file:guide.pdf",
	}, f.backend.Last().Form)
	require.Equal(t, []string{"Training created successfully!"}, f.backend.Recorder.Messages())
}

func TestUpdateWithoutPDFIsJSON(t *testing.T) {
	f := setupTestFixture(t)
	f.backend.Handle(http.MethodPatch, "/academy/trainings/logo/brand-guide/", http.StatusOK, `{"id": 1, "title": "Brand guide v2"}`)

	tr, err := f.trainings.Update(context.Background(), "logo", "brand-guide", trainings.Payload{Title: "Brand guide v2"})
	require.NoError(t, err)
	require.Equal(t, "Brand guide v2", tr.Title)
	require.Equal(t, map[string]any{"title": "Brand guide v2"}, f.backend.Last().JSON(t))
}

func TestListAndDelete(t *testing.T) {
	f := setupTestFixture(t)
	f.backend.Handle(http.MethodGet, "/academy/trainings/logo/", http.StatusOK, `[{"id": 1}, {"id": 2}]`)
	f.backend.Handle(http.MethodDelete, "/academy/trainings/logo/brand-guide/", http.StatusNoContent, ``)

	page, err := f.trainings.ListForJob(context.Background(), "logo", apiclient.ListParams{})
	require.NoError(t, err)
	require.Equal(t, 2, page.Count)

	require.NoError(t, f.trainings.Delete(context.Background(), "logo", "brand-guide"))
	require.Equal(t, []string{"Training deleted successfully!"}, f.backend.Recorder.Messages())
}

func TestDetailsEscapesSlugs(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.trainings.Details(context.Background(), "logo", "a/b")
	require.Error(t, err)
	require.Equal(t, "/academy/trainings/logo/a%2Fb/", f.backend.Last().Path)
	require.Equal(t, []string{"Error: Not found.", "Failed to load training details."}, f.backend.Recorder.Messages())
}
