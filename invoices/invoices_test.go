package invoices_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/internal/service/servicetest"
	"github.com/jrsteele09/go-marketplace-client/invoices"
)

type testFixture struct {
	backend  *servicetest.Backend
	invoices *invoices.Service
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	b := servicetest.NewBackend(t)
	return &testFixture{backend: b, invoices: invoices.NewService(b.Gateway, b.Recorder)}
}

func TestListAllSendsFilters(t *testing.T) {
	f := setupTestFixture(t)
	f.backend.Handle(http.MethodGet, "/invoice/", http.StatusOK,
		`{"count": 1, "next": null, "previous": null, "results": [{"id": 3, "invoice_number": "INV-003", "total_amount": "12500.5"}]}`)

	page, err := f.invoices.ListAll(context.Background(), apiclient.ListParams{
		Filters: map[string]string{"due_date_after": "2025-01-01", "client_id": "4"},
	})
	require.NoError(t, err)
	require.Equal(t, "INV-003", page.Results[0].InvoiceNumber)
	require.Equal(t, "Ksh 12,500.50", page.Results[0].Total())

	q := f.backend.Last().Query
	require.Equal(t, "2025-01-01", q.Get("due_date_after"))
	require.Equal(t, "4", q.Get("client_id"))
}

func TestCreateAndUpdate(t *testing.T) {
	f := setupTestFixture(t)
	f.backend.Handle(http.MethodPost, "/invoice/", http.StatusCreated, `{"id": 8, "status": "draft"}`)
	f.backend.Handle(http.MethodPatch, "/invoice/8/", http.StatusOK, `{"id": 8, "status": "sent"}`)

	inv, err := f.invoices.Create(context.Background(), invoices.Payload{
		DueDate:   "2025-05-01",
		LineItems: []invoices.LineItem{{Description: "Design", Quantity: 2, Rate: "100.00", Amount: "200.00"}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(8), inv.ID)

	inv, err = f.invoices.Update(context.Background(), inv.ID, invoices.Payload{Status: "sent"})
	require.NoError(t, err)
	require.Equal(t, "sent", inv.Status)
	require.Equal(t, map[string]any{"status": "sent"}, f.backend.Last().JSON(t))
	require.Equal(t, []string{"Invoice created successfully!", "Invoice updated successfully!"}, f.backend.Recorder.Messages())
}

func TestDetailsFailure(t *testing.T) {
	f := setupTestFixture(t)
	f.backend.Handle(http.MethodGet, "/invoice/99/", http.StatusInternalServerError, `{}`)

	_, err := f.invoices.Details(context.Background(), 99)
	require.Error(t, err)
	require.Equal(t, []string{apiclient.MsgServerError, "Failed to load invoice details."}, f.backend.Recorder.Messages())
}

func TestDelete(t *testing.T) {
	f := setupTestFixture(t)
	f.backend.Handle(http.MethodDelete, "/invoice/8/", http.StatusNoContent, ``)

	require.NoError(t, f.invoices.Delete(context.Background(), 8))
	require.Equal(t, []string{"Invoice deleted successfully!"}, f.backend.Recorder.Messages())
}
