package invoices

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/format"
	"github.com/jrsteele09/go-marketplace-client/internal/service"
	"github.com/jrsteele09/go-marketplace-client/notify"
	"github.com/jrsteele09/go-marketplace-client/users"
)

type LineItem struct {
	ID          int64  `json:"id,omitempty"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
}

type Invoice struct {
	ID            int64          `json:"id"`
	InvoiceNumber string         `json:"invoice_number"`
	InvoiceDate   string         `json:"invoice_date"`
	DueDate       string         `json:"due_date"`
	TotalAmount   string         `json:"total_amount"`
	Status        string         `json:"status"`
	Notes         string         `json:"notes"`
	UserType      users.UserType `json:"user_type"`
	LineItems     []LineItem     `json:"line_items"`
}

// Total renders TotalAmount in shillings.
func (i Invoice) Total() string {
	return format.Amount(i.TotalAmount)
}

type Payload struct {
	InvoiceDate string     `json:"invoice_date,omitempty"`
	DueDate     string     `json:"due_date,omitempty"`
	Status      string     `json:"status,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	LineItems   []LineItem `json:"line_items,omitempty"`
}

// Service works on invoices. Clients see their own, admins see all of them.
type Service struct {
	service.Base
}

func NewService(doer apiclient.Doer, notifier notify.Notifier, opts ...service.Option) *Service {
	return &Service{Base: service.NewBase("Invoices", doer, notifier, opts...)}
}

func (s *Service) List(ctx context.Context, params apiclient.ListParams) (*apiclient.Page[Invoice], error) {
	return s.list(ctx, "List", params, "Failed to load invoices.")
}

// ListAll is the admin listing; params may carry date range and client_id
// filters.
func (s *Service) ListAll(ctx context.Context, params apiclient.ListParams) (*apiclient.Page[Invoice], error) {
	return s.list(ctx, "ListAll", params, "Failed to load all invoices.")
}

func (s *Service) list(ctx context.Context, op string, params apiclient.ListParams, failure string) (*apiclient.Page[Invoice], error) {
	page, err := service.Run[apiclient.Page[Invoice]](ctx, &s.Base, service.Call{
		Op:      op,
		Path:    "/invoice/",
		Query:   params.Values(),
		Failure: failure,
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Service) Details(ctx context.Context, id int64) (*Invoice, error) {
	return s.one(ctx, service.Call{
		Op:      "Details",
		Path:    service.Pathf("/invoice/%d/", id),
		Failure: "Failed to load invoice details.",
	})
}

func (s *Service) Create(ctx context.Context, payload Payload) (*Invoice, error) {
	return s.one(ctx, service.Call{
		Op:      "Create",
		Method:  http.MethodPost,
		Path:    "/invoice/",
		Body:    payload,
		Success: "Invoice created successfully!",
		Failure: "Failed to create invoice.",
	})
}

func (s *Service) Update(ctx context.Context, id int64, payload Payload) (*Invoice, error) {
	return s.one(ctx, service.Call{
		Op:      "Update",
		Method:  http.MethodPatch,
		Path:    service.Pathf("/invoice/%d/", id),
		Body:    payload,
		Success: "Invoice updated successfully!",
		Failure: "Failed to update invoice.",
	})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return service.Exec(ctx, &s.Base, service.Call{
		Op:      "Delete",
		Method:  http.MethodDelete,
		Path:    service.Pathf("/invoice/%d/", id),
		Success: "Invoice deleted successfully!",
		Failure: "Failed to delete invoice.",
	})
}

func (s *Service) one(ctx context.Context, c service.Call) (*Invoice, error) {
	inv, err := service.Run[Invoice](ctx, &s.Base, c)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
