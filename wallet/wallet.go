package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/format"
	"github.com/jrsteele09/go-marketplace-client/internal/service"
	"github.com/jrsteele09/go-marketplace-client/navigation"
	"github.com/jrsteele09/go-marketplace-client/notify"
)

const (
	MsgRedirecting     = "Redirecting to payment gateway..."
	MsgNoRedirect      = "Payment initiation successful, but no redirect URL provided."
	MsgInitiateFailure = "Failed to initiate payment."
)

type Summary struct {
	CurrentBalance string `json:"current_balance"`
	TotalEarned    string `json:"total_earned"`
	TotalSpent     string `json:"total_spent"`
}

// LedgerID is a string on client transactions and a number on
// freelancer ones.
type LedgerID string

func (id *LedgerID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = LedgerID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = LedgerID(n.String())
	return nil
}

// Transaction covers both the client and the freelancer ledger shapes.
type Transaction struct {
	ID              LedgerID        `json:"id"`
	User            int64           `json:"user,omitempty"`
	TransactionType string          `json:"transaction_type,omitempty"`
	Rate            string          `json:"rate,omitempty"`
	PaymentType     *string         `json:"payment_type,omitempty"`
	TransactionID   *string         `json:"transaction_id,omitempty"`
	Amount          string          `json:"amount"`
	GrossAmount     string          `json:"gross_amount,omitempty"`
	NetEarning      float64         `json:"net_earning,omitempty"`
	Status          string          `json:"status"`
	Source          string          `json:"source,omitempty"`
	Verified        bool            `json:"verified,omitempty"`
	Completed       bool            `json:"completed,omitempty"`
	Job             int64           `json:"job,omitempty"`
	JobID           int64           `json:"job_id,omitempty"`
	JobTitle        string          `json:"job_title"`
	CreatedAt       string          `json:"created_at,omitempty"`
	Timestamp       string          `json:"timestamp,omitempty"`
	ExtraData       json.RawMessage `json:"extra_data,omitempty"`
}

func (t Transaction) DisplayAmount() string {
	return format.Amount(t.Amount)
}

// Initiation is what the payment endpoints answer with. Only one of the
// URLs is set, depending on the provider.
type Initiation struct {
	PayPalURL        string          `json:"paypal_url,omitempty"`
	AuthorizationURL string          `json:"authorization_url,omitempty"`
	Raw              json.RawMessage `json:"-"`
}

type Service struct {
	service.Base
	navigator navigation.Navigator
}

// NewService takes the navigator used to leave for the payment provider.
func NewService(doer apiclient.Doer, notifier notify.Notifier, navigator navigation.Navigator, opts ...service.Option) *Service {
	if navigator == nil {
		navigator = navigation.Discard
	}
	return &Service{
		Base:      service.NewBase("Wallet", doer, notifier, opts...),
		navigator: navigator,
	}
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	sum, err := service.Run[Summary](ctx, &s.Base, service.Call{
		Op:      "Summary",
		Path:    "/wallet/summary/",
		Failure: "Failed to load wallet summary.",
	})
	if err != nil {
		return nil, err
	}
	return &sum, nil
}

// Transactions lists the signed in user's ledger.
func (s *Service) Transactions(ctx context.Context, params apiclient.ListParams) (*apiclient.Page[Transaction], error) {
	return s.transactions(ctx, "Transactions", params, "Failed to load wallet transactions.")
}

// AllTransactions is the admin ledger, filterable by transaction_type,
// user_id, start_date and end_date.
func (s *Service) AllTransactions(ctx context.Context, params apiclient.ListParams) (*apiclient.Page[Transaction], error) {
	return s.transactions(ctx, "AllTransactions", params, "Failed to load all transactions.")
}

func (s *Service) transactions(ctx context.Context, op string, params apiclient.ListParams, failure string) (*apiclient.Page[Transaction], error) {
	page, err := service.Run[apiclient.Page[Transaction]](ctx, &s.Base, service.Call{
		Op:      op,
		Path:    "/wallet/transactions/",
		Query:   params.Values(),
		Failure: failure,
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// PayWithPayPal starts a PayPal checkout for a job and sends the user to it.
func (s *Service) PayWithPayPal(ctx context.Context, jobSlug string) (*Initiation, error) {
	started, err := s.initiate(ctx, "PayWithPayPal", http.MethodPost, service.Pathf("/payments/initiate/%s/", jobSlug))
	if err != nil {
		return nil, err
	}
	if started.PayPalURL == "" {
		s.noRedirect(started)
		return started, nil
	}
	s.navigator.NavigateTo(started.PayPalURL)
	notify.Info(s.Notifier(), MsgRedirecting)
	return started, nil
}

// PayWithPaystack starts a Paystack checkout for a job and sends the user to
// it.
func (s *Service) PayWithPaystack(ctx context.Context, jobSlug string) (*Initiation, error) {
	started, err := s.initiate(ctx, "PayWithPaystack", http.MethodGet, service.Pathf("/payment/initiate/%s/", jobSlug))
	if err != nil {
		return nil, err
	}
	if started.AuthorizationURL == "" {
		s.noRedirect(started)
		return started, nil
	}
	notify.Info(s.Notifier(), MsgRedirecting)
	s.navigator.NavigateTo(started.AuthorizationURL)
	return started, nil
}

func (s *Service) initiate(ctx context.Context, op, method, path string) (*Initiation, error) {
	raw, err := service.Run[json.RawMessage](ctx, &s.Base, service.Call{
		Op:      op,
		Method:  method,
		Path:    path,
		Failure: MsgInitiateFailure,
	})
	if err != nil {
		return nil, err
	}
	started := Initiation{Raw: raw}
	if len(raw) > 0 {
		// a non-object answer simply carries no redirect
		_ = json.Unmarshal(raw, &started)
	}
	return &started, nil
}

func (s *Service) noRedirect(started *Initiation) {
	notify.Warning(s.Notifier(), MsgNoRedirect)
	s.Logger().Warn().Str("response", string(started.Raw)).Msg("Payment initiation response did not contain a redirect URL")
}
