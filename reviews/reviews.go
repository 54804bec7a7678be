package reviews

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/internal/service"
	"github.com/jrsteele09/go-marketplace-client/notify"
	"github.com/jrsteele09/go-marketplace-client/users"
	"github.com/jrsteele09/go-marketplace-client/validation"
)

type Party struct {
	ID              int64          `json:"id"`
	Email           string         `json:"email"`
	FullName        string         `json:"full_name,omitempty"`
	UserType        users.UserType `json:"user_type"`
	ProfilePhotoURL *string        `json:"profile_photo_url,omitempty"`
}

type Review struct {
	ID               int64  `json:"id"`
	Recipient        string `json:"recipient"`
	Rating           int    `json:"rating"`
	Comment          string `json:"comment"`
	Reviewer         Party  `json:"reviewer"`
	RecipientDetails Party  `json:"recipient_details"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

type Payload struct {
	Recipient string `json:"recipient" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required"`
}

type UpdatePayload struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

const (
	reviewsPath  = "/reviews/"
	detailedPath = "/reviews/reviews/"
)

type Service struct {
	service.Base
}

func NewService(doer apiclient.Doer, notifier notify.Notifier, opts ...service.Option) *Service {
	return &Service{Base: service.NewBase("Reviews", doer, notifier, opts...)}
}

// Create is a client reviewing a freelancer.
func (s *Service) Create(ctx context.Context, payload Payload) (*Review, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	return s.one(ctx, service.Call{
		Op:      "Create",
		Method:  http.MethodPost,
		Path:    reviewsPath,
		Body:    payload,
		Success: "Review submitted successfully!",
		Failure: "Failed to submit review.",
	})
}

// CreateForClient is a freelancer reviewing a client.
func (s *Service) CreateForClient(ctx context.Context, payload Payload) (*Review, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	return s.one(ctx, service.Call{
		Op:      "CreateForClient",
		Method:  http.MethodPost,
		Path:    detailedPath,
		Body:    payload,
		Success: "Review submitted for client successfully!",
		Failure: "Failed to submit review for client.",
	})
}

// ByReviewer lists the reviews a client has written.
func (s *Service) ByReviewer(ctx context.Context, reviewerID int64, params apiclient.ListParams) (*apiclient.Page[Review], error) {
	return s.list(ctx, "ByReviewer", detailedPath, params.With("reviewer_id", strconv.FormatInt(reviewerID, 10)), "Failed to load your reviews.")
}

func (s *Service) Received(ctx context.Context, username string, params apiclient.ListParams) (*apiclient.Page[Review], error) {
	return s.list(ctx, "Received", reviewsPath, params.With("username", username), "Failed to load your received reviews.")
}

// Given uses the same endpoint and filter as Received.
// TODO: switch to a reviewer filter once the backend exposes given reviews separately.
func (s *Service) Given(ctx context.Context, username string, params apiclient.ListParams) (*apiclient.Page[Review], error) {
	return s.list(ctx, "Given", reviewsPath, params.With("username", username), "Failed to load your received reviews.")
}

// ListAll is the admin listing, filterable by reviewer_id, recipient_id,
// job_id and rating.
func (s *Service) ListAll(ctx context.Context, params apiclient.ListParams) (*apiclient.Page[Review], error) {
	return s.list(ctx, "ListAll", detailedPath, params, "Failed to load all reviews.")
}

func (s *Service) Details(ctx context.Context, id int64) (*Review, error) {
	return s.one(ctx, service.Call{
		Op:      "Details",
		Path:    service.Pathf("/reviews/reviews/%d/", id),
		Failure: "Failed to load review details.",
	})
}

func (s *Service) Update(ctx context.Context, id int64, payload UpdatePayload) (*Review, error) {
	return s.one(ctx, service.Call{
		Op:      "Update",
		Method:  http.MethodPatch,
		Path:    service.Pathf("/reviews/reviews/%d/", id),
		Body:    payload,
		Success: "Review updated successfully!",
		Failure: "Failed to update review.",
	})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return service.Exec(ctx, &s.Base, service.Call{
		Op:      "Delete",
		Method:  http.MethodDelete,
		Path:    service.Pathf("/reviews/reviews/%d/", id),
		Success: "Review deleted successfully!",
		Failure: "Failed to delete review.",
	})
}

func (s *Service) list(ctx context.Context, op, path string, params apiclient.ListParams, failure string) (*apiclient.Page[Review], error) {
	page, err := service.Run[apiclient.Page[Review]](ctx, &s.Base, service.Call{
		Op:      op,
		Path:    path,
		Query:   params.Values(),
		Failure: failure,
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Service) one(ctx context.Context, c service.Call) (*Review, error) {
	r, err := service.Run[Review](ctx, &s.Base, c)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
