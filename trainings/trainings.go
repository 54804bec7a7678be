package trainings

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/form"
	"github.com/jrsteele09/go-marketplace-client/internal/service"
	"github.com/jrsteele09/go-marketplace-client/notify"
)

// Training is course material a client attaches to a job.
type Training struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Texts       string  `json:"texts"`
	PDFDocument *string `json:"pdf_document"`
	VideoURL    *string `json:"video_url"`
	URL         string  `json:"url"`
	Job         string  `json:"job"`
	Client      int64   `json:"client"`
	Slug        string  `json:"slug"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// Payload creates or updates a training. It goes out as multipart when a
// PDF is attached.
type Payload struct {
	Title       string     `json:"title,omitempty"`
	Texts       string     `json:"texts,omitempty"`
	PDFDocument *form.File `json:"pdf_document,omitempty"`
	VideoURL    *string    `json:"video_url,omitempty"`
}

type Service struct {
	service.Base
}

func NewService(doer apiclient.Doer, notifier notify.Notifier, opts ...service.Option) *Service {
	return &Service{Base: service.NewBase("Trainings", doer, notifier, opts...)}
}

func (s *Service) ListForJob(ctx context.Context, jobSlug string, params apiclient.ListParams) (*apiclient.Page[Training], error) {
	page, err := service.Run[apiclient.Page[Training]](ctx, &s.Base, service.Call{
		Op:      "ListForJob",
		Path:    service.Pathf("/academy/trainings/%s/", jobSlug),
		Query:   params.Values(),
		Failure: "Failed to load trainings.",
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Service) Details(ctx context.Context, jobSlug, trainingSlug string) (*Training, error) {
	return s.one(ctx, service.Call{
		Op:      "Details",
		Path:    service.Pathf("/academy/trainings/%s/%s/", jobSlug, trainingSlug),
		Failure: "Failed to load training details.",
	})
}

func (s *Service) Create(ctx context.Context, jobSlug string, payload Payload) (*Training, error) {
	return s.one(ctx, service.Call{
		Op:        "Create",
		Method:    http.MethodPost,
		Path:      service.Pathf("/academy/trainings/%s/", jobSlug),
		Body:      payload,
		Multipart: payload.PDFDocument != nil,
		Success:   "Training created successfully!",
		Failure:   "Failed to create training.",
	})
}

func (s *Service) Update(ctx context.Context, jobSlug, trainingSlug string, payload Payload) (*Training, error) {
	return s.one(ctx, service.Call{
		Op:        "Update",
		Method:    http.MethodPatch,
		Path:      service.Pathf("/academy/trainings/%s/%s/", jobSlug, trainingSlug),
		Body:      payload,
		Multipart: payload.PDFDocument != nil,
		Success:   "Training updated successfully!",
		Failure:   "Failed to update training.",
	})
}

func (s *Service) Delete(ctx context.Context, jobSlug, trainingSlug string) error {
	return service.Exec(ctx, &s.Base, service.Call{
		Op:      "Delete",
		Method:  http.MethodDelete,
		Path:    service.Pathf("/academy/trainings/%s/%s/", jobSlug, trainingSlug),
		Success: "Training deleted successfully!",
		Failure: "Failed to delete training.",
	})
}

func (s *Service) one(ctx context.Context, c service.Call) (*Training, error) {
	t, err := service.Run[Training](ctx, &s.Base, c)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
