package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/form"
	"github.com/jrsteele09/go-marketplace-client/internal/service"
	"github.com/jrsteele09/go-marketplace-client/notify"
)

// ApplyPayload is sent as multipart/form-data.
type ApplyPayload struct {
	CoverLetter *form.File  `json:"cover_letter"`
	CV          *form.File  `json:"cv"`
	Portfolio   []form.File `json:"portfolio"`
	BidAmount   string      `json:"bid_amount,omitempty"`
}

// FreelancerService browses and applies for jobs.
type FreelancerService struct {
	service.Base
}

func NewFreelancerService(doer apiclient.Doer, notifier notify.Notifier, opts ...service.Option) *FreelancerService {
	return &FreelancerService{Base: service.NewBase("FreelancerJobs", doer, notifier, opts...)}
}

func (s *FreelancerService) Available(ctx context.Context, params apiclient.ListParams) (*apiclient.Page[Listing], error) {
	return s.listings(ctx, "Available", "/jobs/list/", params)
}

func (s *FreelancerService) Bookmarked(ctx context.Context, params apiclient.ListParams) (*apiclient.Page[Listing], error) {
	return s.listings(ctx, "Bookmarked", "/bookmarks", params)
}

func (s *FreelancerService) listings(ctx context.Context, op, path string, params apiclient.ListParams) (*apiclient.Page[Listing], error) {
	page, err := service.Run[apiclient.Page[Listing]](ctx, &s.Base, service.Call{
		Op:      op,
		Path:    path,
		Query:   params.Values(),
		Failure: "Failed to load available jobs.",
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *FreelancerService) Details(ctx context.Context, slug string) (*Listing, error) {
	listing, err := service.Run[Listing](ctx, &s.Base, service.Call{
		Op:      "Details",
		Path:    service.Pathf("/jobs/%s/", slug),
		Failure: "Failed to load job details.",
	})
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (s *FreelancerService) Apply(ctx context.Context, slug string, payload ApplyPayload) (*FreelancerApplication, error) {
	app, err := service.Run[FreelancerApplication](ctx, &s.Base, service.Call{
		Op:        "Apply",
		Method:    http.MethodPost,
		Path:      service.Pathf("/jobs/%s/apply/", slug),
		Body:      payload,
		Multipart: true,
		Success:   "Application submitted successfully!",
		Failure:   "Failed to submit application.",
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Applied lists jobs the freelancer applied to. The endpoint answers with
// either a page or a bare list.
func (s *FreelancerService) Applied(ctx context.Context, params apiclient.ListParams) (*apiclient.Page[Listing], error) {
	page, err := service.Run[apiclient.Page[Listing]](ctx, &s.Base, service.Call{
		Op:      "Applied",
		Path:    "/jobs/applied/by-freelancer/",
		Query:   params.Values(),
		Failure: "Failed to load applied jobs.",
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *FreelancerService) MyApplications(ctx context.Context, freelancerID int64, params apiclient.ListParams) (*apiclient.Page[FreelancerApplication], error) {
	page, err := service.Run[apiclient.Page[FreelancerApplication]](ctx, &s.Base, service.Call{
		Op:      "MyApplications",
		Path:    "/jobs/aplications/",
		Query:   params.With("freelancer_id", strconv.FormatInt(freelancerID, 10)).Values(),
		Failure: "Failed to load your applications.",
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *FreelancerService) ApplicationDetails(ctx context.Context, slug string, applicationID int64) (*FreelancerApplication, error) {
	app, err := service.Run[FreelancerApplication](ctx, &s.Base, service.Call{
		Op:      "ApplicationDetails",
		Path:    service.Pathf("/jobs/%s/aplications/%d/", slug, applicationID),
		Failure: "Failed to load application details.",
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *FreelancerService) Bookmark(ctx context.Context, slug string) (json.RawMessage, error) {
	return service.Run[json.RawMessage](ctx, &s.Base, service.Call{
		Op:      "Bookmark",
		Method:  http.MethodPost,
		Path:    service.Pathf("bookmarks/%s/add/", slug),
		Failure: "Failed to bookmark job.",
	})
}

func (s *FreelancerService) RemoveBookmark(ctx context.Context, slug string) (json.RawMessage, error) {
	return service.Run[json.RawMessage](ctx, &s.Base, service.Call{
		Op:      "RemoveBookmark",
		Method:  http.MethodDelete,
		Path:    service.Pathf("bookmarks/%s/remove/", slug),
		Failure: "Failed to remove bookmark.",
	})
}

// DashboardMetrics returns the raw summary object; its shape differs per
// role.
func (s *FreelancerService) DashboardMetrics(ctx context.Context) (json.RawMessage, error) {
	env, err := service.Run[struct {
		Summary json.RawMessage `json:"summary"`
	}](ctx, &s.Base, service.Call{
		Op:   "DashboardMetrics",
		Path: dashboardSummaryPath,
	})
	if err != nil {
		return nil, err
	}
	return env.Summary, nil
}
