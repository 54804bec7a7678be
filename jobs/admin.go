package jobs

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/internal/service"
	"github.com/jrsteele09/go-marketplace-client/notify"
)

// AdminService moderates every job on the platform.
type AdminService struct {
	service.Base
}

func NewAdminService(doer apiclient.Doer, notifier notify.Notifier, opts ...service.Option) *AdminService {
	return &AdminService{Base: service.NewBase("AdminJobs", doer, notifier, opts...)}
}

func (s *AdminService) List(ctx context.Context, params apiclient.ListParams) (*apiclient.Page[Job], error) {
	page, err := service.Run[apiclient.Page[Job]](ctx, &s.Base, service.Call{
		Op:      "List",
		Path:    "/jobs/list/",
		Query:   params.Values(),
		Failure: "Failed to load all jobs.",
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *AdminService) Details(ctx context.Context, slug string) (*Job, error) {
	job, err := service.Run[Job](ctx, &s.Base, service.Call{
		Op:      "Details",
		Path:    service.Pathf("/jobs/%s/", slug),
		Failure: "Failed to load job details.",
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *AdminService) Update(ctx context.Context, slug string, payload UpdatePayload) (*Job, error) {
	job, err := service.Run[Job](ctx, &s.Base, service.Call{
		Op:      "Update",
		Method:  http.MethodPatch,
		Path:    service.Pathf("/jobs/%s/", slug),
		Body:    payload,
		Success: "Job updated successfully!",
		Failure: "Failed to update job.",
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *AdminService) Delete(ctx context.Context, slug string) error {
	return service.Exec(ctx, &s.Base, service.Call{
		Op:      "Delete",
		Method:  http.MethodDelete,
		Path:    service.Pathf("/jobs/%s/", slug),
		Success: "Job deleted successfully!",
		Failure: "Failed to delete job.",
	})
}

func (s *AdminService) Applications(ctx context.Context, slug string, params apiclient.ListParams) (*apiclient.Page[FreelancerApplication], error) {
	page, err := service.Run[apiclient.Page[FreelancerApplication]](ctx, &s.Base, service.Call{
		Op:      "Applications",
		Path:    service.Pathf("/jobs/%s/aplications/", slug),
		Query:   params.Values(),
		Failure: "Failed to load job applications.",
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}
