package jobs

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/internal/service"
	"github.com/jrsteele09/go-marketplace-client/notify"
	"github.com/jrsteele09/go-marketplace-client/validation"
)

const dashboardSummaryPath = "jobs/dashboard/summary"

// ClientJobList is the results object of /jobs/by-client/.
type ClientJobList struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	JobCount int    `json:"job_count"`
	Jobs     []Job  `json:"jobs"`

	// Total is the count of the pagination envelope.
	Total int `json:"-"`
}

// ApplicationList is the results object of /jobs/{slug}/aplications/ for
// the owning client.
type ApplicationList struct {
	Job       Posting       `json:"job"`
	Responses []Application `json:"responses"`
}

type ClientMetrics struct {
	Activity struct {
		JobsCompleted int `json:"jobs_completed"`
		JobsOpen      int `json:"jobs_open"`
	} `json:"activity"`
	Wallet struct {
		TotalSpent string `json:"total_spent"`
	} `json:"wallet"`
}

// ClientService manages the jobs a client has posted.
type ClientService struct {
	service.Base
}

func NewClientService(doer apiclient.Doer, notifier notify.Notifier, opts ...service.Option) *ClientService {
	return &ClientService{Base: service.NewBase("ClientJobs", doer, notifier, opts...)}
}

func (s *ClientService) Create(ctx context.Context, payload CreatePayload) (*Job, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	job, err := service.Run[Job](ctx, &s.Base, service.Call{
		Op:      "Create",
		Method:  http.MethodPost,
		Path:    "/jobs/create/",
		Body:    payload,
		Success: "Job created successfully!",
		Failure: "Failed to create job.",
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// List returns the jobs posted by the signed in client.
func (s *ClientService) List(ctx context.Context, params apiclient.ListParams) (*ClientJobList, error) {
	env, err := service.Run[struct {
		Count   int           `json:"count"`
		Results ClientJobList `json:"results"`
	}](ctx, &s.Base, service.Call{
		Op:      "List",
		Path:    "/jobs/by-client/",
		Query:   params.Values(),
		Failure: "Failed to load your jobs.",
	})
	if err != nil {
		return nil, err
	}
	list := env.Results
	list.Total = env.Count
	return &list, nil
}

func (s *ClientService) Details(ctx context.Context, slug string) (*Job, error) {
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

// MarkCompleted resends the job with status completed, as the complete
// endpoint validates the whole posting.
func (s *ClientService) MarkCompleted(ctx context.Context, job Job) (*Job, error) {
	body := completion{
		Title:          job.Title,
		Category:       job.CategoryDisplay,
		Description:    job.Description,
		Price:          job.Price,
		DeadlineDate:   job.DeadlineDate,
		SkillsRequired: job.SkillNames(),
		Status:         StatusCompleted,
	}
	updated, err := service.Run[Job](ctx, &s.Base, service.Call{
		Op:      "MarkCompleted",
		Method:  http.MethodPatch,
		Path:    service.Pathf("/jobs/%s/complete/", job.Slug),
		Body:    body,
		Success: "Job marked as completed!",
		Failure: "Failed to mark job as completed.",
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ClientService) Update(ctx context.Context, slug string, payload UpdatePayload) (*Job, error) {
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

func (s *ClientService) Delete(ctx context.Context, slug string) error {
	return service.Exec(ctx, &s.Base, service.Call{
		Op:      "Delete",
		Method:  http.MethodDelete,
		Path:    service.Pathf("/jobs/%s/", slug),
		Success: "Job deleted successfully!",
		Failure: "Failed to delete job.",
	})
}

// Applications lists the responses to a job, each stamped with the job's
// slug, title and payment state.
func (s *ClientService) Applications(ctx context.Context, slug string) (*ApplicationList, error) {
	env, err := service.Run[struct {
		Results ApplicationList `json:"results"`
	}](ctx, &s.Base, service.Call{
		Op:      "Applications",
		Path:    service.Pathf("/jobs/%s/aplications/", slug),
		Failure: "Failed to load job applications.",
	})
	if err != nil {
		return nil, err
	}
	list := env.Results
	for i := range list.Responses {
		list.Responses[i].JobSlug = list.Job.Slug
		list.Responses[i].JobTitle = list.Job.Title
		list.Responses[i].PaymentVerified = list.Job.PaymentVerified
	}
	return &list, nil
}

func (s *ClientService) AcceptApplication(ctx context.Context, slug string, applicationID int64) (json.RawMessage, error) {
	return service.Run[json.RawMessage](ctx, &s.Base, service.Call{
		Op:      "AcceptApplication",
		Method:  http.MethodPost,
		Path:    service.Pathf("/jobs/%s/accept/%d/", slug, applicationID),
		Success: "Application accepted!",
		Failure: "Failed to accept application.",
	})
}

func (s *ClientService) RejectApplication(ctx context.Context, slug string, applicationID int64) (json.RawMessage, error) {
	return service.Run[json.RawMessage](ctx, &s.Base, service.Call{
		Op:      "RejectApplication",
		Method:  http.MethodPost,
		Path:    service.Pathf("/jobs/%s/reject/%d/", slug, applicationID),
		Success: "Application rejected!",
		Failure: "Failed to reject application.",
	})
}

// DashboardMetrics fails silently; the dashboard renders without numbers.
func (s *ClientService) DashboardMetrics(ctx context.Context) (*ClientMetrics, error) {
	env, err := service.Run[struct {
		Summary ClientMetrics `json:"summary"`
	}](ctx, &s.Base, service.Call{
		Op:   "DashboardMetrics",
		Path: dashboardSummaryPath,
	})
	if err != nil {
		return nil, err
	}
	return &env.Summary, nil
}
