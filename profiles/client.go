package profiles

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/form"
	"github.com/jrsteele09/go-marketplace-client/internal/service"
	"github.com/jrsteele09/go-marketplace-client/notify"
	"github.com/jrsteele09/go-marketplace-client/validation"
)

const MsgClientLoadFailed = "Failed to load client profile."

type ClientProfile struct {
	ID                       int64             `json:"id"`
	FullName                 string            `json:"full_name"`
	Profile                  Details           `json:"profile"`
	CompanyName              string            `json:"company_name"`
	CompanyWebsite           string            `json:"company_website"`
	Industry                 string            `json:"industry"`
	ProjectBudget            string            `json:"project_budget"`
	PreferredFreelancerLevel string            `json:"preferred_freelancer_level"`
	Languages                []string          `json:"languages"`
	Slug                     string            `json:"slug"`
	IsVerified               bool              `json:"is_verified"`
	Rating                   float64           `json:"rating"`
	ReviewCount              int               `json:"review_count"`
	RecentReviews            []json.RawMessage `json:"recent_reviews"`
}

// ClientPayload creates or partially updates a client profile. It is sent as
// multipart when a picture is attached.
type ClientPayload struct {
	Phone                    string     `json:"phone,omitempty"`
	Location                 string     `json:"location,omitempty"`
	Bio                      string     `json:"bio,omitempty"`
	CompanyName              string     `json:"company_name,omitempty"`
	CompanyWebsite           string     `json:"company_website,omitempty" validate:"omitempty,url"`
	Industry                 string     `json:"industry,omitempty"`
	ProjectBudget            string     `json:"project_budget,omitempty"`
	PreferredFreelancerLevel string     `json:"preferred_freelancer_level,omitempty"`
	Languages                []string   `json:"languages,omitempty"`
	ProfilePic               *form.File `json:"profile_pic,omitempty"`
}

type ClientService struct {
	service.Base
	syncer syncer
}

// NewClientService builds the client profile service. A fetched profile is
// copied onto the session user with pictures resolved against mediaBaseURL.
func NewClientService(doer apiclient.Doer, notifier notify.Notifier, session UserUpdater, mediaBaseURL string, opts ...service.Option) *ClientService {
	s := &ClientService{Base: service.NewBase("ClientProfile", doer, notifier, opts...)}
	s.syncer = newSyncer(session, mediaBaseURL, &s.Base)
	return s
}

func (s *ClientService) Fetch(ctx context.Context) (*ClientProfile, error) {
	env, err := service.Run[envelope[ClientProfile]](ctx, &s.Base, service.Call{
		Op:      "Fetch",
		Path:    "/clients/me",
		Failure: MsgClientLoadFailed,
	})
	if err != nil {
		return nil, err
	}
	s.syncer.sync(ctx, env.Data.FullName, env.Data.Profile)
	return &env.Data, nil
}

func (s *ClientService) Create(ctx context.Context, payload ClientPayload) (*ClientProfile, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	p, err := service.Run[ClientProfile](ctx, &s.Base, service.Call{
		Op:        "Create",
		Method:    http.MethodPost,
		Path:      "/clients/",
		Body:      payload,
		Multipart: payload.ProfilePic != nil,
		Success:   "Client profile created successfully!",
		Failure:   "Failed to create client profile.",
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update patches the profile, then fetches it again so the session user
// picks up the change. The fetched profile is returned.
func (s *ClientService) Update(ctx context.Context, payload ClientPayload) (*ClientProfile, error) {
	const failure = "Failed to update client profile."
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	_, err := service.Run[json.RawMessage](ctx, &s.Base, service.Call{
		Op:        "Update",
		Method:    http.MethodPatch,
		Path:      "/clients/me/",
		Body:      payload,
		Multipart: payload.ProfilePic != nil,
		Success:   "Client profile updated successfully!",
		Failure:   failure,
	})
	if err != nil {
		return nil, err
	}
	p, err := s.Fetch(ctx)
	if err != nil {
		notify.Error(s.Notifier(), failure)
		return nil, err
	}
	return p, nil
}

func (s *ClientService) Delete(ctx context.Context) error {
	return service.Exec(ctx, &s.Base, service.Call{
		Op:      "Delete",
		Method:  http.MethodDelete,
		Path:    "/client-form/",
		Success: "Client profile deleted successfully!",
		Failure: "Failed to delete client profile.",
	})
}
