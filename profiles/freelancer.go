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

type Availability string

const (
	AvailabilityFullTime     Availability = "full_time"
	AvailabilityPartTime     Availability = "part_time"
	AvailabilityHourly       Availability = "hourly"
	AvailabilityAsNeeded     Availability = "as_needed"
	AvailabilityCustom       Availability = "custom"
	AvailabilityNotAvailable Availability = "not_available"
)

type FreelancerProfile struct {
	ID                int64             `json:"id"`
	FullName          string            `json:"full_name"`
	Profile           Details           `json:"profile"`
	ExperienceYears   int               `json:"experience_years"`
	HourlyRate        string            `json:"hourly_rate"`
	PortfolioLink     string            `json:"portfolio_link"`
	Availability      Availability      `json:"availability"`
	Languages         []json.RawMessage `json:"languages"`
	Skills            []json.RawMessage `json:"skills"`
	IsVisible         bool              `json:"is_visible"`
	Slug              string            `json:"slug"`
	Rating            float64           `json:"rating"`
	ReviewCount       int               `json:"review_count"`
	RecentReviews     []json.RawMessage `json:"recent_reviews"`
	PortfolioProjects []json.RawMessage `json:"portfolio_projects"`
}

// FreelancerCreatePayload takes skill and language ids from the catalog.
type FreelancerCreatePayload struct {
	ProfilePicture *string  `json:"profile_picture"`
	Bio            string   `json:"bio"`
	HourlyRate     string   `json:"hourly_rate" validate:"required"`
	Country        string   `json:"country"`
	City           string   `json:"city"`
	Address        string   `json:"address"`
	PostalCode     string   `json:"postal_code"`
	PhoneNumber    string   `json:"phone_number" validate:"required"`
	Skills         []int64  `json:"skills" validate:"min=1"`
	Languages      []int64  `json:"languages" validate:"min=1"`
	PortfolioLinks []string `json:"portfolio_links" validate:"dive,url"`
}

// FreelancerUpdatePayload is sent with PUT. Skills and languages are names
// here. A new picture makes the request multipart.
type FreelancerUpdatePayload struct {
	Phone           string       `json:"phone,omitempty"`
	Location        string       `json:"location,omitempty"`
	ProfilePicture  *form.File   `json:"profile_picture,omitempty"`
	Bio             string       `json:"bio,omitempty"`
	ExperienceYears *int         `json:"experience_years,omitempty" validate:"omitempty,gte=0"`
	HourlyRate      *float64     `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
	Availability    Availability `json:"availability,omitempty" validate:"omitempty,oneof=full_time part_time custom not_available"`
	Skills          []string     `json:"skills,omitempty"`
	Languages       []string     `json:"languages,omitempty"`
	IsVisible       *bool        `json:"is_visible,omitempty"`
	PortfolioLink   string       `json:"portfolio_link,omitempty" validate:"omitempty,url"`
}

type FreelancerService struct {
	service.Base
	syncer syncer
}

func NewFreelancerService(doer apiclient.Doer, notifier notify.Notifier, session UserUpdater, mediaBaseURL string, opts ...service.Option) *FreelancerService {
	s := &FreelancerService{Base: service.NewBase("FreelancerProfile", doer, notifier, opts...)}
	s.syncer = newSyncer(session, mediaBaseURL, &s.Base)
	return s
}

func (s *FreelancerService) Fetch(ctx context.Context) (*FreelancerProfile, error) {
	env, err := service.Run[envelope[FreelancerProfile]](ctx, &s.Base, service.Call{
		Op:      "Fetch",
		Path:    "/freelance/me",
		Failure: "Failed to load your profile.",
	})
	if err != nil {
		return nil, err
	}
	s.syncer.sync(ctx, env.Data.FullName, env.Data.Profile)
	return &env.Data, nil
}

func (s *FreelancerService) Create(ctx context.Context, payload FreelancerCreatePayload) (*FreelancerProfile, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	p, err := service.Run[FreelancerProfile](ctx, &s.Base, service.Call{
		Op:      "Create",
		Method:  http.MethodPost,
		Path:    "/freelance/create/",
		Body:    payload,
		Success: "Freelancer profile created successfully!",
		Failure: "Failed to create profile.",
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces the profile and reloads it before reporting success.
func (s *FreelancerService) Update(ctx context.Context, payload FreelancerUpdatePayload) (*FreelancerProfile, error) {
	const failure = "Failed to update profile."
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	err := service.Exec(ctx, &s.Base, service.Call{
		Op:        "Update",
		Method:    http.MethodPut,
		Path:      "/freelance/me/",
		Body:      payload,
		Multipart: payload.ProfilePicture != nil,
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
	notify.Success(s.Notifier(), "Freelancer profile updated successfully!")
	return p, nil
}

func (s *FreelancerService) Delete(ctx context.Context, profileID int64) error {
	return service.Exec(ctx, &s.Base, service.Call{
		Op:      "Delete",
		Method:  http.MethodDelete,
		Path:    service.Pathf("/freelance/%d/", profileID),
		Success: "Profile deleted successfully!",
		Failure: "Failed to delete profile.",
	})
}
