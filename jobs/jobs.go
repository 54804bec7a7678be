package jobs

import (
	"encoding/json"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

type Level string

const (
	LevelEntry        Level = "entry"
	LevelIntermediate Level = "intermediate"
	LevelExpert       Level = "expert"
)

type Skill struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Category is sent as an object on the client endpoints and as a bare name on
// the freelancer listing.
type Category struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*c = Category{Name: name}
		return nil
	}
	var obj struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*c = Category{ID: obj.ID, Name: obj.Name}
	return nil
}

// Posting holds the fields every job view shares.
type Posting struct {
	ID                       int64    `json:"id"`
	Title                    string   `json:"title"`
	Category                 Category `json:"category"`
	CategoryDisplay          string   `json:"category_display"`
	Description              string   `json:"description"`
	Price                    string   `json:"price"`
	PostedDate               string   `json:"posted_date"`
	DeadlineDate             string   `json:"deadline_date"`
	Status                   Status   `json:"status"`
	MaxFreelancers           int      `json:"max_freelancers"`
	PreferredFreelancerLevel Level    `json:"preferred_freelancer_level"`
	Slug                     string   `json:"slug"`
	SelectedFreelancer       *string  `json:"selected_freelancer"`
	PaymentVerified          bool     `json:"payment_verified"`
	SkillsRequiredDisplay    []Skill  `json:"skills_required_display"`
}

// SkillNames returns the names of the required skills.
func (p Posting) SkillNames() []string {
	names := make([]string, 0, len(p.SkillsRequiredDisplay))
	for _, s := range p.SkillsRequiredDisplay {
		names = append(names, s.Name)
	}
	return names
}

// Job is the client and admin view of a posting.
type Job struct {
	Posting
	Client           string `json:"client"`
	ApplicationCount int    `json:"application_count"`
}

type ListingClient struct {
	ID                    int64   `json:"id"`
	FirstName             string  `json:"first_name"`
	LastName              string  `json:"last_name"`
	Username              string  `json:"username"`
	Location              string  `json:"location"`
	ProfilePic            *string `json:"profile_pic"`
	TotalAmountPaid       float64 `json:"total_amount_paid"`
	TotalFreelancersHired int     `json:"total_freelancers_hired"`
	DateJoined            string  `json:"date_joined"`
}

type ListingResponse struct {
	ID          int64           `json:"id"`
	User        string          `json:"user"`
	SubmittedAt string          `json:"submitted_at"`
	ExtraData   json.RawMessage `json:"extra_data"`
}

// Listing is the freelancer view of a posting.
type Listing struct {
	Posting
	Client                   ListingClient     `json:"client"`
	Responses                []ListingResponse `json:"responses"`
	ClientRating             float64           `json:"client_rating"`
	ClientReviewCount        int               `json:"client_review_count"`
	CurrentApplicationsCount int               `json:"current_applications_count"`
	Bookmarked               bool              `json:"bookmarked"`
	HasApplied               bool              `json:"has_applied"`
}

type CreatePayload struct {
	Title                    string   `json:"title" validate:"required"`
	Category                 string   `json:"category" validate:"required"`
	Description              string   `json:"description" validate:"required"`
	Price                    string   `json:"price" validate:"required"`
	DeadlineDate             string   `json:"deadline_date" validate:"required"`
	Status                   Status   `json:"status,omitempty"`
	MaxFreelancers           int      `json:"max_freelancers,omitempty" validate:"gte=0"`
	PreferredFreelancerLevel Level    `json:"preferred_freelancer_level,omitempty" validate:"omitempty,oneof=entry intermediate expert"`
	SkillsRequired           []string `json:"skills_required" validate:"min=1"`
}

// UpdatePayload is a partial update; nil fields are left unchanged.
type UpdatePayload struct {
	Title                    *string  `json:"title,omitempty"`
	Category                 *string  `json:"category,omitempty"`
	Description              *string  `json:"description,omitempty"`
	Price                    *string  `json:"price,omitempty"`
	DeadlineDate             *string  `json:"deadline_date,omitempty"`
	Status                   *Status  `json:"status,omitempty"`
	MaxFreelancers           *int     `json:"max_freelancers,omitempty"`
	PreferredFreelancerLevel *Level   `json:"preferred_freelancer_level,omitempty"`
	SkillsRequired           []string `json:"skills_required,omitempty"`
}

// completion is the full body the complete endpoint expects.
type completion struct {
	Title          string   `json:"title"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Price          string   `json:"price"`
	DeadlineDate   string   `json:"deadline_date"`
	SkillsRequired []string `json:"skills_required"`
	Status         Status   `json:"status"`
}

type Applicant struct {
	ID         int64   `json:"id"`
	Email      string  `json:"email"`
	Username   string  `json:"username"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	ProfilePic *string `json:"profile_pic,omitempty"`
	Bio        string  `json:"bio"`
	Location   string  `json:"location,omitempty"`
}

// Application is a response to a job as the owning client sees it.
type Application struct {
	ID             int64     `json:"id"`
	User           Applicant `json:"user"`
	Status         string    `json:"status"`
	BidAmount      string    `json:"bid_amount"`
	SubmittedAt    string    `json:"submitted_at"`
	CVURL          string    `json:"cv_url"`
	CoverLetterURL string    `json:"cover_letter_url"`
	PortfolioURL   string    `json:"portfolio_url"`

	// Copied from the job the applications were listed for.
	JobSlug         string `json:"job_slug,omitempty"`
	JobTitle        string `json:"job_title,omitempty"`
	PaymentVerified bool   `json:"payment_verified,omitempty"`
}

// FreelancerApplication is an application as its author and admins see it.
type FreelancerApplication struct {
	ID          int64  `json:"id"`
	Job         int64  `json:"job"`
	JobTitle    string `json:"job_title"`
	Freelancer  int64  `json:"freelancer"`
	Status      string `json:"status"`
	CoverLetter string `json:"cover_letter"`
	BidAmount   string `json:"bid_amount"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
