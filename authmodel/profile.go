package authmodel

import (
	"github.com/jrsteele09/go-marketplace-client/internal/utils"
	"github.com/jrsteele09/go-marketplace-client/users"
)

// ProfileData is the "profile_data" object. Depending on the role the real
// user record is either at the top level or nested under a role profile.
type ProfileData struct {
	PersonRecord

	ClientProfile     *RoleProfile `json:"client_profile,omitempty"`
	FreelancerProfile *RoleProfile `json:"freelancer_profile,omitempty"`
}

// PersonRecord is the Django user shape shared by every nesting level.
type PersonRecord struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type RoleProfile struct {
	Profile struct {
		User       PersonRecord `json:"user"`
		ProfilePic *string      `json:"profile_pic"`
	} `json:"profile"`
}

// ProfileKind discriminates where the user record was found.
type ProfileKind int

const (
	ProfileFlat ProfileKind = iota
	ProfileClient
	ProfileFreelancer
)

func (k ProfileKind) String() string {
	switch k {
	case ProfileClient:
		return "client"
	case ProfileFreelancer:
		return "freelancer"
	default:
		return "flat"
	}
}

// ProfileVariant is the resolved, tagged form of ProfileData.
type ProfileVariant struct {
	Kind       ProfileKind
	Person     PersonRecord
	ProfilePic string
}

// Resolve picks the variant for userType. The profile matching the role wins,
// then any nested profile, then the flat record. The picture only comes from
// a nested profile.
func (p *ProfileData) Resolve(userType users.UserType) ProfileVariant {
	kind := ProfileFlat
	switch {
	case userType == users.UserTypeClient && p.ClientProfile != nil:
		kind = ProfileClient
	case userType == users.UserTypeFreelancer && p.FreelancerProfile != nil:
		kind = ProfileFreelancer
	case p.ClientProfile != nil:
		kind = ProfileClient
	case p.FreelancerProfile != nil:
		kind = ProfileFreelancer
	}

	switch kind {
	case ProfileClient:
		return fromRoleProfile(kind, p.ClientProfile)
	case ProfileFreelancer:
		return fromRoleProfile(kind, p.FreelancerProfile)
	case ProfileFlat:
		return ProfileVariant{Kind: ProfileFlat, Person: p.PersonRecord}
	}
	panic("unreachable profile kind")
}

func fromRoleProfile(kind ProfileKind, rp *RoleProfile) ProfileVariant {
	return ProfileVariant{
		Kind:       kind,
		Person:     rp.Profile.User,
		ProfilePic: utils.Value(rp.Profile.ProfilePic),
	}
}

// NormalizeUser builds the session user from an auth response.
func NormalizeUser(resp *AuthResponse, mediaBaseURL string, verified bool) *users.User {
	v := resp.User.ProfileData.Resolve(resp.UserType)
	return &users.User{
		ID:              v.Person.ID,
		Email:           v.Person.Email,
		Username:        v.Person.Username,
		UserType:        resp.UserType,
		FullName:        users.FullName(v.Person.FirstName, v.Person.LastName),
		IsVerified:      verified,
		ProfilePhotoURL: utils.MediaURL(mediaBaseURL, v.ProfilePic),
	}
}
