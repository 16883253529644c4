package services

import (
	"encoding/json"
	"fmt"

	"servio/internal/domain"
	"servio/internal/repos"
	"servio/internal/validate"
)

type ProfileService struct {
	Users *repos.UserRepo
	Svcs  *repos.ServiceRepo
}

func NewProfileService(users *repos.UserRepo, svcs *repos.ServiceRepo) *ProfileService {
	return &ProfileService{Users: users, Svcs: svcs}
}

// Get returns the profile with its approved listings attached. An expired
// premium subscription is demoted by the repo before the row is read.
func (s *ProfileService) Get(id string) (*domain.UserProfile, error) {
	u, err := s.Users.Get(id)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if err := json.Unmarshal([]byte(u.SkillsJSON), &u.Skills); err != nil {
		u.Skills = []string{}
	}
	offered, err := s.Svcs.ListByProvider(id)
	if err != nil {
		return nil, err
	}
	if offered == nil {
		offered = []domain.Service{}
	}
	u.ServicesOffered = offered
	return u, nil
}

type ProfileUpdate struct {
	Name     *string   `json:"name"`
	Email    *string   `json:"email"`
	Phone    *string   `json:"phone"`
	Location *string   `json:"location"`
	Bio      *string   `json:"bio"`
	Skills   *[]string `json:"skills"`
}

func (s *ProfileService) Update(id string, in ProfileUpdate) (*domain.UserProfile, error) {
	u, err := s.Users.Get(id)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		e, ok := validate.Email(*in.Email)
		if !ok {
			return nil, fmt.Errorf("%w: invalid email address", domain.ErrValidation)
		}
		u.Email = e
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Location != nil {
		u.Location = *in.Location
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if in.Skills != nil {
		b, _ := json.Marshal(*in.Skills)
		u.SkillsJSON = string(b)
	}
	if err := s.Users.Update(u); err != nil {
		return nil, err
	}
	return s.Get(id)
}
