package services

import (
	"database/sql"
	"errors"
	"fmt"

	"servio/internal/domain"
	"servio/internal/repos"
)

type PrivacyService struct {
	Repo *repos.PrivacyRepo
}

func NewPrivacyService(r *repos.PrivacyRepo) *PrivacyService { return &PrivacyService{Repo: r} }

// Get returns the user's settings, falling back to the client defaults when
// no row exists yet.
func (s *PrivacyService) Get(userID string) (domain.PrivacySettings, error) {
	p, err := s.Repo.Get(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DefaultPrivacySettings(), nil
		}
		return domain.PrivacySettings{}, err
	}
	return p, nil
}

// Toggle flips exactly one named boolean and persists the result.
func (s *PrivacyService) Toggle(userID, key string) (domain.PrivacySettings, error) {
	p, err := s.Get(userID)
	if err != nil {
		return domain.PrivacySettings{}, err
	}

	switch key {
	case "showPhone":
		p.ShowPhone = !p.ShowPhone
	case "showEmail":
		p.ShowEmail = !p.ShowEmail
	case "showLocation":
		p.ShowLocation = !p.ShowLocation
	case "allowMessages":
		p.AllowMessages = !p.AllowMessages
	case "allowNotifications":
		p.AllowNotifications = !p.AllowNotifications
	case "dataSharing":
		p.DataSharing = !p.DataSharing
	default:
		return domain.PrivacySettings{}, fmt.Errorf("%w: unknown setting %q", domain.ErrValidation, key)
	}

	if err := s.Repo.Upsert(userID, p); err != nil {
		return domain.PrivacySettings{}, err
	}
	return p, nil
}

// Save replaces the whole settings object.
func (s *PrivacyService) Save(userID string, p domain.PrivacySettings) error {
	return s.Repo.Upsert(userID, p)
}
