package services

import (
	"fmt"
	"sort"
	"strings"

	"servio/internal/domain"
	"servio/internal/repos"
	"servio/internal/validate"

	"github.com/google/uuid"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Svcs  *repos.ServiceRepo
	Users *repos.UserRepo
}

func NewCatalogService(cats *repos.CategoryRepo, svcs *repos.ServiceRepo, users *repos.UserRepo) *CatalogService {
	return &CatalogService{Cats: cats, Svcs: svcs, Users: users}
}

func (s *CatalogService) ListCategories() ([]domain.ServiceCategory, error) {
	return s.Cats.List()
}

func (s *CatalogService) Get(id string) (domain.Service, error) {
	svc, err := s.Svcs.Get(id)
	if err != nil {
		return domain.Service{}, mapNoRows(err)
	}
	return svc, nil
}

// Search filters approved services by free-text query and optional category
// name, then ranks the result. Empty query matches everything.
func (s *CatalogService) Search(q, category string) ([]domain.Service, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	out, err := s.Svcs.Search(q, category)
	if err != nil {
		return nil, err
	}
	Rank(out)
	return out, nil
}

func (s *CatalogService) ListByCategory(category string) ([]domain.Service, error) {
	out, err := s.Svcs.ListByCategory(category)
	if err != nil {
		return nil, err
	}
	Rank(out)
	return out, nil
}

// Rank orders services in place: premium providers strictly before
// non-premium, then rating descending. The sort is stable, so ties keep
// their input order.
func Rank(services []domain.Service) {
	sort.SliceStable(services, func(i, j int) bool {
		a, b := services[i], services[j]
		if a.ProviderPremium != b.ProviderPremium {
			return a.ProviderPremium
		}
		return a.Rating > b.Rating
	})
}

type NewListing struct {
	Title       string
	Description string
	Category    string
	Price       float64
	Currency    string
	ImageURL    string
	Location    string
}

// CreateListing stores a provider's new service in PENDING state; it only
// reaches the catalog once moderation approves it.
func (s *CatalogService) CreateListing(providerID string, in NewListing) (domain.Service, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Service{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return domain.Service{}, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	price, ok := validate.Money(in.Price)
	if !ok {
		return domain.Service{}, fmt.Errorf("%w: price must be non-negative", domain.ErrValidation)
	}
	cat, err := s.Cats.ByName(in.Category)
	if err != nil {
		return domain.Service{}, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, in.Category)
	}

	provider, err := s.Users.Get(providerID)
	if err != nil {
		return domain.Service{}, mapNoRows(err)
	}

	svc := domain.Service{
		ID:               uuid.NewString(),
		Title:            strings.TrimSpace(in.Title),
		Description:      strings.TrimSpace(in.Description),
		Category:         cat.Name,
		Price:            price,
		Currency:         in.Currency,
		ProviderID:       provider.ID,
		ProviderName:     provider.Name,
		ProviderVerified: provider.Verified,
		ProviderPremium:  provider.Premium,
		Rating:           provider.Rating,
		ReviewCount:      0,
		ImageURL:         in.ImageURL,
		Location:         in.Location,
		Status:           domain.ServicePending,
	}
	if err := s.Svcs.Create(svc); err != nil {
		return domain.Service{}, err
	}
	return svc, nil
}

// Moderate approves or rejects a pending listing.
func (s *CatalogService) Moderate(id string, approve bool) error {
	status := domain.ServiceRejected
	if approve {
		status = domain.ServiceApproved
	}
	ok, err := s.Svcs.UpdateStatus(id, status)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
