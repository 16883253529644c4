package repos

import (
	"servio/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ServiceRepo struct{ db *sqlx.DB }

func NewServiceRepo(db *sqlx.DB) *ServiceRepo { return &ServiceRepo{db: db} }

const serviceCols = `
    id, title, description, category, price, currency,
    provider_id, provider_name, provider_verified, provider_premium,
    rating, review_count, image_url, location, status, created_at`

func (r *ServiceRepo) Get(id string) (domain.Service, error) {
	var s domain.Service
	err := r.db.Get(&s, `SELECT`+serviceCols+` FROM services WHERE id = ?`, id)
	return s, err
}

// syncLapsedPremium clears provider_premium on rows whose provider is no
// longer (or never was) an active subscriber. Catalog reads run it first,
// so an expired subscription loses ranking priority even if the profile is
// never fetched.
func (r *ServiceRepo) syncLapsedPremium() error {
	_, err := r.db.Exec(`
	  UPDATE services SET provider_premium = 0
	  WHERE provider_premium = 1 AND provider_id IN (
	    SELECT id FROM users
	    WHERE premium = 0
	       OR (premium_expiry_date <> '' AND date(premium_expiry_date) < date('now'))
	  )
	`)
	return err
}

// Search returns approved services matching the free-text query (title,
// description or category, case-insensitive substring) and category filter.
// Ranking happens in the service layer, so rows come back in insertion order.
func (r *ServiceRepo) Search(q, category string) ([]domain.Service, error) {
	if err := r.syncLapsedPremium(); err != nil {
		return nil, err
	}
	where := `status = 'APPROVED'`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?)`
		pat := "%" + q + "%"
		args = append(args, pat, pat, pat)
	}
	if category != "" {
		where += ` AND category = ?`
		args = append(args, category)
	}

	var out []domain.Service
	err := r.db.Select(&out, `SELECT`+serviceCols+` FROM services WHERE `+where+` ORDER BY rowid`, args...)
	return out, err
}

func (r *ServiceRepo) ListByCategory(category string) ([]domain.Service, error) {
	return r.Search("", category)
}

func (r *ServiceRepo) ListByProvider(providerID string) ([]domain.Service, error) {
	var out []domain.Service
	err := r.db.Select(&out, `
	  SELECT`+serviceCols+`
	  FROM services
	  WHERE provider_id = ? AND status = 'APPROVED'
	  ORDER BY datetime(created_at) DESC
	`, providerID)
	return out, err
}

func (r *ServiceRepo) Create(s domain.Service) error {
	_, err := r.db.Exec(`
	  INSERT INTO services
	    (id, title, description, category, price, currency,
	     provider_id, provider_name, provider_verified, provider_premium,
	     rating, review_count, image_url, location, status, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, s.ID, s.Title, s.Description, s.Category, s.Price, s.Currency,
		s.ProviderID, s.ProviderName, s.ProviderVerified, s.ProviderPremium,
		s.Rating, s.ReviewCount, s.ImageURL, s.Location, s.Status)
	return err
}

func (r *ServiceRepo) UpdateStatus(id, status string) (bool, error) {
	res, err := r.db.Exec(`UPDATE services SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ListPending feeds the admin moderation queue.
func (r *ServiceRepo) ListPending() ([]domain.Service, error) {
	var out []domain.Service
	err := r.db.Select(&out, `
	  SELECT`+serviceCols+`
	  FROM services
	  WHERE status = 'PENDING'
	  ORDER BY datetime(created_at)
	`)
	return out, err
}

func (r *ServiceRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM services WHERE status = ?`, status)
	return n, err
}
