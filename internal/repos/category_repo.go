package repos

import (
	"servio/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// List recomputes the per-category service count on every read so it can
// never drift from the approved listings.
func (r *CategoryRepo) List() ([]domain.ServiceCategory, error) {
	var out []domain.ServiceCategory
	err := r.db.Select(&out, `
	  SELECT c.id, c.name, c.icon, COALESCE(s.n, 0) AS count
	  FROM categories c
	  LEFT JOIN (
	    SELECT category, COUNT(*) AS n
	    FROM services
	    WHERE status = 'APPROVED'
	    GROUP BY category
	  ) s ON s.category = c.name
	  ORDER BY c.rowid
	`)
	return out, err
}

func (r *CategoryRepo) ByName(name string) (domain.ServiceCategory, error) {
	var c domain.ServiceCategory
	err := r.db.Get(&c, `
	  SELECT id, name, icon, 0 AS count
	  FROM categories
	  WHERE LOWER(name) = LOWER(?)
	`, name)
	return c, err
}
