package repos

import (
	"servio/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `
    id, name, email, phone, location, verified, premium,
    premium_expiry_date, bio, skills_json, rating, review_count`

// Get demotes expired premium before reading, so a lapsed subscription is
// never served as active.
func (r *UserRepo) Get(id string) (*domain.UserProfile, error) {
	res, err := r.DB.Exec(`
	  UPDATE users
	  SET premium = 0, premium_expiry_date = ''
	  WHERE id = ? AND premium = 1 AND premium_expiry_date <> ''
	    AND date(premium_expiry_date) < date('now')
	`, id)
	if err != nil {
		return nil, err
	}
	// the flag is denormalized onto catalog rows; a demotion has to reach
	// them too or the provider keeps ranking priority
	if n, _ := res.RowsAffected(); n > 0 {
		if _, err := r.DB.Exec(`
		  UPDATE services SET provider_premium = 0 WHERE provider_id = ?
		`, id); err != nil {
			return nil, err
		}
	}

	var u domain.UserProfile
	if err := r.DB.Get(&u, `SELECT`+userCols+` FROM users WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Update(u *domain.UserProfile) error {
	_, err := r.DB.Exec(`
	  UPDATE users
	  SET name = ?, email = ?, phone = ?, location = ?, bio = ?, skills_json = ?
	  WHERE id = ?
	`, u.Name, u.Email, u.Phone, u.Location, u.Bio, u.SkillsJSON, u.ID)
	return err
}

func (r *UserRepo) Count() (int, error) {
	var n int
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM users`)
	return n, err
}
