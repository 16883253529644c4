package repos

import (
	"servio/internal/domain"

	"github.com/jmoiron/sqlx"
)

type BookingRepo struct{ db *sqlx.DB }

func NewBookingRepo(db *sqlx.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = `
    id, service_id, service_title, provider_id, provider_name,
    client_id, client_name, date, time, status, location, notes,
    price, currency, created_at`

func (r *BookingRepo) Create(b domain.Booking) error {
	_, err := r.db.Exec(`
	  INSERT INTO bookings
	    (id, service_id, service_title, provider_id, provider_name,
	     client_id, client_name, date, time, status, location, notes,
	     price, currency, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, b.ID, b.ServiceID, b.ServiceTitle, b.ProviderID, b.ProviderName,
		b.ClientID, b.ClientName, b.Date, b.Time, b.Status, b.Location, b.Notes,
		b.Price, b.Currency)
	return err
}

func (r *BookingRepo) Get(id string) (domain.Booking, error) {
	var b domain.Booking
	err := r.db.Get(&b, `SELECT`+bookingCols+` FROM bookings WHERE id = ?`, id)
	return b, err
}

// ListUpcoming returns pending/confirmed bookings for the user in the given
// role column, soonest first.
func (r *BookingRepo) ListUpcoming(userID string, asProvider bool) ([]domain.Booking, error) {
	return r.list(userID, asProvider, `status IN ('pending','confirmed')`, `date ASC, time ASC`)
}

// ListPast returns completed/cancelled bookings, most recent first.
func (r *BookingRepo) ListPast(userID string, asProvider bool) ([]domain.Booking, error) {
	return r.list(userID, asProvider, `status IN ('completed','cancelled')`, `date DESC, time DESC`)
}

func (r *BookingRepo) list(userID string, asProvider bool, statusCond, order string) ([]domain.Booking, error) {
	col := "client_id"
	if asProvider {
		col = "provider_id"
	}
	var out []domain.Booking
	err := r.db.Select(&out, `
	  SELECT`+bookingCols+`
	  FROM bookings
	  WHERE `+col+` = ? AND `+statusCond+`
	  ORDER BY `+order,
		userID)
	return out, err
}

func (r *BookingRepo) UpdateStatus(id string, status domain.BookingStatus) error {
	_, err := r.db.Exec(`UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	return err
}

func (r *BookingRepo) ListLatest(limit int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []domain.Booking
	err := r.db.Select(&out, `
	  SELECT`+bookingCols+`
	  FROM bookings
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *BookingRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM bookings`)
	return n, err
}
