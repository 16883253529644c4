package repos

import (
	"servio/internal/domain"

	"github.com/jmoiron/sqlx"
)

type RequestRepo struct{ db *sqlx.DB }

func NewRequestRepo(db *sqlx.DB) *RequestRepo { return &RequestRepo{db: db} }

const requestCols = `
    id, title, description, category, budget, currency, location,
    preferred_date, preferred_time, client_id, client_name, status,
    accepted_bid_id, created_at`

const bidCols = `
    id, request_id, provider_id, provider_name, provider_rating,
    provider_verified, provider_premium, price, currency, message,
    estimated_duration, created_at`

func (r *RequestRepo) Create(req domain.ServiceRequest) error {
	_, err := r.db.Exec(`
	  INSERT INTO requests
	    (id, title, description, category, budget, currency, location,
	     preferred_date, preferred_time, client_id, client_name, status,
	     accepted_bid_id, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,?,'',?)
	`, req.ID, req.Title, req.Description, req.Category, req.Budget, req.Currency,
		req.Location, req.PreferredDate, req.PreferredTime, req.ClientID,
		req.ClientName, req.Status, req.CreatedAt)
	return err
}

func (r *RequestRepo) Get(id string) (domain.ServiceRequest, error) {
	var req domain.ServiceRequest
	err := r.db.Get(&req, `SELECT`+requestCols+` FROM requests WHERE id = ?`, id)
	return req, err
}

func (r *RequestRepo) ListByClient(clientID string) ([]domain.ServiceRequest, error) {
	var out []domain.ServiceRequest
	err := r.db.Select(&out, `
	  SELECT`+requestCols+`
	  FROM requests
	  WHERE client_id = ?
	  ORDER BY datetime(created_at) DESC
	`, clientID)
	return out, err
}

func (r *RequestRepo) ListOpen() ([]domain.ServiceRequest, error) {
	var out []domain.ServiceRequest
	err := r.db.Select(&out, `
	  SELECT`+requestCols+`
	  FROM requests
	  WHERE status = 'open'
	  ORDER BY datetime(created_at) DESC
	`)
	return out, err
}

func (r *RequestRepo) UpdateStatus(id string, status domain.RequestStatus) error {
	_, err := r.db.Exec(`UPDATE requests SET status = ? WHERE id = ?`, status, id)
	return err
}

// AcceptBid records the accepted bid and closes the request in one
// transaction.
func (r *RequestRepo) AcceptBid(requestID, bidID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  UPDATE requests SET status = 'closed', accepted_bid_id = ? WHERE id = ?
	`, bidID, requestID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *RequestRepo) InsertBid(b domain.Bid) error {
	_, err := r.db.Exec(`
	  INSERT INTO bids
	    (id, request_id, provider_id, provider_name, provider_rating,
	     provider_verified, provider_premium, price, currency, message,
	     estimated_duration, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
	`, b.ID, b.RequestID, b.ProviderID, b.ProviderName, b.ProviderRating,
		b.ProviderVerified, b.ProviderPremium, b.Price, b.Currency, b.Message,
		b.EstimatedDuration, b.CreatedAt)
	return err
}

// Bids returns a request's bids newest first. rowid breaks same-second ties
// so the most recently inserted bid always sorts first.
func (r *RequestRepo) Bids(requestID string) ([]domain.Bid, error) {
	var out []domain.Bid
	err := r.db.Select(&out, `
	  SELECT`+bidCols+`
	  FROM bids
	  WHERE request_id = ?
	  ORDER BY datetime(created_at) DESC, rowid DESC
	`, requestID)
	return out, err
}

func (r *RequestRepo) LatestBid(requestID string) (domain.Bid, error) {
	var b domain.Bid
	err := r.db.Get(&b, `
	  SELECT`+bidCols+`
	  FROM bids
	  WHERE request_id = ?
	  ORDER BY datetime(created_at) DESC, rowid DESC
	  LIMIT 1
	`, requestID)
	return b, err
}

func (r *RequestRepo) GetBid(id string) (domain.Bid, error) {
	var b domain.Bid
	err := r.db.Get(&b, `SELECT`+bidCols+` FROM bids WHERE id = ?`, id)
	return b, err
}

func (r *RequestRepo) BidCount(requestID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM bids WHERE request_id = ?`, requestID)
	return n, err
}

func (r *RequestRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM requests`)
	return n, err
}
