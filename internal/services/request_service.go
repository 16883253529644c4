package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"servio/internal/domain"
	"servio/internal/repos"
	"servio/internal/validate"

	"github.com/google/uuid"
)

type RequestService struct {
	Reqs  *repos.RequestRepo
	Users *repos.UserRepo
}

func NewRequestService(reqs *repos.RequestRepo, users *repos.UserRepo) *RequestService {
	return &RequestService{Reqs: reqs, Users: users}
}

type NewRequest struct {
	Title         string
	Description   string
	Category      string
	Budget        float64
	Currency      string
	Location      string
	PreferredDate string
	PreferredTime string
}

// Create opens a new service request for bids. Title, description, category,
// budget and location are required.
func (s *RequestService) Create(clientID string, in NewRequest) (domain.ServiceRequest, error) {
	for field, v := range map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"category":    in.Category,
		"location":    in.Location,
	} {
		if strings.TrimSpace(v) == "" {
			return domain.ServiceRequest{}, fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
		}
	}
	budget, ok := validate.Money(in.Budget)
	if !ok {
		return domain.ServiceRequest{}, fmt.Errorf("%w: budget must be non-negative", domain.ErrValidation)
	}

	client, err := s.Users.Get(clientID)
	if err != nil {
		return domain.ServiceRequest{}, mapNoRows(err)
	}

	req := domain.ServiceRequest{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		Category:      in.Category,
		Budget:        budget,
		Currency:      in.Currency,
		Location:      in.Location,
		PreferredDate: in.PreferredDate,
		PreferredTime: in.PreferredTime,
		ClientID:      client.ID,
		ClientName:    client.Name,
		Status:        domain.RequestOpen,
		CreatedAt:     nowStamp(),
		Bids:          []domain.Bid{},
	}
	if err := s.Reqs.Create(req); err != nil {
		return domain.ServiceRequest{}, err
	}
	return req, nil
}

func (s *RequestService) Get(id string) (domain.ServiceRequest, error) {
	req, err := s.Reqs.Get(id)
	if err != nil {
		return domain.ServiceRequest{}, mapNoRows(err)
	}
	if err := s.attachBids(&req); err != nil {
		return domain.ServiceRequest{}, err
	}
	return req, nil
}

// MyRequests returns the client's own requests, newest first, bids attached.
func (s *RequestService) MyRequests(clientID string) ([]domain.ServiceRequest, error) {
	reqs, err := s.Reqs.ListByClient(clientID)
	if err != nil {
		return nil, err
	}
	return s.withBids(reqs)
}

// Browse returns open requests for providers looking for work.
func (s *RequestService) Browse() ([]domain.ServiceRequest, error) {
	reqs, err := s.Reqs.ListOpen()
	if err != nil {
		return nil, err
	}
	return s.withBids(reqs)
}

// PlaceBid submits a provider's offer. Closed requests reject new bids.
func (s *RequestService) PlaceBid(requestID, providerID string, price float64, currency, message, estimatedDuration string) (domain.Bid, error) {
	req, err := s.Reqs.Get(requestID)
	if err != nil {
		return domain.Bid{}, mapNoRows(err)
	}
	if req.Status == domain.RequestClosed {
		return domain.Bid{}, domain.ErrClosedRequest
	}
	price, ok := validate.Money(price)
	if !ok {
		return domain.Bid{}, fmt.Errorf("%w: price must be non-negative", domain.ErrValidation)
	}

	provider, err := s.Users.Get(providerID)
	if err != nil {
		return domain.Bid{}, mapNoRows(err)
	}

	b := domain.Bid{
		ID:                uuid.NewString(),
		RequestID:         req.ID,
		ProviderID:        provider.ID,
		ProviderName:      provider.Name,
		ProviderRating:    provider.Rating,
		ProviderVerified:  provider.Verified,
		ProviderPremium:   provider.Premium,
		Price:             price,
		Currency:          currency,
		Message:           message,
		EstimatedDuration: estimatedDuration,
		CreatedAt:         nowStamp(),
	}
	if err := s.Reqs.InsertBid(b); err != nil {
		return domain.Bid{}, err
	}
	return b, nil
}

// LatestBid is the newest bid on a request, the one the client screens show
// as a preview.
func (s *RequestService) LatestBid(requestID string) (domain.Bid, error) {
	b, err := s.Reqs.LatestBid(requestID)
	if err != nil {
		return domain.Bid{}, mapNoRows(err)
	}
	return b, nil
}

// UpdateStatus applies open -> in_progress or open|in_progress -> closed.
func (s *RequestService) UpdateStatus(id string, to domain.RequestStatus) (domain.ServiceRequest, error) {
	if !to.Valid() {
		return domain.ServiceRequest{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, to)
	}
	req, err := s.Reqs.Get(id)
	if err != nil {
		return domain.ServiceRequest{}, mapNoRows(err)
	}
	if !req.Status.CanTransition(to) {
		return domain.ServiceRequest{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, req.Status, to)
	}
	// a request only enters in_progress once someone has actually offered
	// to do the work
	if to == domain.RequestInProgress {
		n, err := s.Reqs.BidCount(id)
		if err != nil {
			return domain.ServiceRequest{}, err
		}
		if n == 0 {
			return domain.ServiceRequest{}, fmt.Errorf("%w: request has no bids", domain.ErrInvalidTransition)
		}
	}
	if err := s.Reqs.UpdateStatus(id, to); err != nil {
		return domain.ServiceRequest{}, err
	}
	req.Status = to
	return req, nil
}

// AcceptBid closes the request and records which bid won, in one
// transaction.
func (s *RequestService) AcceptBid(requestID, bidID string) (domain.ServiceRequest, error) {
	req, err := s.Reqs.Get(requestID)
	if err != nil {
		return domain.ServiceRequest{}, mapNoRows(err)
	}
	if !req.Status.CanTransition(domain.RequestClosed) {
		return domain.ServiceRequest{}, fmt.Errorf("%w: %s -> closed", domain.ErrInvalidTransition, req.Status)
	}
	bid, err := s.Reqs.GetBid(bidID)
	if err != nil {
		return domain.ServiceRequest{}, mapNoRows(err)
	}
	if bid.RequestID != requestID {
		return domain.ServiceRequest{}, fmt.Errorf("%w: bid does not belong to this request", domain.ErrValidation)
	}
	if err := s.Reqs.AcceptBid(requestID, bidID); err != nil {
		return domain.ServiceRequest{}, err
	}
	return s.Get(requestID)
}

func (s *RequestService) attachBids(req *domain.ServiceRequest) error {
	bids, err := s.Reqs.Bids(req.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if bids == nil {
		bids = []domain.Bid{}
	}
	req.Bids = bids
	return nil
}

func (s *RequestService) withBids(reqs []domain.ServiceRequest) ([]domain.ServiceRequest, error) {
	for i := range reqs {
		if err := s.attachBids(&reqs[i]); err != nil {
			return nil, err
		}
	}
	if reqs == nil {
		reqs = []domain.ServiceRequest{}
	}
	return reqs, nil
}
