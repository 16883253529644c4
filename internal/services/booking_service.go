package services

import (
	"fmt"
	"time"

	"servio/internal/domain"
	"servio/internal/repos"
	"servio/internal/validate"

	"github.com/google/uuid"
)

type BookingService struct {
	Bookings *repos.BookingRepo
	Svcs     *repos.ServiceRepo
	Users    *repos.UserRepo
}

func NewBookingService(bookings *repos.BookingRepo, svcs *repos.ServiceRepo, users *repos.UserRepo) *BookingService {
	return &BookingService{Bookings: bookings, Svcs: svcs, Users: users}
}

// Create books a service for a client. The date must be today or later and
// the time a valid HH:MM. serviceTitle/providerName/clientName are
// snapshotted here and never backfilled.
func (s *BookingService) Create(serviceID, clientID, date, tod, notes string) (domain.Booking, error) {
	d, ok := validate.Date(date)
	if !ok {
		return domain.Booking{}, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	t, ok := validate.TimeOfDay(tod)
	if !ok {
		return domain.Booking{}, fmt.Errorf("%w: time must be HH:MM", domain.ErrValidation)
	}
	// ISO dates compare lexicographically
	if d < time.Now().Format("2006-01-02") {
		return domain.Booking{}, fmt.Errorf("%w: date is in the past", domain.ErrValidation)
	}

	svc, err := s.Svcs.Get(serviceID)
	if err != nil {
		return domain.Booking{}, mapNoRows(err)
	}
	if svc.Status != domain.ServiceApproved {
		return domain.Booking{}, domain.ErrNotFound
	}
	client, err := s.Users.Get(clientID)
	if err != nil {
		return domain.Booking{}, mapNoRows(err)
	}

	b := domain.Booking{
		ID:           uuid.NewString(),
		ServiceID:    svc.ID,
		ServiceTitle: svc.Title,
		ProviderID:   svc.ProviderID,
		ProviderName: svc.ProviderName,
		ClientID:     client.ID,
		ClientName:   client.Name,
		Date:         d,
		Time:         t,
		Status:       domain.BookingPending,
		Location:     svc.Location,
		Notes:        notes,
		Price:        svc.Price,
		Currency:     svc.Currency,
	}
	if err := s.Bookings.Create(b); err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

func (s *BookingService) Get(id string) (domain.Booking, error) {
	b, err := s.Bookings.Get(id)
	if err != nil {
		return domain.Booking{}, mapNoRows(err)
	}
	return b, nil
}

// UpdateStatus applies one state-machine step. Completed and cancelled are
// terminal.
func (s *BookingService) UpdateStatus(id string, to domain.BookingStatus) (domain.Booking, error) {
	if !to.Valid() {
		return domain.Booking{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, to)
	}
	b, err := s.Bookings.Get(id)
	if err != nil {
		return domain.Booking{}, mapNoRows(err)
	}
	if !b.Status.CanTransition(to) {
		return domain.Booking{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, b.Status, to)
	}
	if err := s.Bookings.UpdateStatus(id, to); err != nil {
		return domain.Booking{}, err
	}
	b.Status = to
	return b, nil
}

type BookingList struct {
	Upcoming []domain.Booking `json:"upcoming"`
	Past     []domain.Booking `json:"past"`
}

// List partitions a user's bookings: upcoming (pending/confirmed, soonest
// first) and past (completed/cancelled, most recent first).
func (s *BookingService) List(userID, role string) (BookingList, error) {
	if role != "client" && role != "provider" {
		return BookingList{}, fmt.Errorf("%w: role must be client or provider", domain.ErrValidation)
	}
	asProvider := role == "provider"

	up, err := s.Bookings.ListUpcoming(userID, asProvider)
	if err != nil {
		return BookingList{}, err
	}
	past, err := s.Bookings.ListPast(userID, asProvider)
	if err != nil {
		return BookingList{}, err
	}
	if up == nil {
		up = []domain.Booking{}
	}
	if past == nil {
		past = []domain.Booking{}
	}
	return BookingList{Upcoming: up, Past: past}, nil
}
