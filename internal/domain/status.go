package domain

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// CanTransition reports whether to is reachable from s. Completed and
// cancelled are terminal.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	switch s {
	case BookingPending:
		return to == BookingConfirmed || to == BookingCancelled
	case BookingConfirmed:
		return to == BookingCompleted || to == BookingCancelled
	}
	return false
}

type RequestStatus string

const (
	RequestOpen       RequestStatus = "open"
	RequestInProgress RequestStatus = "in_progress"
	RequestClosed     RequestStatus = "closed"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestOpen, RequestInProgress, RequestClosed:
		return true
	}
	return false
}

func (s RequestStatus) CanTransition(to RequestStatus) bool {
	switch s {
	case RequestOpen:
		return to == RequestInProgress || to == RequestClosed
	case RequestInProgress:
		return to == RequestClosed
	}
	return false
}

// Service moderation states. Listings land PENDING and only APPROVED ones
// are visible in the catalog.
const (
	ServicePending  = "PENDING"
	ServiceApproved = "APPROVED"
	ServiceRejected = "REJECTED"
)
