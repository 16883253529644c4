package domain

type ServiceCategory struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Icon  string `db:"icon" json:"icon"`
	Count int    `db:"count" json:"count"` // derived: approved services in this category
}

type Service struct {
	ID               string  `db:"id" json:"id"`
	Title            string  `db:"title" json:"title"`
	Description      string  `db:"description" json:"description"`
	Category         string  `db:"category" json:"category"`
	Price            float64 `db:"price" json:"price"`
	Currency         string  `db:"currency" json:"currency"`
	ProviderID       string  `db:"provider_id" json:"providerId"`
	ProviderName     string  `db:"provider_name" json:"providerName"`
	ProviderVerified bool    `db:"provider_verified" json:"providerVerified"`
	ProviderPremium  bool    `db:"provider_premium" json:"providerPremium"`
	Rating           float64 `db:"rating" json:"rating"`
	ReviewCount      int     `db:"review_count" json:"reviewCount"`
	ImageURL         string  `db:"image_url" json:"imageUrl,omitempty"`
	Location         string  `db:"location" json:"location"`
	Status           string  `db:"status" json:"-"` // PENDING | APPROVED | REJECTED
	CreatedAt        string  `db:"created_at" json:"-"`
}

// Booking snapshots serviceTitle/providerName/clientName/price at creation
// time and never backfills them when the source records change.
type Booking struct {
	ID           string        `db:"id" json:"id"`
	ServiceID    string        `db:"service_id" json:"serviceId"`
	ServiceTitle string        `db:"service_title" json:"serviceTitle"`
	ProviderID   string        `db:"provider_id" json:"providerId"`
	ProviderName string        `db:"provider_name" json:"providerName"`
	ClientID     string        `db:"client_id" json:"clientId"`
	ClientName   string        `db:"client_name" json:"clientName"`
	Date         string        `db:"date" json:"date"` // YYYY-MM-DD
	Time         string        `db:"time" json:"time"` // HH:MM
	Status       BookingStatus `db:"status" json:"status"`
	Location     string        `db:"location" json:"location"`
	Notes        string        `db:"notes" json:"notes,omitempty"`
	Price        float64       `db:"price" json:"price"`
	Currency     string        `db:"currency" json:"currency"`
	CreatedAt    string        `db:"created_at" json:"-"`
}

type ServiceRequest struct {
	ID            string        `db:"id" json:"id"`
	Title         string        `db:"title" json:"title"`
	Description   string        `db:"description" json:"description"`
	Category      string        `db:"category" json:"category"`
	Budget        float64       `db:"budget" json:"budget"`
	Currency      string        `db:"currency" json:"currency"`
	Location      string        `db:"location" json:"location"`
	PreferredDate string        `db:"preferred_date" json:"preferredDate,omitempty"`
	PreferredTime string        `db:"preferred_time" json:"preferredTime,omitempty"`
	ClientID      string        `db:"client_id" json:"clientId"`
	ClientName    string        `db:"client_name" json:"clientName"`
	Status        RequestStatus `db:"status" json:"status"`
	AcceptedBidID string        `db:"accepted_bid_id" json:"acceptedBidId,omitempty"`
	CreatedAt     string        `db:"created_at" json:"createdAt"`
	Bids          []Bid         `json:"bids"` // newest first
}

type Bid struct {
	ID                string  `db:"id" json:"id"`
	RequestID         string  `db:"request_id" json:"requestId"`
	ProviderID        string  `db:"provider_id" json:"providerId"`
	ProviderName      string  `db:"provider_name" json:"providerName"`
	ProviderRating    float64 `db:"provider_rating" json:"providerRating"`
	ProviderVerified  bool    `db:"provider_verified" json:"providerVerified"`
	ProviderPremium   bool    `db:"provider_premium" json:"providerPremium"`
	Price             float64 `db:"price" json:"price"`
	Currency          string  `db:"currency" json:"currency"`
	Message           string  `db:"message" json:"message"`
	EstimatedDuration string  `db:"estimated_duration" json:"estimatedDuration"`
	CreatedAt         string  `db:"created_at" json:"createdAt"`
}

type PrivacySettings struct {
	ShowPhone          bool `db:"show_phone" json:"showPhone"`
	ShowEmail          bool `db:"show_email" json:"showEmail"`
	ShowLocation       bool `db:"show_location" json:"showLocation"`
	AllowMessages      bool `db:"allow_messages" json:"allowMessages"`
	AllowNotifications bool `db:"allow_notifications" json:"allowNotifications"`
	DataSharing        bool `db:"data_sharing" json:"dataSharing"`
}

// DefaultPrivacySettings mirrors the mobile client defaults: everything
// visible, data sharing opt-in.
func DefaultPrivacySettings() PrivacySettings {
	return PrivacySettings{
		ShowPhone:          true,
		ShowEmail:          true,
		ShowLocation:       true,
		AllowMessages:      true,
		AllowNotifications: true,
		DataSharing:        false,
	}
}
