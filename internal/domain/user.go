package domain

type UserProfile struct {
	ID                string  `db:"id" json:"id"`
	Name              string  `db:"name" json:"name"`
	Email             string  `db:"email" json:"email"`
	Phone             string  `db:"phone" json:"phone,omitempty"`
	Location          string  `db:"location" json:"location"`
	Verified          bool    `db:"verified" json:"verified"`
	Premium           bool    `db:"premium" json:"premium"`
	PremiumExpiryDate string  `db:"premium_expiry_date" json:"premiumExpiryDate,omitempty"`
	Bio               string  `db:"bio" json:"bio,omitempty"`
	SkillsJSON        string  `db:"skills_json" json:"-"`
	Rating            float64 `db:"rating" json:"rating"`
	ReviewCount       int     `db:"review_count" json:"reviewCount"`

	Skills          []string  `json:"skills"`
	ServicesOffered []Service `json:"servicesOffered"`
}
