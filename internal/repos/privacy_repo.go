package repos

import (
	"servio/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PrivacyRepo struct{ db *sqlx.DB }

func NewPrivacyRepo(db *sqlx.DB) *PrivacyRepo { return &PrivacyRepo{db: db} }

func (r *PrivacyRepo) Get(userID string) (domain.PrivacySettings, error) {
	var p domain.PrivacySettings
	err := r.db.Get(&p, `
	  SELECT show_phone, show_email, show_location,
	         allow_messages, allow_notifications, data_sharing
	  FROM privacy_settings
	  WHERE user_id = ?
	`, userID)
	return p, err
}

// Upsert replaces the whole settings row (save is whole-object, not a patch).
func (r *PrivacyRepo) Upsert(userID string, p domain.PrivacySettings) error {
	_, err := r.db.Exec(`
	  INSERT INTO privacy_settings
	    (user_id, show_phone, show_email, show_location,
	     allow_messages, allow_notifications, data_sharing, updated_at)
	  VALUES (?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(user_id) DO UPDATE SET
	    show_phone = excluded.show_phone,
	    show_email = excluded.show_email,
	    show_location = excluded.show_location,
	    allow_messages = excluded.allow_messages,
	    allow_notifications = excluded.allow_notifications,
	    data_sharing = excluded.data_sharing,
	    updated_at = CURRENT_TIMESTAMP
	`, userID, p.ShowPhone, p.ShowEmail, p.ShowLocation,
		p.AllowMessages, p.AllowNotifications, p.DataSharing)
	return err
}
