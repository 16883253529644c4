package services

import (
	"database/sql"
	"errors"
	"time"

	"servio/internal/domain"
)

// nowStamp returns the current UTC time in the format sqlite's
// CURRENT_TIMESTAMP uses, so explicit timestamps sort together with
// column defaults.
func nowStamp() string {
	return time.Now().UTC().Format("2006-01-02 15:04:05")
}

// mapNoRows converts the driver's missing-row error into the domain error
// handlers know how to translate.
func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
