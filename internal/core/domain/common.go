package domain

import "time"

// AuditFields holds standard audit timestamps for domain entities.
// The business date of a transaction is a separate field; these are wall-clock.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
