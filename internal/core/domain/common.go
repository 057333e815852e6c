package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedBy is the authenticated user ID when auth is enabled, otherwise "anonymous".
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
