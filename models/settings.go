package models

import "time"

// TenantSettings is a tenant's stored progression configuration.
type TenantSettings struct {
	TenantID string `json:"tenant_id" db:"tenant_id"`
	ProgressionConfig
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
