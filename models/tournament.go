package models

import "time"

// FormatPouleKnockout is the only competition format the progression engine runs.
const FormatPouleKnockout = "poule_knockout"

// Tournament is the owning record of a progression. Creation and administration
// happen outside this service.
type Tournament struct {
	ID        int       `json:"id" db:"id"`
	TenantID  string    `json:"tenant_id" db:"tenant_id"`
	Name      string    `json:"name" db:"name"`
	Format    string    `json:"format" db:"format"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
