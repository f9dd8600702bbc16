package entities

import "time"

// Company is the tenant isolation boundary. Every user and catalog object
// belongs to exactly one company; companies are never deleted in normal flow.
type Company struct {
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
