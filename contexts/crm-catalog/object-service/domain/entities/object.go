package entities

import "time"

// Object is a tenant-scoped CRM record. Name, Type, and Description are
// fixed columns; everything else lives in the dynamic Fields map.
type Object struct {
	ObjectID    string
	CompanyID   string
	Name        string
	Type        string
	Description string
	Fields      Fields
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
