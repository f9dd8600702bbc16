package entities

import "time"

// ObjectType is a catalog entry for a record type within a company, with an
// optional field template suggesting defaults for new records. The catalog is
// advisory: objects may carry types that were never registered, and the
// template is never enforced against a record's fields.
type ObjectType struct {
	TypeID    string
	CompanyID string
	Name      string
	Template  Fields
	CreatedBy string
	CreatedAt time.Time
}
