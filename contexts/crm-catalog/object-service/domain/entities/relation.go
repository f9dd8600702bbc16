package entities

import "time"

// ObjectRelation links two records of the same company. Relations are
// directed; Label names the edge from source to target.
type ObjectRelation struct {
	RelationID string
	CompanyID  string
	SourceID   string
	TargetID   string
	Label      string
	CreatedBy  string
	CreatedAt  time.Time
}
