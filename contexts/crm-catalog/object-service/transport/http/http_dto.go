package httptransport

import (
	"time"

	"atlas/contexts/crm-catalog/object-service/domain/entities"
)

// ErrorResponse is the transport error envelope.
type ErrorResponse struct {
	Message string `json:"message"`
}

// CreateObjectRequest creates a record in the caller's company. Fields carry
// bare JSON values; kinds are inferred on decode.
type CreateObjectRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=128"`
	Type        string          `json:"type" validate:"required,min=1,max=64"`
	Description string          `json:"description" validate:"max=1024"`
	Fields      entities.Fields `json:"fields"`
}

// UpdateObjectRequest is a partial patch; absent members leave the record
// untouched, present field entries merge by name.
type UpdateObjectRequest struct {
	Name        *string         `json:"name" validate:"omitempty,min=1,max=128"`
	Type        *string         `json:"type" validate:"omitempty,min=1,max=64"`
	Description *string         `json:"description" validate:"omitempty,max=1024"`
	Fields      entities.Fields `json:"fields"`
}

// ObjectResponse is the wire shape of a record.
type ObjectResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Fields      entities.Fields `json:"fields"`
	CompanyID   string          `json:"companyId"`
	CreatedBy   string          `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CreateRelationRequest links the path record to Target under Label.
type CreateRelationRequest struct {
	TargetID string `json:"targetId" validate:"required"`
	Label    string `json:"label" validate:"required,min=1,max=64"`
}

// RelationResponse is the wire shape of an edge between two records.
type RelationResponse struct {
	ID        string    `json:"id"`
	SourceID  string    `json:"sourceId"`
	TargetID  string    `json:"targetId"`
	Label     string    `json:"label"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// SaveObjectTypeRequest registers a catalog type for the caller's company,
// optionally with an advisory field template.
type SaveObjectTypeRequest struct {
	Name   string          `json:"name" validate:"required,min=1,max=64"`
	Fields entities.Fields `json:"fields"`
}

// ObjectTypeResponse is the wire shape of a registered catalog type.
type ObjectTypeResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Fields    entities.Fields `json:"fields"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ObjectTypesResponse lists the type names available to the caller's company.
type ObjectTypesResponse struct {
	Types []string `json:"types"`
}
