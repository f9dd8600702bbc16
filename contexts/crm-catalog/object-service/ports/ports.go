package ports

import (
	"context"
	"time"

	"atlas/contexts/crm-catalog/object-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for new rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// ListFilter narrows and orders a company's object listing. Zero values mean
// "no constraint"; the company predicate is supplied separately and always
// applies first.
type ListFilter struct {
	// Search matches case-insensitive substrings of name, type, description,
	// and rendered field values.
	Search string
	// Type matches the object type exactly.
	Type string
	// Fields matches named dynamic fields by case-insensitive substring of
	// their rendered value.
	Fields map[string]string
	// SortBy is one of "name", "type", "createdAt"; empty means createdAt.
	SortBy string
	// SortOrder is "asc" or "desc"; empty means desc.
	SortOrder string
}

// Repository is the persistence boundary for objects, relations, and the
// type catalog. Every method takes the owning company explicitly; adapters
// never return rows across that line.
type Repository interface {
	CreateObject(ctx context.Context, object entities.Object) error
	// GetObject returns ErrObjectNotFound for missing rows and rows owned
	// by another company alike.
	GetObject(ctx context.Context, objectID, companyID string) (entities.Object, error)
	ListObjects(ctx context.Context, companyID string, filter ListFilter) ([]entities.Object, error)
	UpdateObject(ctx context.Context, object entities.Object) error
	DeleteObject(ctx context.Context, objectID, companyID string) error

	// ListDistinctTypes returns the type names in use by a company's objects.
	ListDistinctTypes(ctx context.Context, companyID string) ([]string, error)
	SaveObjectType(ctx context.Context, objectType entities.ObjectType) (entities.ObjectType, error)
	ListObjectTypes(ctx context.Context, companyID string) ([]entities.ObjectType, error)

	CreateRelation(ctx context.Context, relation entities.ObjectRelation) error
	// ListRelations returns edges touching the object in either direction.
	ListRelations(ctx context.Context, objectID, companyID string) ([]entities.ObjectRelation, error)
}
