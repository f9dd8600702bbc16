package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"atlas/contexts/crm-catalog/object-service/domain/entities"
	domainerrors "atlas/contexts/crm-catalog/object-service/domain/errors"
	"atlas/contexts/crm-catalog/object-service/ports"
)

// Store is the in-memory adapter behind Repository, Clock, and IDGenerator,
// for tests and local wiring. Filtering and ordering mirror the SQL adapter.
type Store struct {
	mu        sync.RWMutex
	objects   map[string]entities.Object
	types     map[string]entities.ObjectType
	relations map[string]entities.ObjectRelation
}

func NewStore() *Store {
	return &Store{
		objects:   map[string]entities.Object{},
		types:     map[string]entities.ObjectType{},
		relations: map[string]entities.ObjectRelation{},
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) CreateObject(_ context.Context, object entities.Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	object.Fields = object.Fields.Clone()
	s.objects[object.ObjectID] = object
	return nil
}

func (s *Store) GetObject(_ context.Context, objectID, companyID string) (entities.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	object, ok := s.objects[objectID]
	if !ok || object.CompanyID != companyID {
		return entities.Object{}, domainerrors.ErrObjectNotFound
	}
	object.Fields = object.Fields.Clone()
	return object, nil
}

func (s *Store) ListObjects(_ context.Context, companyID string, filter ports.ListFilter) ([]entities.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.Object, 0)
	for _, object := range s.objects {
		if object.CompanyID != companyID {
			continue
		}
		if !matchesFilter(object, filter) {
			continue
		}
		object.Fields = object.Fields.Clone()
		matched = append(matched, object)
	}
	sortObjects(matched, filter.SortBy, filter.SortOrder)
	return matched, nil
}

func matchesFilter(object entities.Object, filter ports.ListFilter) bool {
	if filter.Type != "" && object.Type != filter.Type {
		return false
	}
	// Free-text search covers name, type, and description only; dynamic
	// fields are reachable through the per-field filters.
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(object.Name), needle) &&
			!strings.Contains(strings.ToLower(object.Type), needle) &&
			!strings.Contains(strings.ToLower(object.Description), needle) {
			return false
		}
	}
	for name, value := range filter.Fields {
		field, ok := object.Fields[name]
		if !ok {
			return false
		}
		if !strings.Contains(strings.ToLower(field.String()), strings.ToLower(value)) {
			return false
		}
	}
	return true
}

func sortObjects(objects []entities.Object, sortBy, sortOrder string) {
	less := func(a, b entities.Object) bool {
		switch sortBy {
		case "name":
			return a.Name < b.Name
		case "type":
			return a.Type < b.Type
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(objects, func(i, j int) bool {
		if sortOrder == "asc" {
			return less(objects[i], objects[j])
		}
		return less(objects[j], objects[i])
	})
}

func (s *Store) UpdateObject(_ context.Context, object entities.Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.objects[object.ObjectID]
	if !ok || existing.CompanyID != object.CompanyID {
		return domainerrors.ErrObjectNotFound
	}
	object.Fields = object.Fields.Clone()
	s.objects[object.ObjectID] = object
	return nil
}

func (s *Store) DeleteObject(_ context.Context, objectID, companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	object, ok := s.objects[objectID]
	if !ok || object.CompanyID != companyID {
		return domainerrors.ErrObjectNotFound
	}
	delete(s.objects, objectID)
	for relationID, relation := range s.relations {
		if relation.CompanyID == companyID && (relation.SourceID == objectID || relation.TargetID == objectID) {
			delete(s.relations, relationID)
		}
	}
	return nil
}

func (s *Store) ListDistinctTypes(_ context.Context, companyID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]bool{}
	names := make([]string, 0)
	for _, object := range s.objects {
		if object.CompanyID != companyID || seen[object.Type] {
			continue
		}
		seen[object.Type] = true
		names = append(names, object.Type)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) SaveObjectType(_ context.Context, objectType entities.ObjectType) (entities.ObjectType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.types {
		if existing.CompanyID == objectType.CompanyID && existing.Name == objectType.Name {
			return existing, nil
		}
	}
	s.types[objectType.TypeID] = objectType
	return objectType, nil
}

func (s *Store) ListObjectTypes(_ context.Context, companyID string) ([]entities.ObjectType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	types := make([]entities.ObjectType, 0)
	for _, entry := range s.types {
		if entry.CompanyID == companyID {
			types = append(types, entry)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	return types, nil
}

func (s *Store) CreateRelation(_ context.Context, relation entities.ObjectRelation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relations[relation.RelationID] = relation
	return nil
}

func (s *Store) ListRelations(_ context.Context, objectID, companyID string) ([]entities.ObjectRelation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	relations := make([]entities.ObjectRelation, 0)
	for _, relation := range s.relations {
		if relation.CompanyID != companyID {
			continue
		}
		if relation.SourceID == objectID || relation.TargetID == objectID {
			relations = append(relations, relation)
		}
	}
	sort.Slice(relations, func(i, j int) bool {
		return relations[i].CreatedAt.Before(relations[j].CreatedAt)
	})
	return relations, nil
}
