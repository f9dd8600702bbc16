package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"atlas/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "atlas/contexts/identity-access/authorization-service/domain/errors"
	"atlas/contexts/identity-access/authorization-service/ports"
)

// Store is the in-memory adapter behind RoleRepository and UserDirectory,
// plus Clock and IDGenerator, for tests and local wiring.
type Store struct {
	mu          sync.RWMutex
	roles       map[string]entities.Role
	rolesByName map[string]string
	assignments map[string]map[string]entities.UserRole
	users       map[string]ports.UserRecord
}

func NewStore() *Store {
	return &Store{
		roles:       map[string]entities.Role{},
		rolesByName: map[string]string{},
		assignments: map[string]map[string]entities.UserRole{},
		users:       map[string]ports.UserRecord{},
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) EnsureRole(_ context.Context, role entities.Role) (entities.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existingID, ok := s.rolesByName[role.Name]; ok {
		return s.roles[existingID], nil
	}
	s.roles[role.RoleID] = role
	s.rolesByName[role.Name] = role.RoleID
	return role, nil
}

func (s *Store) GetRole(_ context.Context, roleID string) (entities.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.roles[roleID]
	if !ok {
		return entities.Role{}, domainerrors.ErrRoleNotFound
	}
	return role, nil
}

func (s *Store) ListRoles(_ context.Context) ([]entities.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roles := make([]entities.Role, 0, len(s.roles))
	for _, role := range s.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles, nil
}

func (s *Store) AssignRole(_ context.Context, assignment entities.UserRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byRole, ok := s.assignments[assignment.UserID]
	if !ok {
		byRole = map[string]entities.UserRole{}
		s.assignments[assignment.UserID] = byRole
	}
	if _, exists := byRole[assignment.RoleID]; exists {
		return domainerrors.ErrRoleAlreadyAssigned
	}
	byRole[assignment.RoleID] = assignment
	return nil
}

func (s *Store) ListUserRoles(_ context.Context, userID string) ([]entities.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roles := make([]entities.Role, 0, len(s.assignments[userID]))
	for roleID := range s.assignments[userID] {
		if role, ok := s.roles[roleID]; ok {
			roles = append(roles, role)
		}
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles, nil
}

func (s *Store) FindUser(_ context.Context, userID string) (ports.UserRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.users[userID]
	return record, ok, nil
}

func (s *Store) ListCompanyUsers(_ context.Context, companyID string) ([]ports.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]ports.UserRecord, 0)
	for _, record := range s.users {
		if record.CompanyID == companyID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// PutUser mirrors an identity row into the directory. The memory wiring calls
// this from registration glue; postgres wiring reads the users table instead.
func (s *Store) PutUser(record ports.UserRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[record.UserID] = record
}
