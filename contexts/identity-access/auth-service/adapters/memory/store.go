package memory

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"atlas/contexts/identity-access/auth-service/domain/entities"
	domainerrors "atlas/contexts/identity-access/auth-service/domain/errors"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing the repository, session store,
// clock, id, and token ports. It is intended for tests and local wiring.
type Store struct {
	mu sync.RWMutex

	companies map[string]entities.Company // by company id
	byName    map[string]string           // company name -> id
	users     map[string]entities.User    // by user id
	byUser    map[string]string           // username -> id
	sessions  map[string]entities.Session // by token
}

func NewStore() *Store {
	return &Store{
		companies: make(map[string]entities.Company),
		byName:    make(map[string]string),
		users:     make(map[string]entities.User),
		byUser:    make(map[string]string),
		sessions:  make(map[string]entities.Session),
	}
}

func (s *Store) EnsureCompany(_ context.Context, company entities.Company) (entities.Company, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byName[company.Name]; ok {
		return s.companies[id], false, nil
	}
	s.companies[company.CompanyID] = company
	s.byName[company.Name] = company.CompanyID
	return company, true, nil
}

func (s *Store) CreateUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUser[user.Username]; ok {
		return domainerrors.ErrUsernameTaken
	}
	s.users[user.UserID] = user
	s.byUser[user.Username] = user.UserID
	return nil
}

func (s *Store) GetUser(_ context.Context, userID string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (entities.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUser[username]
	if !ok {
		return entities.User{}, false, nil
	}
	return s.users[id], true, nil
}

// ListCompanyUsers is used by the composition root to satisfy the
// authorization service's user directory in memory wiring.
func (s *Store) ListCompanyUsers(_ context.Context, companyID string) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var users []entities.User
	for _, user := range s.users {
		if user.CompanyID == companyID {
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *Store) CreateSession(_ context.Context, session entities.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.Token] = session
	return nil
}

func (s *Store) GetSession(_ context.Context, token string, now time.Time) (entities.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return entities.Session{}, false, nil
	}
	if session.Expired(now) {
		delete(s.sessions, token)
		return entities.Session{}, false, nil
	}
	return session, true, nil
}

func (s *Store) ExtendSession(_ context.Context, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[token]; ok {
		session.ExpiresAt = expiresAt
		s.sessions[token] = session
	}
	return nil
}

func (s *Store) DeleteSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) NewToken(_ context.Context) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
