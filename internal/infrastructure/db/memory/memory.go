// Package memory holds in-process stores for development and tests. Data is
// lost on restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/law-manager/lawauth/internal/core/domain"
	"github.com/law-manager/lawauth/internal/core/ports"
)

// AccountRepository is a map-backed ports.AccountRepository.
type AccountRepository struct {
	mu         sync.RWMutex
	byID       map[string]*domain.Account
	byEmail    map[string]string
	byUsername map[string]string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:       make(map[string]*domain.Account),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (r *AccountRepository) Create(_ context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[a.Email]; ok {
		return domain.ErrUserExists
	}
	if _, ok := r.byUsername[a.Username]; ok {
		return domain.ErrUserExists
	}
	clone := *a
	r.byID[a.ID] = &clone
	r.byEmail[a.Email] = a.ID
	r.byUsername[a.Username] = a.ID
	return nil
}

func (r *AccountRepository) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.get(id)
}

func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.get(r.byEmail[email])
}

func (r *AccountRepository) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.get(r.byUsername[username])
}

func (r *AccountRepository) get(id string) (*domain.Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *a
	return &clone, nil
}

// SessionRepository is a map-backed ports.SessionRepository.
type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*domain.ProviderSession
	now      func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*domain.ProviderSession),
		now:      time.Now,
	}
}

func (r *SessionRepository) Create(_ context.Context, s *domain.ProviderSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *s
	r.sessions[s.Token] = &clone
	return nil
}

func (r *SessionRepository) FindByToken(_ context.Context, token string) (*domain.ProviderSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.Expired(r.now()) {
		delete(r.sessions, token)
		return nil, domain.ErrSessionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *SessionRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

// Directory is a map-backed ports.UserDirectory indexed by username and
// email. Like the database backends it rejects an entry whose email or
// username belongs to another user.
type Directory struct {
	mu         sync.RWMutex
	byID       map[string]*domain.DirectoryEntry
	byEmail    map[string]string
	byUsername map[string]string
}

func NewDirectory() *Directory {
	return &Directory{
		byID:       make(map[string]*domain.DirectoryEntry),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (d *Directory) Upsert(_ context.Context, e *domain.DirectoryEntry) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if id, ok := d.byEmail[e.Email]; ok && id != e.ID {
		return domain.ErrUserExists
	}
	if id, ok := d.byUsername[e.Username]; ok && id != e.ID {
		return domain.ErrUserExists
	}

	if prev, ok := d.byID[e.ID]; ok {
		delete(d.byEmail, prev.Email)
		delete(d.byUsername, prev.Username)
	}
	clone := *e
	d.byID[e.ID] = &clone
	d.byEmail[e.Email] = e.ID
	d.byUsername[e.Username] = e.ID
	return nil
}

func (d *Directory) FindByUsername(_ context.Context, username string) (*domain.DirectoryEntry, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *d.byID[id]
	return &clone, nil
}

func (d *Directory) ExistsByEmail(_ context.Context, email string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.byEmail[email]
	return ok, nil
}

func (d *Directory) ExistsByUsername(_ context.Context, username string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.byUsername[username]
	return ok, nil
}

// compile-time interface checks
var (
	_ ports.AccountRepository = (*AccountRepository)(nil)
	_ ports.SessionRepository = (*SessionRepository)(nil)
	_ ports.UserDirectory     = (*Directory)(nil)
)
