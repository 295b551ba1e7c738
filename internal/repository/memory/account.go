// Package memory provides in-process stores for tests and local development.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/premium-server/internal/model"
	"github.com/google/uuid"
)

var _ model.AccountStore = (*AccountRepository)(nil)

// AccountRepository keeps accounts in a map indexed by id and email.
// It is safe for concurrent use.
type AccountRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]model.Account
	byEmail map[string]uuid.UUID
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:    make(map[uuid.UUID]model.Account),
		byEmail: make(map[string]uuid.UUID),
	}
}

func cloneAccount(a model.Account) model.Account {
	out := a
	out.GoogleSubject = cloneString(a.GoogleSubject)
	out.Picture = cloneString(a.Picture)
	out.PendingCode = cloneString(a.PendingCode)
	if a.CodeExpiresAt != nil {
		t := *a.CodeExpiresAt
		out.CodeExpiresAt = &t
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[model.NormalizeEmail(email)]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return cloneAccount(r.byID[id]), nil
}

func (r *AccountRepository) GetByID(_ context.Context, id uuid.UUID) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.byID[id]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return cloneAccount(acc), nil
}

// getOrInsertLocked returns the account for candidate's email, storing
// candidate when the email is unknown.
func (r *AccountRepository) getOrInsertLocked(candidate model.Account) model.Account {
	email := model.NormalizeEmail(candidate.Email)
	if id, ok := r.byEmail[email]; ok {
		return r.byID[id]
	}

	candidate.Email = email
	if candidate.UpdatedAt.IsZero() {
		candidate.UpdatedAt = candidate.CreatedAt
	}
	r.byID[candidate.ID] = candidate
	r.byEmail[email] = candidate.ID
	return candidate
}

func (r *AccountRepository) SetPendingCode(_ context.Context, shell model.Account, code string, expiresAt time.Time) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc := r.getOrInsertLocked(cloneAccount(shell))
	acc.PendingCode = &code
	acc.CodeExpiresAt = &expiresAt
	acc.UpdatedAt = shell.CreatedAt
	r.byID[acc.ID] = acc

	return cloneAccount(acc), nil
}

func (r *AccountRepository) ConsumeCode(_ context.Context, email, code string, now time.Time) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[model.NormalizeEmail(email)]
	if !ok {
		return model.Account{}, model.ErrInvalidOrExpired
	}

	acc := r.byID[id]
	if !acc.CodeMatches(code, now) {
		return model.Account{}, model.ErrInvalidOrExpired
	}
	acc.ClearCode()
	acc.UpdatedAt = now
	r.byID[id] = acc

	return cloneAccount(acc), nil
}

func (r *AccountRepository) ResolveGoogle(_ context.Context, candidate model.Account) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byEmail[model.NormalizeEmail(candidate.Email)]; ok {
		acc := r.byID[id]
		var subject string
		if candidate.GoogleSubject != nil {
			subject = *candidate.GoogleSubject
		}
		if acc.LinkGoogle(subject, candidate.PictureURL()) {
			acc.UpdatedAt = candidate.CreatedAt
			r.byID[id] = acc
		}
		return cloneAccount(acc), nil
	}

	candidate = cloneAccount(candidate)
	candidate.Picture = pictureOrNil(candidate.PictureURL())
	return cloneAccount(r.getOrInsertLocked(candidate)), nil
}

func pictureOrNil(p string) *string {
	if p == "" {
		return nil
	}
	return &p
}
