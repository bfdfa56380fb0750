package store

import (
	"fmt"
	"sync"

	"infinix-store/internal/models"
)

type Users struct {
	mu    sync.RWMutex
	users []models.User
}

func NewUsers(users []models.User) *Users {
	return &Users{users: append([]models.User(nil), users...)}
}

// FindByEmail matches the email exactly, case included.
func (s *Users) FindByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Users) FindByID(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %q: %w", id, ErrNotFound)
}

// Add appends u unless another user already has its email.
func (s *Users) Add(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrEmailInUse
		}
	}
	s.users = append(s.users, u)
	return nil
}

func (s *Users) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
