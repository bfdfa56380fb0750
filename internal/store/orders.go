package store

import (
	"fmt"
	"sync"
	"time"

	"infinix-store/internal/models"
)

type Orders struct {
	mu     sync.RWMutex
	orders []models.Order
}

func NewOrders(orders []models.Order) *Orders {
	s := &Orders{orders: make([]models.Order, 0, len(orders))}
	for _, o := range orders {
		s.orders = append(s.orders, o.Clone())
	}
	return s
}

func (s *Orders) List() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		res = append(res, o.Clone())
	}
	return res
}

func (s *Orders) Get(id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return models.Order{}, fmt.Errorf("order %q: %w", id, ErrNotFound)
}

// UpdateStatus changes the status in place. Status is the only field admin tooling mutates.
func (s *Orders) UpdateStatus(id string, status models.OrderStatus, at time.Time) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			s.orders[i].UpdatedAt = at
			return s.orders[i].Clone(), nil
		}
	}
	return models.Order{}, fmt.Errorf("order %q: %w", id, ErrNotFound)
}

func (s *Orders) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
