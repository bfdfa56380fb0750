package store

import (
	"fmt"
	"sync"

	"infinix-store/internal/models"
)

type Designs struct {
	mu      sync.RWMutex
	designs []models.RoomDesign
}

func NewDesigns(designs []models.RoomDesign) *Designs {
	s := &Designs{designs: make([]models.RoomDesign, 0, len(designs))}
	for _, d := range designs {
		s.designs = append(s.designs, d.Clone())
	}
	return s
}

func (s *Designs) List() []models.RoomDesign {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]models.RoomDesign, 0, len(s.designs))
	for _, d := range s.designs {
		res = append(res, d.Clone())
	}
	return res
}

func (s *Designs) Get(id string) (models.RoomDesign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.designs {
		if d.ID == id {
			return d.Clone(), nil
		}
	}
	return models.RoomDesign{}, fmt.Errorf("design %q: %w", id, ErrNotFound)
}

// Add appends without conflict detection or versioning.
func (s *Designs) Add(d models.RoomDesign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.designs = append(s.designs, d.Clone())
}

func (s *Designs) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.designs {
		if s.designs[i].ID == id {
			s.designs = append(s.designs[:i], s.designs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("design %q: %w", id, ErrNotFound)
}

func (s *Designs) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.designs)
}
