package services

import (
	"context"
	"errors"

	"infinix-store/internal/designer"
	"infinix-store/internal/models"
	"infinix-store/internal/store"

	"github.com/rs/zerolog"
)

// DesignerService connects one client's designer session to the catalog and the design list.
type DesignerService struct {
	session  *designer.Session
	catalog  *store.Catalog
	designs  *store.Designs
	identity *IdentityService
	logger   zerolog.Logger

	userID string
}

func NewDesignerService(session *designer.Session, catalog *store.Catalog, designs *store.Designs, identity *IdentityService, logger zerolog.Logger) *DesignerService {
	return &DesignerService{
		session:  session,
		catalog:  catalog,
		designs:  designs,
		identity: identity,
		logger:   logger,
	}
}

// SetUser starts the next user on a default room.
func (s *DesignerService) SetUser(_ context.Context, user *models.SessionUser) {
	id := ""
	if user != nil {
		id = user.ID
	}
	if id == s.userID {
		return
	}
	s.userID = id
	s.session.Reset()
}

func (s *DesignerService) Session() *designer.Session {
	return s.session
}

// Open starts a fresh session, seeded from a saved design or a product when given.
// An unknown product is ignored; an unknown design is an error.
func (s *DesignerService) Open(productID, designID string) error {
	if designID != "" {
		d, err := s.designs.Get(designID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrDesignNotFound
		}
		if err != nil {
			return err
		}
		s.session.LoadDesign(d)
		return nil
	}

	if productID != "" {
		if p, err := s.catalog.Product(productID); err == nil {
			s.session.SeedProduct(p)
			return nil
		}
		s.logger.Debug().Str("product_id", productID).Msg("Ignoring unknown product seed")
	}
	s.session.Reset()
	return nil
}

func (s *DesignerService) AddFurniture(productID string) (models.Placement, error) {
	p, err := s.catalog.Product(productID)
	if err != nil {
		return models.Placement{}, ErrProductNotFound
	}
	return s.session.AddFurniture(p), nil
}

func (s *DesignerService) Save(name string) (models.RoomDesign, error) {
	d, err := s.session.SaveDesign(name, s.identity.CurrentUser(), s.designs)
	if errors.Is(err, designer.ErrNoOwner) {
		return models.RoomDesign{}, ErrNotLoggedIn
	}
	return d, err
}
