package services

import (
	"testing"

	"infinix-store/internal/designer"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDesigner(t *testing.T, f *fixture) *DesignerService {
	t.Helper()
	return NewDesignerService(designer.NewSession(), f.db.Catalog, f.db.Designs, f.identity, zerolog.Nop())
}

func TestDesignerOpen_FromSavedDesign(t *testing.T) {
	f := newFixture(t)
	svc := newDesigner(t, f)

	require.NoError(t, svc.Open("", "design-2"))
	room := svc.Session().Room()
	assert.Equal(t, "#E0E0E0", room.WallColor)
	require.Len(t, room.Furniture, 1)
	assert.Equal(t, "chair-1", room.Furniture[0].ID)
	assert.False(t, svc.Session().CanUndo())

	assert.ErrorIs(t, svc.Open("", "design-9"), ErrDesignNotFound)
}

func TestDesignerOpen_SeedsProduct(t *testing.T) {
	f := newFixture(t)
	svc := newDesigner(t, f)

	require.NoError(t, svc.Open("bed-1", ""))
	room := svc.Session().Room()
	require.Len(t, room.Furniture, 1)
	assert.Equal(t, "bed-1", room.Furniture[0].ID)
	assert.Equal(t, designer.GridPosition(0), room.Furniture[0].Position)

	require.NoError(t, svc.Open("no-such-product", ""))
	assert.Equal(t, designer.DefaultRoom(), svc.Session().Room())
}

func TestDesignerAddFurniture(t *testing.T) {
	f := newFixture(t)
	svc := newDesigner(t, f)

	p, err := svc.AddFurniture("sofa-1")
	require.NoError(t, err)
	assert.Equal(t, "Modern Leather Sofa", p.Name)
	assert.True(t, svc.Session().CanUndo())

	_, err = svc.AddFurniture("missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDesignerSave(t *testing.T) {
	f := newFixture(t)
	svc := newDesigner(t, f)
	_, err := svc.AddFurniture("table-1")
	require.NoError(t, err)

	_, err = svc.Save("Dining Nook")
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	f.login(t, "john@example.com", "password123")
	_, err = svc.Save("  ")
	assert.ErrorIs(t, err, designer.ErrDesignNameRequired)

	before := f.db.Designs.Len()
	d, err := svc.Save("Dining Nook")
	require.NoError(t, err)
	assert.Equal(t, "user-1", d.UserID)
	assert.Equal(t, before+1, f.db.Designs.Len())

	saved, err := f.db.Designs.Get(d.ID)
	require.NoError(t, err)
	assert.Equal(t, "table-1", saved.RoomData.Furniture[0].ID)
}
