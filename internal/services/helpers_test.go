package services

import (
	"context"
	"testing"

	"infinix-store/internal/kv"
	"infinix-store/internal/models"
	"infinix-store/internal/seed"
	"infinix-store/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testDB(t *testing.T) *store.DB {
	t.Helper()
	f, err := seed.Default()
	require.NoError(t, err)
	db, err := store.FromFixtures(f, bcrypt.MinCost)
	require.NoError(t, err)
	return db
}

type fixture struct {
	db       *store.DB
	kv       *kv.MemoryStore
	identity *IdentityService
	cart     *CartService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testDB(t)
	mem := kv.NewMemoryStore()
	identity := NewIdentityService(db.Users, mem, zerolog.Nop(), bcrypt.MinCost)
	cart := NewCartService(mem, zerolog.Nop())
	identity.OnSessionChange(cart.SetUser)
	return &fixture{db: db, kv: mem, identity: identity, cart: cart}
}

func (f *fixture) login(t *testing.T, email, password string) *models.SessionUser {
	t.Helper()
	u, err := f.identity.Login(context.Background(), &models.LoginRequest{Email: email, Password: password})
	require.NoError(t, err)
	return u
}

func (f *fixture) product(t *testing.T, id string) models.Product {
	t.Helper()
	p, err := f.db.Catalog.Product(id)
	require.NoError(t, err)
	return p
}
