// Package store is the in-process pseudo-database of the storefront.
//
// Every collection is guarded by its own lock and follows a copy-on-read,
// copy-on-write contract: callers never hold references into store state,
// and every read issued after a mutation returns observes that mutation.
package store

import (
	"errors"

	"infinix-store/internal/seed"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailInUse = errors.New("email is already in use")
)

// DB bundles the collections that make up the storefront's pseudo-database.
type DB struct {
	Catalog *Catalog
	Users   *Users
	Orders  *Orders
	Designs *Designs
}

// FromFixtures builds a DB from seed fixtures, hashing user passwords with bcryptCost.
func FromFixtures(f *seed.Fixtures, bcryptCost int) (*DB, error) {
	users, err := f.UserRecords(bcryptCost)
	if err != nil {
		return nil, err
	}
	return &DB{
		Catalog: NewCatalog(f.Products, f.Categories),
		Users:   NewUsers(users),
		Orders:  NewOrders(f.Orders),
		Designs: NewDesigns(f.Designs),
	}, nil
}
