// Package seed loads the storefront fixtures: users, catalog, orders and saved designs.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"infinix-store/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

type UserFixture struct {
	models.User `yaml:",inline"`
	Password    string `yaml:"password"`
}

type Fixtures struct {
	Users      []UserFixture       `yaml:"users"`
	Categories []models.Category   `yaml:"categories"`
	Products   []models.Product    `yaml:"products"`
	Orders     []models.Order      `yaml:"orders"`
	Designs    []models.RoomDesign `yaml:"designs"`
}

func Parse(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &f, nil
}

// Default returns the fixtures compiled into the binary.
func Default() (*Fixtures, error) {
	return Parse(defaultFixtures)
}

// Load reads fixtures from path, falling back to the embedded set when path is empty.
func Load(path string) (*Fixtures, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return Parse(data)
}

// UserRecords hashes fixture passwords with the given bcrypt cost.
func (f *Fixtures) UserRecords(cost int) ([]models.User, error) {
	users := make([]models.User, 0, len(f.Users))
	for _, u := range f.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", u.Email, err)
		}
		user := u.User
		user.PasswordHash = string(hash)
		if user.Role == "" {
			user.Role = string(models.RoleUser)
		}
		users = append(users, user)
	}
	return users, nil
}
