// Package user holds the user record created by the form and an
// in-memory store for it.
package user

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// User is a customer account. Money fields are exact decimals.
type User struct {
	ID       int
	Username string
	Balance  decimal.Decimal
	Consumed decimal.Decimal
	Paid     decimal.Decimal
}

// CalculateDebt books a purchase of price against the user.
func (u *User) CalculateDebt(price decimal.Decimal) {
	u.Balance = u.Balance.Sub(price)
	u.Consumed = u.Consumed.Add(price)
}

func (u User) String() string {
	return fmt.Sprintf("%d %s balance=%s consumed=%s paid=%s",
		u.ID, u.Username, money(u.Balance), money(u.Consumed), money(u.Paid))
}

// money formats d with at least two places and never rounds.
func money(d decimal.Decimal) string {
	return d.StringFixed(max(2, -d.Exponent()))
}

var ErrEmptyName = errors.New("user: empty name")

// Store keeps users in memory. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	users  map[int]*User
	nextID int
}

// NewStore returns an empty store. IDs start at 1.
func NewStore() *Store {
	return &Store{users: make(map[int]*User), nextID: 1}
}

// Create adds a user whose balance and paid amount are the initial
// credit. It satisfies form.Creator.
func (s *Store) Create(ctx context.Context, name string, credit decimal.Decimal) error {
	_, err := s.Add(ctx, name, credit)
	return err
}

// Add is Create returning the new record.
func (s *Store) Add(ctx context.Context, name string, credit decimal.Decimal) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &User{
		ID:       s.nextID,
		Username: name,
		Balance:  credit,
		Paid:     credit,
	}
	s.users[u.ID] = u
	s.nextID++
	return *u, nil
}

// List returns copies of all users ordered by id.
func (s *Store) List() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
