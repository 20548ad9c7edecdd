// Package cart keeps the lines a browser profile has picked from the menu and
// persists them after every change so the cart survives a reload.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Keoroanthony/go-food-ordering/internal/models"
)

type Line struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// MarshalJSON writes price as a JSON number. Decoding accepts a number or a string.
func (l Line) MarshalJSON() ([]byte, error) {
	type plain Line
	return json.Marshal(struct {
		plain
		Price json.Number `json:"price"`
	}{plain(l), json.Number(l.Price.String())})
}

// Total is Σ price×quantity. It is never cached.
func Total(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// Store holds one cart. Lines keep insertion order and ids are unique.
type Store struct {
	mu      sync.Mutex
	key     string
	lines   []Line
	storage Storage
}

func NewStore(storage Storage, key string) *Store {
	return &Store{storage: storage, key: key}
}

// Open builds a store for key and restores whatever was last persisted under it.
func Open(ctx context.Context, storage Storage, key string) (*Store, error) {
	s := NewStore(storage, key)
	if err := s.Restore(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Restore replaces the current lines with the persisted cart, if there is one.
func (s *Store) Restore(ctx context.Context) error {
	lines, ok, err := s.storage.Load(ctx, s.key)
	if err != nil {
		return fmt.Errorf("restore cart %s: %w", s.key, err)
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.lines = normalize(lines)
	s.mu.Unlock()
	return nil
}

func (s *Store) Add(ctx context.Context, item models.MenuItem) {
	s.mutate(ctx, func(lines []Line) []Line {
		if i := indexOf(lines, item.ID); i >= 0 {
			lines[i].Quantity++
			return lines
		}
		return append(lines, Line{ID: item.ID, Name: item.Name, Price: item.Price.Round(2), Quantity: 1})
	})
}

func (s *Store) Remove(ctx context.Context, id uint) {
	s.mutate(ctx, func(lines []Line) []Line {
		i := indexOf(lines, id)
		if i < 0 {
			return lines
		}
		return append(lines[:i], lines[i+1:]...)
	})
}

// UpdateQuantity sets the quantity of a line, never below 1. Use Remove to drop a line.
func (s *Store) UpdateQuantity(ctx context.Context, id uint, quantity int) {
	s.mutate(ctx, func(lines []Line) []Line {
		if i := indexOf(lines, id); i >= 0 {
			lines[i].Quantity = max(quantity, 1)
		}
		return lines
	})
}

func (s *Store) Clear(ctx context.Context) {
	s.mutate(ctx, func([]Line) []Line { return nil })
}

// Lines returns a copy of the cart contents.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Line(nil), s.lines...)
}

func (s *Store) Total() decimal.Decimal {
	return Total(s.Lines())
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

func (s *Store) mutate(ctx context.Context, fn func([]Line) []Line) {
	s.mu.Lock()
	s.lines = fn(s.lines)
	snapshot := append([]Line{}, s.lines...)
	s.mu.Unlock()

	// A failed write leaves the in-memory cart authoritative; the next mutation rewrites it.
	if err := s.storage.Save(ctx, s.key, snapshot); err != nil {
		log.Printf("Failed to persist cart %s: %v", s.key, err)
	}
}

func indexOf(lines []Line, id uint) int {
	for i := range lines {
		if lines[i].ID == id {
			return i
		}
	}
	return -1
}

// normalize merges duplicate ids, rounds prices to cents and lifts quantities below 1,
// so a hand-edited or stale snapshot cannot break the cart invariants.
func normalize(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		l.Price = l.Price.Round(2)
		if l.Quantity < 1 {
			l.Quantity = 1
		}
		if i := indexOf(out, l.ID); i >= 0 {
			out[i].Quantity += l.Quantity
			continue
		}
		out = append(out, l)
	}
	return out
}
