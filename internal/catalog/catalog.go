// Package catalog holds the in-memory item list and the active search
// criteria, and runs the mutation flows. Consistency rule: every
// successful mutation is followed by a full refetch under the active
// criteria — the list is never patched locally, so what is displayed is
// always a server snapshot. The extra round trip per write is a
// deliberate simplicity-over-latency tradeoff.
package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/sweetshop/sweetshop-client/internal/api"
	"github.com/sweetshop/sweetshop-client/internal/model"
)

// ErrBusy is returned when the same action is invoked again while its
// first request is still outstanding. It reduces duplicate submissions
// from one control; the server remains responsible for correctness.
var ErrBusy = errors.New("catalog: action already in progress")

// Stats are the dashboard summary numbers, recomputed from the held
// list on every call rather than maintained incrementally.
type Stats struct {
	Total   int     // number of items
	InStock int     // items with quantity > 0
	Value   float64 // aggregate inventory value, Σ price×quantity
}

// Catalog is the view model behind the dashboard and the admin panel.
type Catalog struct {
	api *api.Client

	mu       sync.Mutex
	sweets   []model.Sweet
	criteria model.SearchCriteria
	busy     map[string]bool
}

func New(client *api.Client) *Catalog {
	return &Catalog{
		api:  client,
		busy: make(map[string]bool),
	}
}

// Refresh refetches the item list using the active criteria, replacing
// the held list wholesale.
func (c *Catalog) Refresh(ctx context.Context) error {
	c.mu.Lock()
	criteria := c.criteria
	c.mu.Unlock()

	sweets, err := c.api.SearchSweets(ctx, criteria)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.sweets = sweets
	c.mu.Unlock()
	return nil
}

// Search installs new criteria and refetches. Clearing the filter is
// just a search with empty criteria.
func (c *Catalog) Search(ctx context.Context, criteria model.SearchCriteria) error {
	c.mu.Lock()
	c.criteria = criteria
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Sweets returns a copy of the held list.
func (c *Catalog) Sweets() []model.Sweet {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Sweet, len(c.sweets))
	copy(out, c.sweets)
	return out
}

// ActiveCriteria returns the criteria currently applied.
func (c *Catalog) ActiveCriteria() model.SearchCriteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria
}

// Stats recomputes the summary from the held list. The numbers are
// always consistent with the list, even when that list is stale
// relative to the server.
func (c *Catalog) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := Stats{Total: len(c.sweets)}
	for _, s := range c.sweets {
		if s.InStock() {
			st.InStock++
		}
		st.Value += s.Price * float64(s.Quantity)
	}
	return st
}

// ----- mutation flows -----

// Create adds an item and refetches.
func (c *Catalog) Create(ctx context.Context, in model.SweetInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	return c.mutate(ctx, "create", func() error {
		_, err := c.api.CreateSweet(ctx, in)
		return err
	})
}

// Update edits an item and refetches.
func (c *Catalog) Update(ctx context.Context, id string, in model.SweetInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	return c.mutate(ctx, "update:"+id, func() error {
		_, err := c.api.UpdateSweet(ctx, id, in)
		return err
	})
}

// Delete removes an item and refetches.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	return c.mutate(ctx, "delete:"+id, func() error {
		return c.api.DeleteSweet(ctx, id)
	})
}

// Purchase buys quantity units. The positive check happens here before
// a request is issued, but the server's stock decision is authoritative
// and its rejection is surfaced verbatim — the held list stays exactly
// as it was when a purchase fails.
func (c *Catalog) Purchase(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return model.ErrQuantityNotPositive
	}
	return c.mutate(ctx, "purchase:"+id, func() error {
		return c.api.Purchase(ctx, id, quantity)
	})
}

// Restock adds quantity units to an item.
func (c *Catalog) Restock(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return model.ErrQuantityNotPositive
	}
	return c.mutate(ctx, "restock:"+id, func() error {
		_, err := c.api.Restock(ctx, id, quantity)
		return err
	})
}

// mutate runs one write under a per-action busy flag and, on success,
// refreshes the list under the active criteria.
func (c *Catalog) mutate(ctx context.Context, action string, fn func() error) error {
	if !c.begin(action) {
		return ErrBusy
	}
	defer c.end(action)

	if err := fn(); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

func (c *Catalog) begin(action string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy[action] {
		return false
	}
	c.busy[action] = true
	return true
}

func (c *Catalog) end(action string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.busy, action)
}
