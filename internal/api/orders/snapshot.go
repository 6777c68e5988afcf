// Package orders serves the direct-CSV read surface: a paginated, filtered
// listing over the raw orders extract, loaded once at process start.
package orders

import (
	"strings"
	"time"

	"github.com/johnwards/olist-analytics/internal/domain"
	"github.com/johnwards/olist-analytics/internal/extract"
)

// Snapshot owns the orders dataset for the lifetime of the process. It is
// immutable after construction, so request handlers can share it without
// locking. A snapshot that failed to load stays empty and the listing
// endpoint reports a server error instead of crashing the process.
type Snapshot struct {
	orders []domain.Order
}

// LoadSnapshot reads the orders extract at path. The returned error is meant
// to be logged, not to abort startup: callers should fall back to an empty
// snapshot so the process still comes up and /health keeps answering.
func LoadSnapshot(path string) (*Snapshot, error) {
	rows, err := extract.Orders(path)
	if err != nil {
		return &Snapshot{}, err
	}
	return &Snapshot{orders: rows}, nil
}

// NewSnapshot wraps an already-extracted orders slice, mainly for tests.
func NewSnapshot(rows []domain.Order) *Snapshot {
	return &Snapshot{orders: rows}
}

// Loaded reports whether the snapshot holds any data. An empty source file is
// treated the same as a failed load.
func (s *Snapshot) Loaded() bool {
	return len(s.orders) > 0
}

// Filter selects orders matching all the given criteria. All fields are
// optional; the zero Filter selects everything.
type Filter struct {
	CustomerID string     // exact match
	Status     string     // case-insensitive exact match
	From       *time.Time // purchase timestamp >= From, inclusive
	To         *time.Time // purchase timestamp <= To, inclusive
}

// Select returns the orders matching f, preserving the source order of the
// extract. Orders with a null purchase timestamp never match a date filter.
func (s *Snapshot) Select(f Filter) []domain.Order {
	var out []domain.Order
	for _, o := range s.orders {
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		if f.Status != "" && !strings.EqualFold(o.Status, f.Status) {
			continue
		}
		if f.From != nil && (!o.PurchaseTimestamp.Valid || o.PurchaseTimestamp.Time.Before(*f.From)) {
			continue
		}
		if f.To != nil && (!o.PurchaseTimestamp.Valid || o.PurchaseTimestamp.Time.After(*f.To)) {
			continue
		}
		out = append(out, o)
	}
	return out
}
