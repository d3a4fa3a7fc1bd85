package pathspace

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/zalando/pathspace/rules"
)

// ErrEmptyPrefixes is returned when a component is created without any
// prefix. This is a configuration fault raised at construction time.
var ErrEmptyPrefixes = errors.New("component requires at least one prefix")

// Component occupies one or more prefixes in the path space and carries
// the ordered rule chain evaluated for requests under those prefixes.
//
// The prefix set is immutable after construction. The rule chain is
// mutable at any time: Prepend and Append swap an immutable snapshot,
// so readers iterating a chain obtained from Rules never observe a
// partial mutation.
type Component struct {
	prefixes []Prefix

	mu    sync.Mutex
	chain atomic.Pointer[[]rules.Rule]
}

// NewComponent creates a component owning the given prefixes with an
// initial rule chain. It fails with ErrEmptyPrefixes when no prefix is
// given; duplicate prefixes within the set are rejected as well.
func NewComponent(prefixes []Prefix, chain ...rules.Rule) (*Component, error) {
	if len(prefixes) == 0 {
		return nil, ErrEmptyPrefixes
	}

	owned := make([]Prefix, len(prefixes))
	copy(owned, prefixes)
	for i, p := range owned {
		for _, q := range owned[:i] {
			if p.Overlaps(q) {
				return nil, &PrefixConflictError{Prefix: p, Existing: q}
			}
		}
	}

	c := &Component{prefixes: owned}
	snapshot := make([]rules.Rule, len(chain))
	copy(snapshot, chain)
	c.chain.Store(&snapshot)
	return c, nil
}

// Prefixes returns a copy of the prefixes owned by the component.
func (c *Component) Prefixes() []Prefix {
	out := make([]Prefix, len(c.prefixes))
	copy(out, c.prefixes)
	return out
}

// Rules returns the current rule chain as a point-in-time snapshot.
// The returned slice is never mutated afterwards; it is safe to iterate
// while other goroutines call Prepend or Append.
func (c *Component) Rules() []rules.Rule {
	return *c.chain.Load()
}

// Prepend inserts rules at the head of the chain. The change is visible
// to iterations starting after the call returns; it does not affect an
// iteration already in progress.
func (c *Component) Prepend(chain ...rules.Rule) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := *c.chain.Load()
	next := make([]rules.Rule, 0, len(chain)+len(current))
	next = append(next, chain...)
	next = append(next, current...)
	c.chain.Store(&next)
}

// Append inserts rules at the tail of the chain.
func (c *Component) Append(chain ...rules.Rule) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := *c.chain.Load()
	next := make([]rules.Rule, 0, len(current)+len(chain))
	next = append(next, current...)
	next = append(next, chain...)
	c.chain.Store(&next)
}
