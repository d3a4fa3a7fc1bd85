// Copyright 2024 Zalando SE
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pathspace

import (
	"fmt"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/zalando/pathspace/metrics"
	"github.com/zalando/pathspace/pathtree"
)

// PrefixConflictError reports a prefix that overlaps an already
// registered one. The whole registration call it belongs to has no
// effect.
type PrefixConflictError struct {
	// Prefix is the rejected prefix.
	Prefix Prefix

	// Existing is the registered prefix it overlaps.
	Existing Prefix
}

func (e *PrefixConflictError) Error() string {
	return fmt.Sprintf("prefix %s conflicts with registered prefix %s", e.Prefix, e.Existing)
}

// Options to create a Space.
type Options struct {
	// Metrics is an optional measurement sink. Nil disables
	// instrumentation.
	Metrics *metrics.Metrics
}

// Space is the registry partitioning the path space among components.
// One Space exists per application; create it at startup, register the
// components, and dispatch requests against it.
//
// Registration validates the whole call against the current state and
// publishes an updated lookup tree atomically, so lookups are lock-free
// and never observe a partially registered component.
type Space struct {
	mu      sync.Mutex
	entries []spaceEntry
	tree    atomic.Pointer[pathtree.Tree]

	metrics *metrics.Metrics
}

type spaceEntry struct {
	prefix    Prefix
	component *Component
}

// NewSpace creates an empty path space.
func NewSpace(o Options) *Space {
	s := &Space{metrics: o.Metrics}
	s.tree.Store(&pathtree.Tree{})
	return s
}

// Register claims the prefixes of the given components. The call is
// atomic: when any prefix conflicts with a registered one, or with
// another prefix from the same call, none of the components is
// registered and a *PrefixConflictError names the offending prefix.
func (s *Space) Register(components ...*Component) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.tree.Load().Clone()
	entries := s.entries
	registered := len(entries)
	for _, c := range components {
		for _, p := range c.Prefixes() {
			if err := next.Add(p.String(), c); err != nil {
				ce := err.(*pathtree.ConflictError)
				return &PrefixConflictError{
					Prefix:   Prefix(ce.Prefix),
					Existing: Prefix(ce.Existing),
				}
			}

			entries = append(entries, spaceEntry{prefix: p, component: c})
		}
	}

	s.entries = entries
	s.tree.Store(next)
	for _, e := range entries[registered:] {
		log.Infof("pathspace: registered prefix %s", e.prefix)
	}
	s.metrics.UpdatePrefixes(next.Size())
	return nil
}

// Prefixes returns the currently registered prefixes.
func (s *Space) Prefixes() []Prefix {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Prefix, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.prefix
	}

	return out
}

// Get resolves a path to the component owning it and the structural
// decomposition of the match. It reports false when no registered
// prefix covers the path; that is a normal outcome, not an error.
func (s *Space) Get(path Path) (*Component, *Match, bool) {
	value, prefixLen, ok := s.tree.Load().Lookup(lookupPath(path))
	if !ok {
		s.metrics.IncLookup(false)
		return nil, nil, false
	}

	s.metrics.IncLookup(true)
	c := value.(*Component)
	m := newMatch(owningPrefix(c, path), path, prefixLen)
	return c, m, true
}

// lookupPath strips the trailing slash tolerated by ParsePath so the
// tree only deals in canonical segment sequences.
func lookupPath(p Path) string {
	s := string(p)
	if len(s) > 1 && s[len(s)-1] == '/' {
		return s[:len(s)-1]
	}

	return s
}

// owningPrefix finds which of the component's prefixes covers the path.
// Prefix disjointness makes the answer unique.
func owningPrefix(c *Component, path Path) Prefix {
	for _, p := range c.prefixes {
		if p.Contains(path) {
			return p
		}
	}

	// unreachable while the tree and the component agree on the
	// registered prefixes
	return ""
}
