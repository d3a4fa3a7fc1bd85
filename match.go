package pathspace

import (
	"errors"
	"fmt"

	"github.com/zalando/pathspace/rules"
)

// Match is the structural decomposition of a resolved path. It is
// produced fresh by every resolution and never mutated afterwards.
type Match struct {
	// Prefix is the registered prefix owning the path.
	Prefix Prefix

	// PrefixPath is the request path truncated to the owning subtree.
	PrefixPath Path

	// Path is the remainder addressed past the prefix, the part the
	// owning component interprets. It always starts with '/'; it is
	// exactly "/" when the request path equals the prefix.
	Path Path
}

func (m *Match) String() string {
	return fmt.Sprintf("%s:%s", m.PrefixPath, m.Path)
}

// newMatch decomposes a path against the owning prefix. prefixLen is
// the byte length of the prefix within the path, as reported by the
// lookup tree.
func newMatch(prefix Prefix, path Path, prefixLen int) *Match {
	prefixPath := path[:prefixLen]
	rest := path[prefixLen:]
	if prefix == "/" {
		prefixPath = "/"
		rest = path
	}

	if rest == "" {
		rest = "/"
	}

	return &Match{
		Prefix:     prefix,
		PrefixPath: prefixPath,
		Path:       rest,
	}
}

// ErrNoMatchScope is returned when the current path match is read
// outside of an active dispatch. This is engine misuse, reported as a
// hard failure rather than treated as a silent no-match.
var ErrNoMatchScope = errors.New("no path match in evaluation scope")

type matchKey struct{}

// MatchFromContext returns the path match of the innermost active
// dispatch on the context, or ErrNoMatchScope when none is active.
func MatchFromContext(c *rules.Context) (*Match, error) {
	v, ok := c.Lookup(matchKey{})
	if !ok {
		return nil, ErrNoMatchScope
	}

	return v.(*Match), nil
}

// publishMatch publishes m as the current path match and returns a
// function restoring the previous scope. Save and restore are strictly
// nested, so re-entrant dispatch sees its own match and the enclosing
// dispatch gets its value back on every exit path.
func publishMatch(c *rules.Context, m *Match) (restore func()) {
	prev, had := c.Lookup(matchKey{})
	c.Set(matchKey{}, m)
	return func() {
		if had {
			c.Set(matchKey{}, prev)
		} else {
			c.Delete(matchKey{})
		}
	}
}
