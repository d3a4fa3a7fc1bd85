package pathspace

import (
	"fmt"
	"strings"
)

// Path is a validated absolute request path. The zero value is invalid;
// use ParsePath or MustParsePath.
type Path string

// Prefix is a validated subtree root of the path space. A prefix owns
// the path equal to it and every path below it. The zero value is
// invalid; use ParsePrefix or MustParsePrefix.
type Prefix string

// ValidationError reports a malformed path or prefix literal.
type ValidationError struct {
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Value, e.Reason)
}

func validatePath(s string) error {
	switch {
	case s == "":
		return &ValidationError{s, "empty"}
	case s[0] != '/':
		return &ValidationError{s, "must start with '/'"}
	case strings.ContainsRune(s, 0):
		return &ValidationError{s, "contains NUL"}
	}

	if s == "/" {
		return nil
	}

	// a single trailing slash is allowed on paths; prefixes reject it
	// separately
	trimmed := strings.TrimSuffix(s[1:], "/")
	for _, seg := range strings.Split(trimmed, "/") {
		switch seg {
		case "":
			return &ValidationError{s, "empty path segment"}
		case ".", "..":
			return &ValidationError{s, "relative path segment"}
		}
	}

	return nil
}

// ParsePath validates s as an absolute path. Paths are case sensitive
// and must not contain empty, "." or ".." segments. A single trailing
// slash is allowed.
func ParsePath(s string) (Path, error) {
	if err := validatePath(s); err != nil {
		return "", err
	}

	return Path(s), nil
}

// MustParsePath is like ParsePath but panics on invalid input. Intended
// for literals wired at configuration time, like regexp.MustCompile.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}

	return p
}

func (p Path) String() string { return string(p) }

// ParsePrefix validates s as a subtree root: an absolute path without a
// trailing slash. The root prefix "/" owns the entire path space.
func ParsePrefix(s string) (Prefix, error) {
	if err := validatePath(s); err != nil {
		return "", err
	}

	if s != "/" && s[len(s)-1] == '/' {
		return "", &ValidationError{s, "trailing slash in prefix"}
	}

	return Prefix(s), nil
}

// MustParsePrefix is like ParsePrefix but panics on invalid input.
func MustParsePrefix(s string) Prefix {
	p, err := ParsePrefix(s)
	if err != nil {
		panic(err)
	}

	return p
}

func (p Prefix) String() string { return string(p) }

// Contains reports whether the prefix owns the given path, i.e. the
// path equals the prefix or lies below it.
func (p Prefix) Contains(path Path) bool {
	if p == "/" {
		return true
	}

	s := string(path)
	return strings.HasPrefix(s, string(p)) &&
		(len(s) == len(p) || s[len(p)] == '/')
}

// Overlaps reports whether two prefixes claim a common path, i.e. one
// is an ancestor of the other or they are equal.
func (p Prefix) Overlaps(o Prefix) bool {
	return p.Contains(Path(o)) || o.Contains(Path(p))
}
