package matchers

import (
	"errors"
	"fmt"

	"github.com/zalando/pathspace/rules"
	"github.com/zalando/pathspace/wildcard"
)

// Spec creates matcher rules from declarative arguments. Specs let
// embedding code assemble rule chains from configuration-like
// definitions by name, in the same way routing filters are created
// from a route table.
type Spec interface {
	// Name returns the spec name used to look it up, e.g.
	// "pathStartsWith".
	Name() string

	// Create builds a rule from the untyped arguments. Invalid
	// arguments are configuration faults.
	Create(args []interface{}) (rules.Rule, error)
}

// ErrInvalidArgs is returned by Create for a wrong argument count or
// type.
var ErrInvalidArgs = errors.New("invalid matcher arguments")

// Registry maps spec names to specs.
type Registry map[string]Spec

// NewRegistry returns a registry holding the built-in matcher specs:
// one spec per decomposition target and string operator, named
// <target><Operator>, e.g. "pathStartsWith", "prefixPathContains",
// "pathMatches" (regular expression) and "pathMatchesWildcard".
func NewRegistry() Registry {
	r := make(Registry)
	for targetName, target := range builtinTargets {
		for opName, op := range builtinOps {
			r.Add(&opSpec{
				name:   targetName + opName,
				target: target,

				// path-typed targets validate equals literals as paths
				validatePath: opName == "Equals" && targetName != "prefix",
				op:           op,
			})
		}
	}

	return r
}

// Add registers specs, replacing any spec with the same name.
func (r Registry) Add(specs ...Spec) {
	for _, s := range specs {
		r[s.Name()] = s
	}
}

// Get returns the spec registered under name, or nil.
func (r Registry) Get(name string) Spec {
	return r[name]
}

// Create builds a rule from a spec name and its arguments.
func (r Registry) Create(name string, args []interface{}) (rules.Rule, error) {
	s := r.Get(name)
	if s == nil {
		return nil, fmt.Errorf("unknown matcher %q", name)
	}

	return s.Create(args)
}

var builtinTargets = map[string]Target{
	"prefix":     Prefix,
	"prefixPath": PrefixPath,
	"path":       Path,
}

type opFunc func(literal string, validatePath bool) (Predicate, error)

var builtinOps = map[string]opFunc{
	"StartsWith": func(l string, _ bool) (Predicate, error) { return StartsWith(l), nil },
	"EndsWith":   func(l string, _ bool) (Predicate, error) { return EndsWith(l), nil },
	"Contains":   func(l string, _ bool) (Predicate, error) { return Contains(l), nil },
	"Equals": func(l string, validatePath bool) (Predicate, error) {
		if validatePath {
			return EqualsPath(l)
		}

		return Equals(l), nil
	},
	"EqualsIgnoreCase": func(l string, _ bool) (Predicate, error) { return EqualsIgnoreCase(l), nil },
	"Matches":          func(l string, _ bool) (Predicate, error) { return RegexpString(l) },
	"MatchesWildcard": func(l string, _ bool) (Predicate, error) {
		return Wildcard(wildcard.Compile(l)), nil
	},
}

type opSpec struct {
	name         string
	target       Target
	validatePath bool
	op           opFunc
}

func (s *opSpec) Name() string { return s.name }

func (s *opSpec) Create(args []interface{}) (rules.Rule, error) {
	literal, err := stringArg(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}

	p, err := s.op(literal, s.validatePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}

	return Match(s.target, p), nil
}

func stringArg(args []interface{}) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: expected 1 argument, got %d", ErrInvalidArgs, len(args))
	}

	s, ok := args[0].(string)
	if !ok {
		return "", fmt.Errorf("%w: %v is not a string", ErrInvalidArgs, args[0])
	}

	return s, nil
}
