/*
Package matchers provides the predicate rules evaluated against the
current path match of a dispatch.

A matcher is assembled from two orthogonal parts: a Target selecting
which part of the decomposition to inspect — the owning prefix, the
prefix path or the remaining path — and a Predicate testing the
selected string. Match lifts the pair into a bare rule, When and
WhenElse lift it into a branching rule running nested chains.

	// terminate everything under <prefix>/internal
	matchers.When(matchers.Path, matchers.StartsWith("/internal"),
		rules.TerminateRule)

Matchers are pure: they never modify the request and they never fail at
evaluation time for a legitimate mismatch. Predicates that need to
validate their literal, like EqualsPath and RegexpString, do so at
construction.
*/
package matchers

import (
	"regexp"
	"strings"

	"github.com/zalando/pathspace"
	"github.com/zalando/pathspace/rules"
	"github.com/zalando/pathspace/wildcard"
)

// Target selects the inspected part of a path match.
type Target func(*pathspace.Match) string

// The three decomposition targets.
var (
	// Prefix inspects the registered prefix owning the request.
	Prefix Target = func(m *pathspace.Match) string { return m.Prefix.String() }

	// PrefixPath inspects the request path truncated to the owning
	// subtree.
	PrefixPath Target = func(m *pathspace.Match) string { return m.PrefixPath.String() }

	// Path inspects the remaining path past the prefix.
	Path Target = func(m *pathspace.Match) string { return m.Path.String() }
)

// Predicate tests the string selected by a target.
type Predicate func(string) bool

// Match lifts a target and a predicate into a rule: Match when the
// predicate holds on the current path match, NoMatch otherwise.
// Evaluating the rule outside of an active dispatch fails with
// pathspace.ErrNoMatchScope.
func Match(t Target, p Predicate) rules.Rule {
	return rules.RuleFunc(func(c *rules.Context) (rules.Result, error) {
		m, err := pathspace.MatchFromContext(c)
		if err != nil {
			return rules.NoMatch, err
		}

		if p(t(m)) {
			return rules.Match, nil
		}

		return rules.NoMatch, nil
	})
}

// When lifts a target and a predicate into a branching rule: when the
// predicate holds, the nested chain runs with default Match, so the
// rule reports Match even when the chain is empty or all its rules
// report NoMatch. When the predicate does not hold, the rule reports
// NoMatch.
func When(t Target, p Predicate, chain ...rules.Rule) rules.Rule {
	return WhenElse(t, p, chain, nil)
}

// WhenElse is When with an alternative chain: when the predicate does
// not hold, the otherwise chain runs with default NoMatch.
func WhenElse(t Target, p Predicate, chain, otherwise []rules.Rule) rules.Rule {
	return rules.RuleFunc(func(c *rules.Context) (rules.Result, error) {
		m, err := pathspace.MatchFromContext(c)
		if err != nil {
			return rules.NoMatch, err
		}

		return rules.Branch(c, p(t(m)), chain, otherwise)
	})
}

// StartsWith tests for a case sensitive prefix. The empty literal
// matches everything.
func StartsWith(literal string) Predicate {
	return func(s string) bool { return strings.HasPrefix(s, literal) }
}

// EndsWith tests for a case sensitive suffix. The empty literal matches
// everything.
func EndsWith(literal string) Predicate {
	return func(s string) bool { return strings.HasSuffix(s, literal) }
}

// Contains tests for a case sensitive substring. The empty literal
// matches everything.
func Contains(literal string) Predicate {
	return func(s string) bool { return strings.Contains(s, literal) }
}

// Equals tests for exact, case sensitive equality against the raw
// literal.
func Equals(literal string) Predicate {
	return func(s string) bool { return s == literal }
}

// EqualsPath tests for exact equality against a validated path. The
// literal is parsed at construction; a malformed literal is a
// configuration fault reported immediately, never at request time.
func EqualsPath(literal string) (Predicate, error) {
	p, err := pathspace.ParsePath(literal)
	if err != nil {
		return nil, err
	}

	return Equals(p.String()), nil
}

// EqualsIgnoreCase tests for case insensitive equality.
func EqualsIgnoreCase(literal string) Predicate {
	return func(s string) bool { return strings.EqualFold(s, literal) }
}

// Regexp tests for a full string regular expression match. The given
// expression is recompiled anchored at both ends at construction, so
// partial matches never pass.
func Regexp(rx *regexp.Regexp) Predicate {
	anchored := regexp.MustCompile(`\A(?:` + rx.String() + `)\z`)
	return anchored.MatchString
}

// RegexpString compiles an expression and tests for a full string
// match. A malformed expression is a configuration fault reported at
// construction.
func RegexpString(expr string) (Predicate, error) {
	anchored, err := regexp.Compile(`\A(?:` + expr + `)\z`)
	if err != nil {
		return nil, err
	}

	return anchored.MatchString, nil
}

// Wildcard tests for a full string match against a precompiled wildcard
// pattern. Cheaper than Regexp for simple prefix and suffix shapes.
func Wildcard(p *wildcard.Pattern) Predicate {
	return p.MatchString
}
