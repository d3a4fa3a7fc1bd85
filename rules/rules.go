/*
Package rules implements the evaluation core of the path-space firewall:
the tri-state result, the rule interface, the per-request evaluation
context and the short-circuiting chain evaluator.

A rule chain is an ordered sequence of rules applied to one request.
Every rule reports one of three results: NoMatch leaves the chain
unaffected, Match marks the chain as matched and evaluation continues,
Terminate stops the chain immediately. Termination is the only
short-circuit; a match never prevents later rules from running.
*/
package rules

import "net/http"

// Result is the tri-state outcome of a rule or of a whole chain.
type Result int

const (
	// NoMatch means the rule or chain was not applicable.
	NoMatch Result = iota

	// Match means the rule or chain matched and evaluation continues.
	Match

	// Terminate means a terminating decision was made and no further
	// rule may run.
	Terminate
)

func (r Result) String() string {
	switch r {
	case NoMatch:
		return "no_match"
	case Match:
		return "match"
	case Terminate:
		return "terminate"
	default:
		return "unknown"
	}
}

// Rule is one step of an evaluation chain. A rule may be a pure
// predicate contributing only to flow control, or it may perform side
// effects on the request before reporting its result. Apply returns an
// error only for configuration or engine misuse faults; a legitimate
// "did not match" is NoMatch, never an error.
type Rule interface {
	Apply(*Context) (Result, error)
}

// RuleFunc adapts a function to the Rule interface.
type RuleFunc func(*Context) (Result, error)

func (f RuleFunc) Apply(c *Context) (Result, error) { return f(c) }

// Fixed rules for composition and tests.
var (
	// MatchRule always reports Match.
	MatchRule Rule = RuleFunc(func(*Context) (Result, error) { return Match, nil })

	// NoMatchRule always reports NoMatch.
	NoMatchRule Rule = RuleFunc(func(*Context) (Result, error) { return NoMatch, nil })

	// TerminateRule always reports Terminate. It is the usual tail of a
	// blocking branch.
	TerminateRule Rule = RuleFunc(func(*Context) (Result, error) { return Terminate, nil })
)

// Context carries the state of one rule evaluation: the request being
// filtered and a key/value attribute bag scoped to the evaluation.
// Rules and the dispatcher use the bag to publish values, like the
// current path match, for the duration of a nested chain.
//
// A context belongs to one request on one goroutine; it is not safe for
// concurrent use.
type Context struct {
	request *http.Request
	attrs   map[any]any
}

// NewContext creates an evaluation context for the given request.
func NewContext(req *http.Request) *Context {
	return &Context{request: req}
}

// Request returns the request under evaluation.
func (c *Context) Request() *http.Request {
	return c.request
}

// Set stores an attribute on the context.
func (c *Context) Set(key, value any) {
	if c.attrs == nil {
		c.attrs = make(map[any]any)
	}

	c.attrs[key] = value
}

// Delete removes an attribute from the context.
func (c *Context) Delete(key any) {
	delete(c.attrs, key)
}

// Lookup returns the attribute stored under key and whether it was set.
func (c *Context) Lookup(key any) (any, bool) {
	v, ok := c.attrs[key]
	return v, ok
}
