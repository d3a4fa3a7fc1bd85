package rules

// Apply runs a rule chain in order and folds the results.
//
// Terminate from any rule stops the chain immediately with Terminate;
// it is the only early exit. Match is recorded and evaluation
// continues. When the chain completes without termination, the result
// is Match if any rule matched, otherwise def. An empty chain yields
// def. Callers that consider reaching the chain at all a match, like
// the component dispatch, pass Match as the default.
//
// Errors propagate immediately; the returned result is meaningless when
// err is non-nil.
func Apply(c *Context, chain []Rule, def Result) (Result, error) {
	matched := false
	for _, r := range chain {
		res, err := r.Apply(c)
		if err != nil {
			return NoMatch, err
		}

		switch res {
		case Terminate:
			return Terminate, nil
		case Match:
			matched = true
		}
	}

	if matched {
		return Match, nil
	}

	return def, nil
}

// Branch runs one of two chains depending on a predicate outcome: the
// match chain with default Match when matched is true, the otherwise
// chain with default NoMatch when it is false. It is the building block
// of every "matches, then these rules, otherwise those" combinator.
func Branch(c *Context, matched bool, chain, otherwise []Rule) (Result, error) {
	if matched {
		return Apply(c, chain, Match)
	}

	return Apply(c, otherwise, NoMatch)
}
