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
	"net/http"

	"github.com/dimfeld/httppath"
	log "github.com/sirupsen/logrus"

	"github.com/zalando/pathspace/rules"
)

// CurrentPath derives the logical path to resolve for a request. The
// raw URL path is cleaned before validation, so dot segments and
// duplicate slashes from the wire never reach the path space.
func CurrentPath(req *http.Request) (Path, error) {
	return ParsePath(httppath.Clean(req.URL.Path))
}

// Dispatch resolves the current path of the request on the context and
// runs the owning component's rule chain against it.
//
// It returns NoMatch when no registered prefix covers the path; the
// request then proceeds as if the path space were absent. When a
// component is found, its match decomposition is published into the
// context for the duration of the chain and the chain runs with default
// Match, so a found component with an empty chain still reports Match.
// Terminate from any rule stops the chain and is returned as is.
//
// The previous match scope is restored on every exit path, including
// rule faults, which makes dispatch re-entrant: a rule may itself
// dispatch against the same or another space.
func (s *Space) Dispatch(c *rules.Context) (rules.Result, error) {
	path, err := CurrentPath(c.Request())
	if err != nil {
		return rules.NoMatch, err
	}

	component, match, ok := s.Get(path)
	if !ok {
		log.Debugf("pathspace: no component for %s", path)
		s.metrics.IncDispatch(rules.NoMatch.String())
		return rules.NoMatch, nil
	}

	restore := publishMatch(c, match)
	defer restore()

	chain := component.Rules()
	s.metrics.ObserveChainLength(len(chain))

	log.Debugf("pathspace: dispatching %s to prefix %s", path, match.Prefix)
	result, err := rules.Apply(c, chain, rules.Match)
	if err != nil {
		return result, err
	}

	s.metrics.IncDispatch(result.String())
	return result, nil
}

// Rule adapts Dispatch to the rules.Rule interface, so a space can be
// one step of an enclosing chain, typically after global rules.
func (s *Space) Rule() rules.Rule {
	return rules.RuleFunc(s.Dispatch)
}
