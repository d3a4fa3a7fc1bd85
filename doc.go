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

/*
Package pathspace partitions a request path space into disjoint prefixes
owned by components and dispatches requests to the owning component's
rule chain.

A Space maps registered prefixes to components. Each component owns one
or more prefixes and an ordered, concurrently readable list of rules.
Dispatching a request resolves its path to at most one component,
publishes the structural decomposition of the match — owning prefix,
prefix path and remaining path — into the evaluation context, and runs
the component's rule chain. The chain folds the tri-state results of its
rules (see the rules package) into one outcome for the caller: continue
normal processing, the chain matched, or terminate the request.

Prefixes are disjoint by construction: registering a prefix that is an
ancestor, descendant or duplicate of an already registered one fails.
Resolution is therefore deterministic; any path has at most one owner.

Wiring happens in code at startup:

	admin, err := pathspace.NewComponent(
		[]pathspace.Prefix{pathspace.MustParsePrefix("/admin")},
		matchers.When(matchers.Path, matchers.StartsWith("/internal"),
			rules.TerminateRule),
	)
	if err != nil {
		log.Fatal(err)
	}

	space := pathspace.NewSpace(pathspace.Options{})
	if err := space.Register(admin); err != nil {
		log.Fatal(err)
	}

	result, err := space.Dispatch(rules.NewContext(req))

Components remain mutable after registration: Prepend and Append swap an
immutable rule list snapshot, so administrative reconfiguration never
disturbs in-flight evaluations.
*/
package pathspace
