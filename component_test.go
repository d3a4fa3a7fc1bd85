package pathspace_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/zalando/pathspace"
	"github.com/zalando/pathspace/rules"
)

func namedRule(name string, names *[]string) rules.Rule {
	return rules.RuleFunc(func(*rules.Context) (rules.Result, error) {
		*names = append(*names, name)
		return rules.NoMatch, nil
	})
}

func TestNewComponentRequiresPrefixes(t *testing.T) {
	_, err := pathspace.NewComponent(nil)
	if !errors.Is(err, pathspace.ErrEmptyPrefixes) {
		t.Fatalf("expected ErrEmptyPrefixes, got %v", err)
	}
}

func TestNewComponentRejectsOverlappingPrefixes(t *testing.T) {
	_, err := pathspace.NewComponent([]pathspace.Prefix{
		pathspace.MustParsePrefix("/app"),
		pathspace.MustParsePrefix("/app/sub"),
	})

	var ce *pathspace.PrefixConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected prefix conflict, got %v", err)
	}
}

func TestPrependAppendOrder(t *testing.T) {
	var names []string
	c, err := pathspace.NewComponent(
		[]pathspace.Prefix{pathspace.MustParsePrefix("/app")},
		namedRule("initial", &names),
	)
	if err != nil {
		t.Fatal(err)
	}

	c.Append(namedRule("appended", &names))
	c.Prepend(namedRule("prepended", &names))

	ctx := rules.NewContext(nil)
	if _, err := rules.Apply(ctx, c.Rules(), rules.NoMatch); err != nil {
		t.Fatal(err)
	}

	expected := []string{"prepended", "initial", "appended"}
	if len(names) != len(expected) {
		t.Fatalf("got %v, expected %v", names, expected)
	}

	for i := range expected {
		if names[i] != expected[i] {
			t.Fatalf("got %v, expected %v", names, expected)
		}
	}
}

func TestRulesSnapshotUnaffectedByMutation(t *testing.T) {
	c, err := pathspace.NewComponent(
		[]pathspace.Prefix{pathspace.MustParsePrefix("/app")},
		rules.NoMatchRule,
	)
	if err != nil {
		t.Fatal(err)
	}

	snapshot := c.Rules()
	c.Append(rules.NoMatchRule, rules.NoMatchRule)

	if len(snapshot) != 1 {
		t.Error("mutation affected a previously taken snapshot")
	}

	if len(c.Rules()) != 3 {
		t.Error("mutation not visible to a new snapshot")
	}
}

func TestConcurrentAppendAndIterate(t *testing.T) {
	c, err := pathspace.NewComponent(
		[]pathspace.Prefix{pathspace.MustParsePrefix("/app")},
		rules.NoMatchRule,
	)
	if err != nil {
		t.Fatal(err)
	}

	const appends = 1000
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < appends; i++ {
			if i%2 == 0 {
				c.Append(rules.NoMatchRule)
			} else {
				c.Prepend(rules.NoMatchRule)
			}
		}
	}()

	go func() {
		defer wg.Done()
		ctx := rules.NewContext(nil)
		for i := 0; i < appends; i++ {
			chain := c.Rules()
			if len(chain) < 1 {
				t.Error("observed empty chain")
				return
			}

			if _, err := rules.Apply(ctx, chain, rules.NoMatch); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	wg.Wait()
	if len(c.Rules()) != 1+appends {
		t.Errorf("got %d rules, expected %d", len(c.Rules()), 1+appends)
	}
}
