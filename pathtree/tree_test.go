package pathtree

import (
	"errors"
	"testing"
)

func TestAddAndLookup(t *testing.T) {
	tree := &Tree{}
	for _, p := range []string{"/app", "/admin", "/static/assets"} {
		if err := tree.Add(p, p); err != nil {
			t.Fatalf("add %s: %v", p, err)
		}
	}

	for _, ti := range []struct {
		path      string
		value     string
		prefixLen int
		found     bool
	}{
		{"/app", "/app", 4, true},
		{"/app/foo", "/app", 4, true},
		{"/app/foo/bar", "/app", 4, true},
		{"/admin/users", "/admin", 6, true},
		{"/static/assets/logo.png", "/static/assets", 14, true},
		{"/static", "", 0, false},
		{"/other", "", 0, false},
		{"/", "", 0, false},
		{"/application", "", 0, false},
	} {
		value, prefixLen, ok := tree.Lookup(ti.path)
		if ok != ti.found {
			t.Errorf("lookup %s: found %v, expected %v", ti.path, ok, ti.found)
			continue
		}

		if !ok {
			continue
		}

		if value.(string) != ti.value || prefixLen != ti.prefixLen {
			t.Errorf(
				"lookup %s: got %v/%d, expected %v/%d",
				ti.path, value, prefixLen, ti.value, ti.prefixLen,
			)
		}
	}
}

func TestAddConflicts(t *testing.T) {
	for _, ti := range []struct {
		msg      string
		existing string
		add      string
	}{
		{"duplicate", "/app", "/app"},
		{"descendant of registered", "/app", "/app/sub"},
		{"ancestor of registered", "/app/sub", "/app"},
		{"root over registered", "/app", "/"},
		{"registered under root", "/", "/app"},
	} {
		t.Run(ti.msg, func(t *testing.T) {
			tree := &Tree{}
			if err := tree.Add(ti.existing, 1); err != nil {
				t.Fatal(err)
			}

			err := tree.Add(ti.add, 2)
			var ce *ConflictError
			if !errors.As(err, &ce) {
				t.Fatalf("expected conflict error, got %v", err)
			}

			if ce.Prefix != ti.add || ce.Existing != ti.existing {
				t.Errorf("unexpected conflict %v", ce)
			}

			// the failed add must leave the existing entry intact
			if v, _, ok := tree.Lookup(ti.existing); !ok || v != 1 {
				t.Error("existing entry disturbed by failed add")
			}
		})
	}
}

func TestRootPrefix(t *testing.T) {
	tree := &Tree{}
	if err := tree.Add("/", "root"); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"/", "/anything", "/a/b/c"} {
		value, prefixLen, ok := tree.Lookup(path)
		if !ok || value != "root" || prefixLen != 1 {
			t.Errorf("lookup %s: got %v/%d/%v", path, value, prefixLen, ok)
		}
	}
}

func TestSiblingsDoNotConflict(t *testing.T) {
	tree := &Tree{}
	if err := tree.Add("/app/a", 1); err != nil {
		t.Fatal(err)
	}

	if err := tree.Add("/app/b", 2); err != nil {
		t.Fatal(err)
	}

	if v, _, ok := tree.Lookup("/app/b/x"); !ok || v != 2 {
		t.Error("sibling not resolvable")
	}

	if _, _, ok := tree.Lookup("/app"); ok {
		t.Error("unowned parent resolved")
	}
}

func TestClone(t *testing.T) {
	tree := &Tree{}
	if err := tree.Add("/app", 1); err != nil {
		t.Fatal(err)
	}

	clone := tree.Clone()
	if err := clone.Add("/admin", 2); err != nil {
		t.Fatal(err)
	}

	if tree.Size() != 1 {
		t.Error("mutating the clone changed the original")
	}

	if clone.Size() != 2 {
		t.Error("clone missing entries")
	}

	if _, _, ok := tree.Lookup("/admin/x"); ok {
		t.Error("original resolves entry added to the clone")
	}
}
