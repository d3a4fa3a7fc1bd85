/*
Package wildcard implements precompiled wildcard pattern matching for
simple glob shapes.

A pattern source is a comma-separated list of alternatives, each using
'*' to match any run of characters. A string matches the pattern when it
matches any alternative in full. Common shapes — exact literal,
"prefix*", "*suffix", "*infix*" — are matched with plain string
operations; only patterns with interior wildcards fall back to chunk
scanning. This keeps matching cheaper than a regular expression for the
shapes wildcards are typically used for.
*/
package wildcard

import "strings"

type kind int

const (
	kindExact kind = iota
	kindPrefix
	kindSuffix
	kindInfix
	kindAll
	kindChunks
)

type alternative struct {
	kind kind

	// literal for the exact/prefix/suffix/infix fast paths
	literal string

	// literal chunks between wildcards, for the general case
	chunks []string

	// whether the pattern starts/ends with a wildcard
	openStart bool
	openEnd   bool
}

// Pattern is a compiled wildcard pattern.
type Pattern struct {
	source string
	alts   []alternative
}

// Compile parses a comma-separated list of wildcard alternatives.
// Empty alternatives are skipped; a pattern with no alternatives
// matches nothing. Compilation cannot fail: every character except '*'
// and ',' is a literal.
func Compile(source string) *Pattern {
	p := &Pattern{source: source}
	for _, alt := range strings.Split(source, ",") {
		alt = strings.TrimSpace(alt)
		if alt == "" {
			continue
		}

		p.alts = append(p.alts, compileAlternative(alt))
	}

	return p
}

func compileAlternative(s string) alternative {
	if !strings.Contains(s, "*") {
		return alternative{kind: kindExact, literal: s}
	}

	trimmed := strings.Trim(s, "*")
	if trimmed == "" {
		return alternative{kind: kindAll}
	}

	openStart := s[0] == '*'
	openEnd := s[len(s)-1] == '*'
	if !strings.Contains(trimmed, "*") {
		switch {
		case openStart && openEnd:
			return alternative{kind: kindInfix, literal: trimmed}
		case openEnd:
			return alternative{kind: kindPrefix, literal: trimmed}
		default:
			return alternative{kind: kindSuffix, literal: trimmed}
		}
	}

	return alternative{
		kind:      kindChunks,
		chunks:    splitChunks(trimmed),
		openStart: openStart,
		openEnd:   openEnd,
	}
}

func splitChunks(s string) []string {
	var chunks []string
	for _, c := range strings.Split(s, "*") {
		if c != "" {
			chunks = append(chunks, c)
		}
	}

	return chunks
}

// String returns the pattern source.
func (p *Pattern) String() string {
	return p.source
}

// MatchString reports whether s matches any alternative of the pattern
// in full.
func (p *Pattern) MatchString(s string) bool {
	for i := range p.alts {
		if p.alts[i].match(s) {
			return true
		}
	}

	return false
}

func (a *alternative) match(s string) bool {
	switch a.kind {
	case kindExact:
		return s == a.literal
	case kindPrefix:
		return strings.HasPrefix(s, a.literal)
	case kindSuffix:
		return strings.HasSuffix(s, a.literal)
	case kindInfix:
		return strings.Contains(s, a.literal)
	case kindAll:
		return true
	}

	rest := s
	for i, chunk := range a.chunks {
		if i == 0 && !a.openStart {
			if !strings.HasPrefix(rest, chunk) {
				return false
			}

			rest = rest[len(chunk):]
			continue
		}

		if i == len(a.chunks)-1 && !a.openEnd {
			return strings.HasSuffix(rest, chunk)
		}

		pos := strings.Index(rest, chunk)
		if pos < 0 {
			return false
		}

		rest = rest[pos+len(chunk):]
	}

	return true
}
