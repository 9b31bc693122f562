package patterns

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Alphabet is the set of characters that can appear in an encoded Algorand
// address (RFC 4648 base32, no padding). Anything outside it can never match.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// InvalidPatternError reports a pattern that cannot occur in any address.
type InvalidPatternError struct {
	Pattern string
	Rune    rune
}

func (e *InvalidPatternError) Error() string {
	if e.Rune == 0 {
		return fmt.Sprintf("pattern %q is empty", e.Pattern)
	}
	return fmt.Sprintf("pattern %q contains %q which can not exist in an Algorand address", e.Pattern, e.Rune)
}

// Pattern is one search target. Norm is the case-normalized form used for
// comparison; Raw is what the user typed. The active flag is the only mutable
// state and is safe for concurrent use.
type Pattern struct {
	Raw    string
	Norm   string
	active atomic.Bool
}

func (p *Pattern) Active() bool { return p.active.Load() }

// Set is an ordered, deduplicated collection of patterns shared by all
// workers. The set of patterns is fixed after NewSet; only active flags flip.
type Set struct {
	pats          []*Pattern
	byNorm        map[string]*Pattern
	caseSensitive bool
}

// NewSet validates, normalizes and deduplicates the raw pattern strings.
// Validation is eager: an impossible pattern fails the whole set before any
// search starts.
func NewSet(raw []string, caseSensitive bool) (*Set, error) {
	s := &Set{
		byNorm:        make(map[string]*Pattern, len(raw)),
		caseSensitive: caseSensitive,
	}
	for _, r := range raw {
		norm := r
		if !caseSensitive {
			norm = strings.ToUpper(r)
		}
		if norm == "" {
			return nil, &InvalidPatternError{Pattern: r}
		}
		for _, c := range norm {
			if !strings.ContainsRune(Alphabet, c) {
				return nil, &InvalidPatternError{Pattern: r, Rune: c}
			}
		}
		if _, dup := s.byNorm[norm]; dup {
			continue
		}
		p := &Pattern{Raw: r, Norm: norm}
		p.active.Store(true)
		s.pats = append(s.pats, p)
		s.byNorm[norm] = p
	}
	return s, nil
}

func (s *Set) Len() int             { return len(s.pats) }
func (s *Set) Patterns() []*Pattern { return s.pats }
func (s *Set) CaseSensitive() bool  { return s.caseSensitive }

// IsAnyActive reports whether at least one pattern is still being searched.
func (s *Set) IsAnyActive() bool {
	for _, p := range s.pats {
		if p.active.Load() {
			return true
		}
	}
	return false
}

// Deactivate retires the pattern with the given normalized text. It returns
// true only for the call that actually flipped the flag, so once-mode
// retirement happens exactly once even under concurrent duplicate matches.
func (s *Set) Deactivate(norm string) bool {
	p, ok := s.byNorm[norm]
	if !ok {
		return false
	}
	return p.active.CompareAndSwap(true, false)
}
