package patterns

import (
	"errors"
	"testing"
)

func TestNewSetNormalizesAndDeduplicates(t *testing.T) {
	s, err := NewSet([]string{"algo", "ALGO", "rand"}, false)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2 after dedup", s.Len())
	}
	if got := s.Patterns()[0].Norm; got != "ALGO" {
		t.Errorf("first pattern norm = %q, want ALGO", got)
	}
	if got := s.Patterns()[0].Raw; got != "algo" {
		t.Errorf("first pattern raw = %q, want the original text", got)
	}
}

func TestNewSetRejectsImpossiblePattern(t *testing.T) {
	_, err := NewSet([]string{"algo", "@@@"}, false)
	if err == nil {
		t.Fatal("expected error for pattern outside the address alphabet")
	}
	var ipe *InvalidPatternError
	if !errors.As(err, &ipe) {
		t.Fatalf("error type = %T, want *InvalidPatternError", err)
	}
	if ipe.Pattern != "@@@" || ipe.Rune != '@' {
		t.Errorf("got pattern=%q rune=%q", ipe.Pattern, ipe.Rune)
	}
}

func TestNewSetRejectsCharsImpossibleForBase32(t *testing.T) {
	// 0 and 1 are not in the RFC 4648 base32 alphabet
	for _, bad := range []string{"ALG0", "A1GO", ""} {
		if _, err := NewSet([]string{bad}, false); err == nil {
			t.Errorf("pattern %q: expected InvalidPatternError", bad)
		}
	}
}

func TestNewSetCaseSensitiveRejectsLowercase(t *testing.T) {
	// addresses are upper-case base32, so a case-sensitive lowercase pattern
	// can never match and must fail fast
	if _, err := NewSet([]string{"algo"}, true); err == nil {
		t.Fatal("expected error for lowercase pattern in case-sensitive mode")
	}
	if _, err := NewSet([]string{"ALGO"}, true); err != nil {
		t.Fatalf("uppercase pattern rejected: %v", err)
	}
}

func TestDeactivateIdempotentAndIsAnyActive(t *testing.T) {
	s, err := NewSet([]string{"AAA", "BBB"}, false)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	if !s.IsAnyActive() {
		t.Fatal("fresh set must be active")
	}

	if !s.Deactivate("AAA") {
		t.Error("first Deactivate should report the flip")
	}
	if s.Deactivate("AAA") {
		t.Error("second Deactivate must be a no-op")
	}
	if !s.IsAnyActive() {
		t.Error("BBB is still active")
	}

	s.Deactivate("BBB")
	if s.IsAnyActive() {
		t.Error("all patterns retired, IsAnyActive must be false")
	}
	if s.Len() != 2 {
		t.Error("deactivated patterns must stay in the set")
	}
}

func TestDeactivateUnknownPattern(t *testing.T) {
	s, _ := NewSet([]string{"AAA"}, false)
	if s.Deactivate("ZZZ") {
		t.Error("unknown pattern must not report a flip")
	}
}
