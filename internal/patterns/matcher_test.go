package patterns

import "testing"

// addr is shaped like a real 58-char Algorand address:
// "ALGO" at the start, "RAND" at offset 14 and again at the end.
const addr = "ALGO" + "X7ZAJ6Z2PZ" + "RAND" + "QY5HD4UIQ3C2LWDHRBXVJJR5VIUXSS6IPZGF" + "RAND"

func mustSet(t *testing.T, raw []string, caseSensitive bool) *Set {
	t.Helper()
	s, err := NewSet(raw, caseSensitive)
	if err != nil {
		t.Fatalf("NewSet(%v): %v", raw, err)
	}
	return s
}

func TestMatchStart(t *testing.T) {
	s := mustSet(t, []string{"algo"}, false)

	mr := s.Match(addr, Placement{Start: true})
	if mr == nil {
		t.Fatal("expected start match")
	}
	if mr.Kind != KindStart || mr.Offset != 0 {
		t.Errorf("got kind=%s offset=%d", mr.Kind, mr.Offset)
	}

	if s.Match("XALGO"+addr, Placement{Start: true}) != nil {
		t.Error("prefix mode must not match mid-address")
	}
}

func TestMatchAnywhereReportsOffset(t *testing.T) {
	s := mustSet(t, []string{"rand"}, false)

	mr := s.Match(addr, Placement{Anywhere: true})
	if mr == nil {
		t.Fatal("expected anywhere match")
	}
	if mr.Kind != KindAnywhere || mr.Offset != 14 {
		t.Errorf("got kind=%s offset=%d, want anywhere at 14", mr.Kind, mr.Offset)
	}
}

func TestMatchEnd(t *testing.T) {
	s := mustSet(t, []string{"rand"}, false)

	mr := s.Match(addr, Placement{End: true})
	if mr == nil {
		t.Fatal("expected end match")
	}
	if mr.Kind != KindEnd || mr.Offset != len(addr)-4 {
		t.Errorf("got kind=%s offset=%d", mr.Kind, mr.Offset)
	}
}

func TestMatchCaseRules(t *testing.T) {
	// insensitive: lowercase pattern matches the uppercase address
	ci := mustSet(t, []string{"algo"}, false)
	if ci.Match(addr, Placement{Start: true}) == nil {
		t.Error("case-insensitive lowercase pattern should match")
	}

	// sensitive: only the exact form matches
	cs := mustSet(t, []string{"ALGO"}, true)
	if cs.Match(addr, Placement{Start: true}) == nil {
		t.Error("case-sensitive uppercase pattern should match uppercase address")
	}
	if cs.Match("algo"+addr[4:], Placement{Start: true}) != nil {
		t.Error("case-sensitive match must not accept differing case")
	}
}

func TestMatchSkipsInactivePatterns(t *testing.T) {
	s := mustSet(t, []string{"algo"}, false)
	s.Deactivate("ALGO")
	if s.Match(addr, Placement{Start: true}) != nil {
		t.Error("retired pattern must never match, regardless of string equality")
	}
}

func TestMatchFirstActivePatternWins(t *testing.T) {
	// both patterns hit this address; set order decides
	s := mustSet(t, []string{"rand", "algo"}, false)
	mr := s.Match(addr, Placement{Start: true, End: true})
	if mr == nil {
		t.Fatal("expected a match")
	}
	if mr.Pattern.Norm != "RAND" {
		t.Errorf("matched %q, want first pattern in set order", mr.Pattern.Norm)
	}

	s.Deactivate("RAND")
	mr = s.Match(addr, Placement{Start: true, End: true})
	if mr == nil || mr.Pattern.Norm != "ALGO" {
		t.Error("after retirement the next active pattern should match")
	}
}

func TestPlacementString(t *testing.T) {
	cases := []struct {
		pl   Placement
		want string
	}{
		{Placement{Start: true}, "start"},
		{Placement{End: true}, "end"},
		{Placement{Start: true, End: true}, "start and end"},
		{Placement{Anywhere: true}, "anywhere"},
		{Placement{Start: true, Anywhere: true}, "anywhere"},
		{Placement{}, "nowhere"},
	}
	for _, c := range cases {
		if got := c.pl.String(); got != c.want {
			t.Errorf("%+v.String() = %q, want %q", c.pl, got, c.want)
		}
	}
}
