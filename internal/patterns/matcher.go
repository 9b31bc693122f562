package patterns

import "strings"

// PlacementKind records where in the address a pattern matched.
type PlacementKind string

const (
	KindStart    PlacementKind = "start"
	KindAnywhere PlacementKind = "anywhere"
	KindEnd      PlacementKind = "end"
)

// Placement selects which positions of the address are searched.
// The zero value matches nowhere; callers default Start to true.
type Placement struct {
	Start    bool
	Anywhere bool
	End      bool
}

func (p Placement) String() string {
	switch {
	case p.Anywhere:
		return "anywhere"
	case p.Start && p.End:
		return "start and end"
	case p.Start:
		return "start"
	case p.End:
		return "end"
	}
	return "nowhere"
}

type MatchResult struct {
	Pattern *Pattern
	Kind    PlacementKind
	Offset  int
}

// Match tests an address against every active pattern in set order and
// returns the first hit, or nil. Inactive patterns never match. One address
// triggers at most one result; the next iteration brings a fresh address for
// the remaining patterns.
func (s *Set) Match(addr string, pl Placement) *MatchResult {
	check := addr
	if !s.caseSensitive {
		check = strings.ToUpper(check)
	}
	for _, p := range s.pats {
		if !p.active.Load() {
			continue
		}
		if pl.Start && strings.HasPrefix(check, p.Norm) {
			return &MatchResult{Pattern: p, Kind: KindStart, Offset: 0}
		}
		if pl.End && strings.HasSuffix(check, p.Norm) {
			return &MatchResult{Pattern: p, Kind: KindEnd, Offset: len(check) - len(p.Norm)}
		}
		if pl.Anywhere {
			if i := strings.Index(check, p.Norm); i >= 0 {
				return &MatchResult{Pattern: p, Kind: KindAnywhere, Offset: i}
			}
		}
	}
	return nil
}
