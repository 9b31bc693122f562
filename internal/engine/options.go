package engine

import (
	"time"

	"algovanity/internal/patterns"
	"algovanity/internal/results"
)

// Options is the immutable run configuration. Built once before workers
// start; never mutated during a run.
type Options struct {
	Patterns      []string
	CaseSensitive bool
	Once          bool // retire each pattern after its first match
	Placement     patterns.Placement

	Workers int // <= 0 selects runtime.NumCPU()
	OutPath string

	// MaxDuration stops the run after the given time. Zero means unbounded,
	// which is the default: the run ends on interrupt or, in once-mode, when
	// every pattern has been found.
	MaxDuration time.Duration

	// RefreshEvery overrides the seed batch reuse bound. Zero selects the
	// package default.
	RefreshEvery int

	// Notify, when set, is called after each match has been durably recorded.
	// Best-effort display hook; must not block for long.
	Notify func(results.MatchRecord)
}
