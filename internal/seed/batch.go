// Package seed implements the two-tier random source behind the search loop:
// a slow, cryptographically strong batch refresh and a fast counter-based
// perturbation that derives many distinct candidate seeds from one batch.
//
// Invoking the system CSPRNG for every candidate dominates the cost of a
// brute-force search. Instead the generator draws one 32-byte batch, then
// produces candidates by adding the low and high bytes of a per-batch counter
// to two distinct byte positions. Each candidate therefore carries the full
// batch entropy amortized over up to RefreshEvery addresses, which is a
// deliberate reduction in per-seed entropy. That trade-off is acceptable for
// vanity display addresses; callers who need a fresh CSPRNG draw per seed can
// construct the generator with refreshEvery = 1.
package seed

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// DefaultRefreshEvery is how many candidate seeds are derived from one batch
// before it is fully re-randomized. A tunable policy constant, not a security
// guarantee.
const DefaultRefreshEvery = 10_000

// maxRefreshEvery bounds the counter to 16 bits so the low/high byte
// perturbation provably never repeats within a batch.
const maxRefreshEvery = 1 << 16

// ErrEntropySource wraps failures of the secure random source.
var ErrEntropySource = errors.New("entropy source unavailable")

// Generator produces candidate seeds. Each worker owns exactly one; it is not
// safe for concurrent use and never needs to be.
type Generator struct {
	refreshEvery int
	batch        [32]byte
	i0, i1       int
	n            int
	primed       bool
}

// NewGenerator returns a generator that refreshes its batch every
// refreshEvery calls. refreshEvery <= 0 selects DefaultRefreshEvery; values
// above 65536 are clamped to keep within-batch seeds distinct.
func NewGenerator(refreshEvery int) *Generator {
	if refreshEvery <= 0 {
		refreshEvery = DefaultRefreshEvery
	}
	if refreshEvery > maxRefreshEvery {
		refreshEvery = maxRefreshEvery
	}
	return &Generator{refreshEvery: refreshEvery}
}

// Next returns the next candidate seed. No two calls between refreshes return
// bit-identical seeds: the counter's low and high bytes are added to two
// distinct batch positions, and the counter stays below 2^16.
func (g *Generator) Next() ([32]byte, error) {
	if !g.primed || g.n >= g.refreshEvery {
		if err := g.refresh(); err != nil {
			return [32]byte{}, err
		}
	}
	s := g.batch
	s[g.i0] += byte(g.n)
	s[g.i1] += byte(g.n >> 8)
	g.n++
	return s, nil
}

func (g *Generator) refresh() error {
	var buf [34]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrEntropySource, err)
	}
	copy(g.batch[:], buf[:32])
	// Two distinct perturbation positions. The second index is drawn from the
	// 31 positions that remain after excluding the first.
	g.i0 = int(buf[32]) % 32
	g.i1 = int(buf[33]) % 31
	if g.i1 >= g.i0 {
		g.i1++
	}
	g.n = 0
	g.primed = true
	return nil
}
