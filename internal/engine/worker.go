package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"algovanity/internal/keys"
	"algovanity/internal/patterns"
	"algovanity/internal/seed"
	"algovanity/pkg/logx"
)

// runWorker drives the generate → derive → match loop for one worker. The
// stop signal is observed at the top of every iteration, so at most one
// in-flight derivation completes after cancellation. The seed generator is
// owned exclusively by this worker; nothing in the loop blocks except the
// (rare) send of a match event.
func runWorker(
	ctx context.Context,
	id int,
	set *patterns.Set,
	opt Options,
	start time.Time,
	attempts *uint64,
	out chan<- matchEvent,
) {
	gen := seed.NewGenerator(opt.RefreshEvery)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if opt.Once && !set.IsAnyActive() {
			return
		}

		s, err := gen.Next()
		if err != nil {
			// Entropy loss is fatal for this worker only; siblings keep
			// whatever batches they already hold.
			logx.S().Errorw("worker stopping", "worker", id, "err", err)
			return
		}

		acct, err := keys.Derive(s)
		n := atomic.AddUint64(attempts, 1)
		if err != nil {
			if errors.Is(err, keys.ErrDegenerateKey) {
				continue // discard the seed, take a fresh one
			}
			logx.S().Errorw("derive failed", "worker", id, "err", err)
			continue
		}

		mr := set.Match(acct.Address, opt.Placement)
		if mr == nil {
			continue
		}

		mn, err := acct.Mnemonic()
		if err != nil {
			logx.S().Errorw("mnemonic encode failed", "worker", id, "addr", acct.Address, "err", err)
			continue
		}

		ev := matchEvent{
			pattern:  mr.Pattern,
			address:  acct.Address,
			mnemonic: mn,
			kind:     mr.Kind,
			offset:   mr.Offset,
			attempt:  n,
			elapsed:  time.Since(start),
		}
		select {
		case <-ctx.Done():
			return
		case out <- ev:
		}
	}
}
