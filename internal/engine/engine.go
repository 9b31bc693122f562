package engine

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"algovanity/internal/patterns"
	"algovanity/internal/results"
	"algovanity/pkg/logx"
)

// matchEvent travels from a worker to the collector goroutine.
type matchEvent struct {
	pattern  *patterns.Pattern
	address  string
	mnemonic string
	kind     patterns.PlacementKind
	offset   int
	attempt  uint64
	elapsed  time.Duration
}

// Run wires the pattern set, worker pool, collector and progress reporting
// together and blocks until the run ends. It returns nil on a clean drain
// (interrupt, deadline, or all patterns found in once-mode) and an error when
// startup validation or result persistence fails.
func Run(ctx context.Context, opt Options) error {
	set, err := patterns.NewSet(opt.Patterns, opt.CaseSensitive)
	if err != nil {
		return err
	}
	if set.Len() == 0 {
		return fmt.Errorf("no patterns to search for")
	}

	sink, err := results.NewSink(opt.OutPath)
	if err != nil {
		return err
	}

	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	app := logx.S()
	app.Infow("search started",
		"patterns", opt.Patterns,
		"placement", opt.Placement.String(),
		"case_sensitive", opt.CaseSensitive,
		"once", opt.Once,
		"workers", workers,
		"out", sink.Path(),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if opt.MaxDuration > 0 {
		var tcancel context.CancelFunc
		ctx, tcancel = context.WithTimeout(ctx, opt.MaxDuration)
		defer tcancel()
	}

	start := time.Now()
	var attempts, matches uint64

	events := make(chan matchEvent, workers*4)

	// Collector: retires patterns in once-mode, persists every match, and
	// stops the run when nothing is left to search for. A persistence failure
	// halts everything; a found match must never be dropped.
	var persistErr error
	var finalOnce sync.Once
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		var seq uint64
		for ev := range events {
			if opt.Once {
				// Exactly one call flips the flag; late duplicates for an
				// already-retired pattern are still recorded below.
				set.Deactivate(ev.pattern.Norm)
			}

			seq++
			atomic.StoreUint64(&matches, seq)
			rec := results.MatchRecord{
				Seq:       seq,
				Pattern:   ev.pattern.Raw,
				Address:   ev.address,
				Mnemonic:  ev.mnemonic,
				Placement: string(ev.kind),
				Offset:    ev.offset,
				FoundAt:   time.Now().UTC(),
			}
			if err := sink.Record(rec); err != nil {
				app.Errorw("result persistence failed, stopping run", "addr", ev.address, "err", err)
				if persistErr == nil {
					persistErr = err
				}
				cancel()
				continue
			}

			app.Infow("FOUND",
				"pattern", ev.pattern.Raw,
				"address", ev.address,
				"placement", string(ev.kind),
				"attempt", ev.attempt,
				"elapsed", humanDuration(ev.elapsed),
				"mnemonic", ev.mnemonic,
			)
			if opt.Notify != nil {
				opt.Notify(rec)
			}

			if opt.Once && !set.IsAnyActive() {
				finalOnce.Do(func() {
					app.Infow("all patterns found, stopping workers")
					cancel()
				})
			}
		}
	}()

	statusDone := make(chan struct{})
	go func() {
		defer close(statusDone)
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		var lastN uint64
		lastT := start
		var rate float64
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				n := atomic.LoadUint64(&attempts)
				dt := now.Sub(lastT).Seconds()
				if dt > 0 {
					inst := float64(n-lastN) / dt
					if rate == 0 {
						rate = inst
					} else {
						rate = rate*0.8 + inst*0.2 // smoothed, like the session display
					}
				}
				lastN, lastT = n, now
				app.Infow("progress",
					"attempts", n,
					"rate_addr_per_sec", fmt.Sprintf("%.0f", rate),
					"matches", atomic.LoadUint64(&matches),
					"elapsed", humanDuration(now.Sub(start)),
				)
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(id int) {
			defer wg.Done()
			runWorker(ctx, id, set, opt, start, &attempts, events)
		}(i)
	}

	wg.Wait()
	close(events)
	<-collectorDone
	cancel() // workers may all have exited on their own; release the status loop
	<-statusDone

	app.Infow("stopped",
		"elapsed", humanDuration(time.Since(start)),
		"attempts", atomic.LoadUint64(&attempts),
	)
	return persistErr
}

func humanDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
}
