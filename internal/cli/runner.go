package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"algovanity/internal/engine"
	"algovanity/internal/patterns"
	"algovanity/internal/results"
	"algovanity/pkg/appcfg"
	"algovanity/pkg/logx"
)

const (
	// MaxThreads guards against typo'd thread counts.
	MaxThreads = 128

	DefaultOutPath = "vanities.jsonl"
)

// Run parses the flag surface, resolves the pattern list and hands a fully
// built run configuration to the engine. Returns the process exit code: 0 for
// a clean drain, 2 for usage errors, 1 for startup or runtime failures.
func Run(args []string, conf *appcfg.Config) int {
	fs := flag.NewFlagSet("algovanity", flag.ContinueOnError)
	threads := fs.IntP("threads", "t", 0, "number of worker threads (auto detects by default)")
	start := fs.BoolP("start", "s", false, "look for match at start of address (default)")
	anywhere := fs.BoolP("anywhere", "a", false, "look for match anywhere in address")
	end := fs.BoolP("end", "e", false, "look for match at end of address")
	once := fs.BoolP("once", "o", false, "stop searching for each pattern after finding it once")
	path := fs.StringP("path", "p", DefaultOutPath, "file path for saving found addresses")
	caseSensitive := fs.Bool("case-sensitive", false, "compare patterns case-sensitively")
	maxTime := fs.DurationP("max-time", "m", 0, "stop after this duration (0 = unbounded)")
	refreshEvery := fs.Int("refresh-every", 0, "seeds derived per entropy batch (0 = default)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: algovanity [flags] PATTERN... | PATTERNS_FILE.json\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	if *threads > MaxThreads {
		fmt.Fprintf(os.Stderr, "Error: %d threads requested, please select fewer than %d\n", *threads, MaxThreads)
		return 2
	}
	if *threads <= 0 {
		*threads = conf.Cores // 0 still means auto-detect in the engine
	}

	raw, err := loadPatternList(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	placement := patterns.Placement{Start: *start, Anywhere: *anywhere, End: *end}
	if !placement.Start && !placement.Anywhere && !placement.End {
		placement.Start = true
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}
	printSummary(raw, placement, *threads, *path, *once, *caseSensitive)

	opt := engine.Options{
		Patterns:      raw,
		CaseSensitive: *caseSensitive,
		Once:          *once,
		Placement:     placement,
		Workers:       *threads,
		OutPath:       *path,
		MaxDuration:   *maxTime,
		RefreshEvery:  *refreshEvery,
		Notify:        printMatch,
	}

	ctx := withInterrupt(context.Background())
	if err := engine.Run(ctx, opt); err != nil {
		var ipe *patterns.InvalidPatternError
		if errors.As(err, &ipe) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", ipe)
			return 1
		}
		var pe *results.PersistError
		if errors.As(err, &pe) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", pe)
			return 1
		}
		logx.S().Errorw("run failed", "err", err)
		return 1
	}
	return 0
}

// loadPatternList resolves the positional arguments. If the first argument is
// a readable file it must be a JSON array of strings (["algo","rand"]) and
// replaces the whole list; otherwise the arguments themselves are the
// patterns.
func loadPatternList(args []string) ([]string, error) {
	f, err := os.Open(args[0])
	if err != nil {
		return args, nil
	}
	defer f.Close()

	var fromFile []string
	if err := json.NewDecoder(f).Decode(&fromFile); err != nil {
		return nil, fmt.Errorf("parse %q as JSON pattern list (expected e.g. [\"algo\",\"rand\"]): %w", args[0], err)
	}
	if len(fromFile) == 0 {
		return nil, fmt.Errorf("pattern file %q is empty", args[0])
	}
	return fromFile, nil
}

func printSummary(pats []string, pl patterns.Placement, threads int, path string, once, caseSensitive bool) {
	head := color.New(color.FgCyan, color.Bold)
	head.Println("algovanity — Algorand vanity address search")
	if threads > 0 {
		fmt.Printf("  threads:   %d\n", threads)
	} else {
		fmt.Printf("  threads:   auto\n")
	}
	fmt.Printf("  placement: %s\n", pl)
	fmt.Printf("  patterns:  %v\n", pats)
	fmt.Printf("  saves to:  %s\n", path)
	fmt.Printf("  once:      %v  case-sensitive: %v\n", once, caseSensitive)
}

// printMatch renders a found address with the matched segment highlighted,
// the way the session display marks hits.
func printMatch(rec results.MatchRecord) {
	hit := color.New(color.FgGreen, color.Bold)
	dim := color.New(color.Faint)

	addr := rec.Address
	lo, hi := rec.Offset, rec.Offset+len(rec.Pattern)
	if lo < 0 || hi > len(addr) {
		fmt.Println(addr)
		return
	}
	dim.Print(addr[:lo])
	hit.Print(addr[lo:hi])
	dim.Println(addr[hi:])
}

func withInterrupt(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		logx.S().Infow("interrupt received, draining workers")
		cancel()
	}()
	return ctx
}
