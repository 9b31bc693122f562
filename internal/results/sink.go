package results

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// PersistError reports that a discovered match could not be written. A match
// is precious output, so the caller is expected to halt the run rather than
// keep searching and silently dropping results.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist result to %q: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// MatchRecord is one found vanity address. Mnemonic is sufficient to
// reconstruct the private key.
type MatchRecord struct {
	Seq       uint64    `json:"seq"`
	Pattern   string    `json:"pattern"`
	Address   string    `json:"address"`
	Mnemonic  string    `json:"mnemonic"`
	Placement string    `json:"placement"`
	Offset    int       `json:"offset"`
	FoundAt   time.Time `json:"found_at"`
}

// Sink appends match records to a JSONL file. Each record is one complete
// line written under a mutex in a single Write and synced before Record
// returns, so the file stays parseable even if the process dies right after.
type Sink struct {
	mu   sync.Mutex
	path string
}

// NewSink prepares the output file, creating parent directories and probing
// that the path is writable so permission problems surface at startup.
func NewSink(path string) (*Sink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &PersistError{Path: path, Err: err}
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, &PersistError{Path: path, Err: err}
	}
	_ = f.Close()
	return &Sink{path: path}, nil
}

func (s *Sink) Path() string { return s.path }

// Record appends one match. Safe for concurrent use; records never interleave.
func (s *Sink) Record(rec MatchRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return &PersistError{Path: s.path, Err: err}
	}
	line := append(b, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return &PersistError{Path: s.path, Err: err}
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return &PersistError{Path: s.path, Err: err}
	}
	if err := f.Sync(); err != nil {
		return &PersistError{Path: s.path, Err: err}
	}
	return nil
}

// ReadAll parses a results file back into records, in append order.
func ReadAll(path string) ([]MatchRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []MatchRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var rec MatchRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("parse results line %d: %w", len(out)+1, err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
