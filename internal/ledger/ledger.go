// Package ledger implements the durable, append-only progress record that
// makes runs resumable.
package ledger

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Ledger appends one "<id> <url>" line per completed task and reads the set
// of completed identifiers back at startup. Append is the only mutation;
// entries are never rewritten or deleted. The file is not protected against
// concurrent writers, matching the single-process design.
type Ledger struct {
	path string
	file *os.File
}

// Open prepares the ledger at path for appending, creating it if absent.
func Open(path string) (*Ledger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}
	return &Ledger{path: path, file: f}, nil
}

// LoadCompleted reads every well-formed entry line and returns the set of
// completed sequence identifiers. Lines whose leading token is not a number
// are skipped silently; a partially corrupt ledger must not block a run.
func (l *Ledger) LoadCompleted() (map[int]struct{}, error) {
	completed := make(map[int]struct{})

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return completed, nil
		}
		return nil, fmt.Errorf("read ledger %s: %w", l.path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		completed[id] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan ledger %s: %w", l.path, err)
	}
	return completed, nil
}

// Append records one completed task. The write is fsynced before Append
// returns so the entry survives an interruption immediately afterwards. The
// caller must only append identifiers whose page file already exists.
func (l *Ledger) Append(id int, url string) error {
	if _, err := fmt.Fprintf(l.file, "%d %s\n", id, url); err != nil {
		return fmt.Errorf("append ledger entry %d: %w", id, err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync ledger: %w", err)
	}
	return nil
}

// Close releases the append handle.
func (l *Ledger) Close() error {
	return l.file.Close()
}
