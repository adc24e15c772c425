// Package source loads the ordered URL list that defines a run.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotFound signals that the URL list file does not exist. Callers receive
// an empty list alongside it and decide whether that aborts the run.
var ErrNotFound = errors.New("url list file not found")

// List reads fetch targets from a plain text file, one URL per line. Blank
// lines and lines whose first non-whitespace character is '#' are ignored.
// Order is significant: the 1-based position of each URL is its sequence
// identifier, so editing or reordering the file invalidates resumability.
type List struct {
	path string
}

// New returns a List backed by the file at path.
func New(path string) *List {
	return &List{path: path}
}

// Load parses the file and returns the ordered, trimmed URL list. Duplicates
// are preserved and treated as independent tasks.
func (l *List) Load() ([]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", l.path, ErrNotFound)
		}
		return nil, fmt.Errorf("open url list %s: %w", l.path, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read url list %s: %w", l.path, err)
	}
	return urls, nil
}
