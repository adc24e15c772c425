// Package store persists raw page content under deterministic,
// sequence-numbered file names.
package store

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultPadWidth = 3

// Pages writes one content file per succeeded fetch into a fixed directory.
// File names are zero-padded to padWidth digits; identifiers beyond the pad
// width simply widen the numeric part instead of truncating or colliding.
type Pages struct {
	dir      string
	padWidth int
}

// New creates the output directory if absent and returns the store.
func New(dir string, padWidth int) (*Pages, error) {
	if padWidth <= 0 {
		padWidth = defaultPadWidth
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create page dir %s: %w", dir, err)
	}
	return &Pages{dir: dir, padWidth: padWidth}, nil
}

// Dir returns the output directory.
func (p *Pages) Dir() string {
	return p.dir
}

// Save writes body to the file derived from id and returns its path.
// A second save for the same identifier overwrites silently; the ledger
// check upstream prevents that under normal operation.
func (p *Pages) Save(id int, body []byte) (string, error) {
	path := filepath.Join(p.dir, fmt.Sprintf("page_%0*d.html", p.padWidth, id))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write page %d to %s: %w", id, path, err)
	}
	return path, nil
}
