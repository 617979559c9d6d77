// Package history persists the most recent shared-view link so that a new
// invocation behaves like a page reload: while a share link is stored, the
// widget re-enters the shared view; resetting clears it.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rshade/commutree/internal/commute"
)

const (
	shareFileName = "shared_view"
	shareFilePerm = 0600
	shareDirPerm  = 0755
)

// Store keeps the persisted share link in a single file under dir.
type Store struct {
	dir string
}

var _ commute.HistoryResetter = (*Store)(nil)

// New creates a Store rooted at dir (normally the commutree config dir).
func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, shareFileName)
}

// Save persists a share link for the next invocation.
func (s *Store) Save(link string) error {
	if err := os.MkdirAll(s.dir, shareDirPerm); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := os.WriteFile(s.path(), []byte(link+"\n"), shareFilePerm); err != nil {
		return fmt.Errorf("persisting share link: %w", err)
	}
	return nil
}

// Load returns the persisted share link, if any.
func (s *Store) Load() (string, bool) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return "", false
	}
	link := strings.TrimSpace(string(data))
	if link == "" {
		return "", false
	}
	return link, true
}

// ClearShareParams removes the persisted share link. A link that was never
// saved is not an error.
func (s *Store) ClearShareParams() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing share link: %w", err)
	}
	return nil
}
