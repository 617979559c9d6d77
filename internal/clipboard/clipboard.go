// Package clipboard provides commute.ClipboardWriter implementations.
package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/rshade/commutree/internal/commute"
)

// System writes to the operating system clipboard.
type System struct{}

var _ commute.ClipboardWriter = System{}

// WriteString copies text to the system clipboard. On headless systems
// (no X11/Wayland/pbcopy) this returns an error; callers treat clipboard
// failure as non-critical.
func (System) WriteString(text string) error {
	return clipboard.WriteAll(text)
}

// Discard is a no-op writer for environments without clipboard access.
type Discard struct{}

var _ commute.ClipboardWriter = Discard{}

// WriteString drops the text and reports success.
func (Discard) WriteString(_ string) error { return nil }
