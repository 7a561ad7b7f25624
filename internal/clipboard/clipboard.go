// Package clipboard defines the system clipboard interface used by the
// register sync commands. Implementations live in sysboard (real system
// clipboard) and mockboard (testing).
package clipboard

import "io"

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	// Read returns the clipboard content as a stream. The caller closes it.
	Read() (io.ReadCloser, error)

	// Write replaces the clipboard content with the reader's bytes.
	Write(r io.Reader) error

	// IsSupported reports whether clipboard access works on this system.
	IsSupported() bool
}
