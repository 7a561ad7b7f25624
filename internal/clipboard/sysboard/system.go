// Package sysboard implements the system clipboard using platform
// commands: pbcopy/pbpaste on macOS, xclip with an xsel fallback on Linux.
package sysboard

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
)

// SystemClipboard shells out to the platform clipboard commands.
type SystemClipboard struct{}

// New creates a SystemClipboard.
func New() *SystemClipboard {
	return &SystemClipboard{}
}

// IsSupported reports whether the platform commands are available.
func (s *SystemClipboard) IsSupported() bool {
	switch runtime.GOOS {
	case "darwin":
		_, copyErr := exec.LookPath("pbcopy")
		_, pasteErr := exec.LookPath("pbpaste")
		return copyErr == nil && pasteErr == nil
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			return true
		}
		_, err := exec.LookPath("xsel")
		return err == nil
	default:
		return false
	}
}

// Read returns a stream over the clipboard content.
func (s *SystemClipboard) Read() (io.ReadCloser, error) {
	switch runtime.GOOS {
	case "darwin":
		return startRead("pbpaste")
	case "linux":
		if r, err := startRead("xclip", "-selection", "clipboard", "-o"); err == nil {
			return r, nil
		}
		r, err := startRead("xsel", "--clipboard", "--output")
		if err != nil {
			return nil, fmt.Errorf("failed to read clipboard (tried xclip and xsel): %w", err)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("clipboard operations not supported on %s", runtime.GOOS)
	}
}

// Write replaces the clipboard content.
func (s *SystemClipboard) Write(r io.Reader) error {
	switch runtime.GOOS {
	case "darwin":
		return runWrite(r, "pbcopy")
	case "linux":
		if err := runWrite(r, "xclip", "-selection", "clipboard"); err == nil {
			return nil
		}
		if err := runWrite(r, "xsel", "--clipboard", "--input"); err != nil {
			return fmt.Errorf("failed to write clipboard (tried xclip and xsel): %w", err)
		}
		return nil
	default:
		return fmt.Errorf("clipboard operations not supported on %s", runtime.GOOS)
	}
}

// cmdReadCloser waits for the command when the stream is closed.
type cmdReadCloser struct {
	stdout io.ReadCloser
	cmd    *exec.Cmd
}

func (c *cmdReadCloser) Read(p []byte) (int, error) {
	return c.stdout.Read(p)
}

func (c *cmdReadCloser) Close() error {
	if err := c.stdout.Close(); err != nil {
		c.cmd.Wait()
		return err
	}
	return c.cmd.Wait()
}

func startRead(name string, args ...string) (io.ReadCloser, error) {
	cmd := exec.Command(name, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", name, err)
	}
	return &cmdReadCloser{stdout: stdout, cmd: cmd}, nil
}

func runWrite(r io.Reader, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = r
	return cmd.Run()
}
