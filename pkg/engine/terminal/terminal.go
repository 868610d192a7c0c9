package terminal

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// clearSequence homes the cursor and erases the screen.
const clearSequence = "\x1b[H\x1b[2J"

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetWidth returns the current terminal width.
// Falls back to DefaultWidth if the width cannot be determined.
func GetWidth() int {
	width, _ := GetSize()
	return width
}

// GetHeight returns the current terminal height.
// Falls back to DefaultHeight if the height cannot be determined.
func GetHeight() int {
	_, height := GetSize()
	return height
}

// Clear erases the screen behind w.
func Clear(w io.Writer) error {
	_, err := io.WriteString(w, clearSequence)
	return err
}

// rawWriter turns "\n" into "\r\n" for terminals in raw mode, where a bare
// line feed does not return the cursor to the first column.
type rawWriter struct {
	w io.Writer
}

// NewRawWriter wraps w for output to a raw mode terminal.
func NewRawWriter(w io.Writer) io.Writer {
	return &rawWriter{w: w}
}

func (r *rawWriter) Write(p []byte) (int, error) {
	if bytes.IndexByte(p, '\n') < 0 {
		return r.w.Write(p)
	}
	out := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	if _, err := r.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}
