package input

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// KeyReader reads single key presses from a terminal in raw mode.
type KeyReader struct {
	in  *bufio.Reader
	fd  int
	old *term.State
}

// NewKeyReader puts f into raw mode when it is a terminal. Call Restore
// before exiting.
func NewKeyReader(f *os.File) (*KeyReader, error) {
	kr := newKeyReader(f)
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return kr, nil
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	kr.fd, kr.old = fd, old
	return kr, nil
}

func newKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{in: bufio.NewReader(r)}
}

// Restore puts the terminal back into the state it was in before raw mode.
func (kr *KeyReader) Restore() error {
	if kr.old == nil {
		return nil
	}
	err := term.Restore(kr.fd, kr.old)
	kr.old = nil
	return err
}

// ReadKey blocks until a key is pressed and returns its code: a lowercase
// printable character, or one of "arrow_up", "arrow_down", "arrow_left",
// "arrow_right", "space", "enter", "backspace", "escape", "ctrl_c".
// Unknown escape sequences are discarded.
func (kr *KeyReader) ReadKey() (string, error) {
	for {
		b, err := kr.in.ReadByte()
		if err != nil {
			return "", err
		}

		switch {
		case b == 0x1b:
			code, ok := kr.readEscape()
			if ok {
				return code, nil
			}
		case b == 3:
			return "ctrl_c", nil
		case b == '\r' || b == '\n':
			return "enter", nil
		case b == ' ':
			return "space", nil
		case b == 127 || b == 8:
			return "backspace", nil
		case b > ' ' && b < 127:
			if b >= 'A' && b <= 'Z' {
				b += 'a' - 'A'
			}
			return string(b), nil
		}
	}
}

// readEscape decodes the bytes after ESC. A lone ESC, with nothing else
// buffered from the same read, is the escape key.
func (kr *KeyReader) readEscape() (string, bool) {
	if kr.in.Buffered() == 0 {
		return "escape", true
	}

	b2, err := kr.in.ReadByte()
	if err != nil {
		return "escape", true
	}

	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if b2 != '[' && b2 != 'O' {
		return "", false
	}

	b3, err := kr.in.ReadByte()
	if err != nil {
		return "", false
	}

	switch b3 {
	case 'A':
		return "arrow_up", true
	case 'B':
		return "arrow_down", true
	case 'C':
		return "arrow_right", true
	case 'D':
		return "arrow_left", true
	}
	return "", false
}

// Stream reads keys on a goroutine and delivers them until ctx is done or
// the reader fails. The returned error channel receives at most one value.
func (kr *KeyReader) Stream(ctx context.Context) (<-chan RawInput, <-chan error) {
	keys := make(chan RawInput)
	errs := make(chan error, 1)

	go func() {
		defer close(keys)
		for {
			code, err := kr.ReadKey()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					errs <- err
				}
				return
			}

			select {
			case keys <- RawInput{Device: DeviceTerminal, Code: code, Timestamp: time.Now()}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return keys, errs
}
