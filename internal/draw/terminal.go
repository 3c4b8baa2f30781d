// Package draw holds the raw terminal plumbing: escape sequences, the frame
// scratch buffer and terminal size queries.
package draw

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// CursorHome moves the cursor to the top-left cell. Every frame starts with it.
const CursorHome = ansi.CursorHomePosition

// FrameWriter accumulates a whole frame and hands it to the underlying writer
// in a single Write on Flush. The scratch buffer keeps its capacity between
// frames so steady-state rendering does not allocate.
type FrameWriter struct {
	w      io.Writer
	buf    []byte
	numBuf [20]byte // Scratch buffer for allocation-free integer formatting
}

// NewFrameWriter creates a FrameWriter that writes to w.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w}
}

// Grow makes room for at least n more bytes without reallocating.
func (fw *FrameWriter) Grow(n int) {
	if cap(fw.buf)-len(fw.buf) < n {
		grown := make([]byte, len(fw.buf), len(fw.buf)+n)
		copy(grown, fw.buf)
		fw.buf = grown
	}
}

// SetForeground appends an SGR sequence selecting the given color code.
func (fw *FrameWriter) SetForeground(code int) {
	fw.buf = append(fw.buf, "\033["...)
	fw.buf = append(fw.buf, strconv.AppendInt(fw.numBuf[:0], int64(code), 10)...)
	fw.buf = append(fw.buf, 'm')
}

// Write implements io.Writer. It never fails.
func (fw *FrameWriter) Write(p []byte) (int, error) {
	fw.buf = append(fw.buf, p...)
	return len(p), nil
}

// WriteString appends a string to the buffer.
func (fw *FrameWriter) WriteString(s string) {
	fw.buf = append(fw.buf, s...)
}

// WriteByte appends a byte to the buffer.
func (fw *FrameWriter) WriteByte(c byte) error {
	fw.buf = append(fw.buf, c)
	return nil
}

// WriteRune appends the UTF-8 encoding of r to the buffer.
func (fw *FrameWriter) WriteRune(r rune) {
	fw.buf = utf8.AppendRune(fw.buf, r)
}

// Len returns the number of pending bytes.
func (fw *FrameWriter) Len() int {
	return len(fw.buf)
}

// Bytes returns the pending frame. Only valid until the next write or Flush.
func (fw *FrameWriter) Bytes() []byte {
	return fw.buf
}

// Ensure FrameWriter satisfies io.Writer.
var _ io.Writer = (*FrameWriter)(nil)

// Flush writes the pending frame with one Write call, flushes the underlying
// writer if it buffers, and truncates the scratch buffer keeping its capacity.
// The buffer is truncated even when the write fails.
func (fw *FrameWriter) Flush() error {
	defer func() { fw.buf = fw.buf[:0] }()

	if len(fw.buf) > 0 {
		n, err := fw.w.Write(fw.buf)
		if err != nil {
			return err
		}
		if n < len(fw.buf) {
			return io.ErrShortWrite
		}
	}
	if f, ok := fw.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, CursorHome+ansi.EraseEntireScreen)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, ansi.HideCursor)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, ansi.ShowCursor)
}

// ResetStyle drops any SGR attributes left over from the last frame.
func ResetStyle(w io.Writer) {
	fmt.Fprint(w, ansi.ResetStyle)
}
