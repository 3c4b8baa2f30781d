// Package input reads key presses from the terminal without blocking the
// frame loop.
package input

import (
	"io"
)

// Key bytes that end the animation.
const (
	keyCtrlC  = 0x03
	keyCtrlD  = 0x04
	keyEscape = 0x1b
)

// Input represents the keys pressed since the previous frame.
type Input struct {
	Quit    bool
	Pressed []byte
}

// Stream delivers input bytes via a channel filled by a reader goroutine.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error.
func StartStream(r io.ByteReader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has hit EOF or an error.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Arrow keys and other CSI sequences are skipped so that their leading escape
// byte is not mistaken for the Escape key.
func ReadInput(s *Stream) Input {
	var buf []byte

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return Parse(buf)
}

// Parse interprets a batch of raw input bytes.
func Parse(buf []byte) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ params final
		if b == keyEscape && i+1 < len(buf) && buf[i+1] == '[' {
			i += 2
			for i < len(buf) && (buf[i] < 0x40 || buf[i] > 0x7e) {
				i++
			}
			continue
		}

		switch b {
		case 'q', 'Q', keyEscape, keyCtrlC, keyCtrlD:
			in.Quit = true
		}
	}

	return in
}
