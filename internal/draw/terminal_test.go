package draw

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	writes [][]byte
	err    error
	short  bool
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	w.writes = append(w.writes, append([]byte(nil), p...))
	if w.short {
		return len(p) - 1, nil
	}
	return len(p), nil
}

func TestFrameWriterSingleWrite(t *testing.T) {
	rec := &recordingWriter{}
	fw := NewFrameWriter(rec)

	fw.WriteString(CursorHome)
	fw.SetForeground(92)
	fw.WriteRune('ｱ')
	_ = fw.WriteByte(' ')
	_, _ = fw.Write([]byte("x"))

	require.NoError(t, fw.Flush())
	require.Len(t, rec.writes, 1)
	assert.Equal(t, "\033[H\033[92mｱ x", string(rec.writes[0]))
	assert.Zero(t, fw.Len())
}

func TestFrameWriterKeepsCapacity(t *testing.T) {
	fw := NewFrameWriter(&bytes.Buffer{})
	fw.Grow(4096)
	c := cap(fw.Bytes())
	require.GreaterOrEqual(t, c, 4096)

	for range 3 {
		fw.WriteString("frame")
		require.NoError(t, fw.Flush())
	}

	assert.Equal(t, c, cap(fw.Bytes()))
}

func TestFrameWriterFlushesBufferedWriter(t *testing.T) {
	var out bytes.Buffer
	bw := bufio.NewWriterSize(&out, 4096)
	fw := NewFrameWriter(bw)

	fw.WriteString("hello")
	require.NoError(t, fw.Flush())

	assert.Equal(t, "hello", out.String())
}

func TestFrameWriterErrors(t *testing.T) {
	errBoom := errors.New("boom")
	fw := NewFrameWriter(&recordingWriter{err: errBoom})
	fw.WriteString("frame")
	require.ErrorIs(t, fw.Flush(), errBoom)
	assert.Zero(t, fw.Len(), "buffer is truncated even on failure")

	fw = NewFrameWriter(&recordingWriter{short: true})
	fw.WriteString("frame")
	require.ErrorIs(t, fw.Flush(), io.ErrShortWrite)
}

func TestFrameWriterEmptyFlushSkipsWrite(t *testing.T) {
	rec := &recordingWriter{}
	fw := NewFrameWriter(rec)

	require.NoError(t, fw.Flush())
	assert.Empty(t, rec.writes)
}

func TestCursorHelpers(t *testing.T) {
	var b bytes.Buffer
	HideCursor(&b)
	ClearScreen(&b)
	ResetStyle(&b)
	ShowCursor(&b)

	assert.Equal(t, "\033[?25l\033[H\033[2J\033[m\033[?25h", b.String())
}

func TestSizeProviderFallsBackToLastKnown(t *testing.T) {
	errNoTTY := errors.New("not a terminal")
	results := []struct {
		w, h int
		err  error
	}{
		{0, 0, errNoTTY},
		{80, 24, nil},
		{0, 0, errNoTTY},
		{120, 40, nil},
		{-1, 10, nil},
	}
	call := 0
	p := NewSizeProvider(func() (int, int, error) {
		r := results[call]
		call++
		return r.w, r.h, r.err
	})

	want := [][2]int{{0, 0}, {80, 24}, {80, 24}, {120, 40}, {0, 10}}
	for i, w := range want {
		cols, rows := p.Size()
		assert.Equalf(t, w, [2]int{cols, rows}, "query %d", i)
	}
}
