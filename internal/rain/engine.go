// Package rain implements the falling glyph effect. All animation state lives
// in one intensity buffer; every frame is rendered from it and the next frame
// is derived from it by a shift-down followed by a top-row spawn/decay rule.
package rain

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/tomz197/glyphrain/internal/draw"
)

// maxCellBytes bounds the output of one cell: a color escape plus a
// three-byte UTF-8 glyph.
const maxCellBytes = len("\033[97m") + 3

// Sizer reports the terminal size in cells.
type Sizer interface {
	Size() (cols, rows int)
}

// Options configures the look of an Engine. Zero values pick the defaults.
type Options struct {
	Theme     Theme
	Glyphs    GlyphSet
	GlyphMode GlyphMode
	Rand      *rand.Rand
	Logger    *log.Logger
}

// Engine renders and advances the intensity buffer. It is not safe for
// concurrent use.
type Engine struct {
	cfg    Config
	theme  Theme
	glyphs GlyphSet
	mode   GlyphMode
	rng    *rand.Rand
	logger *log.Logger

	sizer Sizer
	out   *draw.FrameWriter

	buf    []uint8 // Row-major, len == cols*rows
	cols   int
	rows   int
	frames uint64
}

// New creates an engine writing frames to w and sizing itself from sizer.
func New(w io.Writer, sizer Sizer, cfg Config, opts Options) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Theme == (Theme{}) {
		opts.Theme = DefaultTheme
	}
	if len(opts.Glyphs.families) == 0 {
		opts.Glyphs = DefaultGlyphSet
	}
	if opts.Rand == nil {
		opts.Rand = NewRand(0)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Engine{
		cfg:    cfg,
		theme:  opts.Theme,
		glyphs: opts.Glyphs,
		mode:   opts.GlyphMode,
		rng:    opts.Rand,
		logger: opts.Logger,
		sizer:  sizer,
		out:    draw.NewFrameWriter(w),
	}, nil
}

// Tick renders one frame from the current buffer and then advances the buffer
// for the next one. The only error is a failed frame write, in which case the
// buffer is left unadvanced.
func (e *Engine) Tick() error {
	e.renew()
	if err := e.render(); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	e.advance()
	e.frames++
	return nil
}

// Size returns the size the buffer was last allocated for.
func (e *Engine) Size() (cols, rows int) {
	return e.cols, e.rows
}

// Cells returns a copy of the intensity buffer.
func (e *Engine) Cells() []uint8 {
	return append([]uint8(nil), e.buf...)
}

// Frames returns the number of frames written.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// renew reallocates the buffer when the terminal size changed. The old
// contents are dropped, not reflowed.
func (e *Engine) renew() {
	cols, rows := e.sizer.Size()
	if cols == e.cols && rows == e.rows {
		return
	}
	e.logger.Debug("terminal resized", "from", fmt.Sprintf("%dx%d", e.cols, e.rows), "to", fmt.Sprintf("%dx%d", cols, rows))
	e.cols, e.rows = cols, rows
	e.buf = make([]uint8, cols*rows)
}

// render writes the whole buffer as one frame.
func (e *Engine) render() error {
	e.out.Grow(len(draw.CursorHome) + len(e.buf)*maxCellBytes)
	e.out.WriteString(draw.CursorHome)

	for i, v := range e.buf {
		if v < e.cfg.Falloff {
			_ = e.out.WriteByte(' ')
			continue
		}
		e.out.SetForeground(int(e.colorFor(v)))
		e.out.WriteRune(e.glyphs.Pick(e.rng, e.mode, i))
	}

	return e.out.Flush()
}

func (e *Engine) colorFor(v uint8) Color {
	switch {
	case v >= e.cfg.HeadAt:
		return e.theme.Head
	case v >= e.cfg.BrightAt:
		return e.theme.Bright
	default:
		return e.theme.Dim
	}
}

// advance shifts every row down by one and then regenerates the top row.
// The order matters: the top row rule reads the values the shift left in
// place, which are the top row of the frame just rendered.
func (e *Engine) advance() {
	e.shift()
	e.regenerateTop()
}

// shift copies each row into the row below it. copy handles the overlap like
// a bottom-up loop would.
func (e *Engine) shift() {
	if len(e.buf) <= e.cols {
		return
	}
	copy(e.buf[e.cols:], e.buf[:len(e.buf)-e.cols])
}

func (e *Engine) regenerateTop() {
	f := e.cfg.Falloff
	top := min(e.cols, len(e.buf))

	for i := 0; i < top; i++ {
		v := e.buf[i]
		switch {
		case v == 0 && e.chance(e.cfg.SpawnChance):
			e.buf[i] = MaxIntensity
		case v == MaxIntensity:
			e.buf[i] = MaxIntensity - f
		case v >= f && e.chance(e.cfg.DecayChance):
			e.buf[i] = v - f
		default:
			e.buf[i] = 0
		}
	}
}

func (e *Engine) chance(p float64) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	}
	return e.rng.Float64() < p
}
