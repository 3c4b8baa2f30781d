package draw

// SizeProvider reports the terminal size, falling back to the last size it
// managed to read when the query fails.
type SizeProvider struct {
	sizeFunc TermSizeFunc
	cols     int
	rows     int
}

// NewSizeProvider wraps fn. A nil fn uses DefaultTermSizeFunc.
func NewSizeProvider(fn TermSizeFunc) *SizeProvider {
	if fn == nil {
		fn = DefaultTermSizeFunc
	}
	return &SizeProvider{sizeFunc: fn}
}

// Size returns the current (columns, rows). Before the first successful query
// it returns 0, 0.
func (p *SizeProvider) Size() (cols, rows int) {
	w, h, err := p.sizeFunc()
	if err != nil {
		return p.cols, p.rows
	}
	p.cols, p.rows = max(w, 0), max(h, 0)
	return p.cols, p.rows
}
