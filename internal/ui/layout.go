package ui

import "github.com/samdwyer/readydeck/internal/session"

// Rect is a screen rectangle in cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

const currentPanelWidth = 36

// Layout places the board's panels for a given terminal size.
type Layout struct {
	Width, Height int
	Current       Rect
	Columns       [3]Rect // accepted, deferred, rejected
}

// NewLayout splits the board: header and progress on top, the current card
// on the left, the three buckets side by side, status and help at the bottom.
func NewLayout(width, height int) Layout {
	top, bottom := 3, 2
	bodyH := max(height-top-bottom, 3)
	curW := min(currentPanelWidth, width/3)

	l := Layout{
		Width:   width,
		Height:  height,
		Current: Rect{X: 0, Y: top, W: curW, H: bodyH},
	}
	colW := max((width-curW)/3, 4)
	for i := range l.Columns {
		l.Columns[i] = Rect{X: curW + i*colW, Y: top, W: colW, H: bodyH}
	}
	return l
}

// Column returns the rectangle for a bucket.
func (l Layout) Column(col session.Column) Rect {
	if !col.IsBucket() {
		return Rect{}
	}
	return l.Columns[int(col)-1]
}

// ColumnAt returns the bucket under (x, y).
func (l Layout) ColumnAt(x, y int) (session.Column, bool) {
	for _, col := range session.Buckets {
		if l.Column(col).Contains(x, y) {
			return col, true
		}
	}
	return session.ColumnDeck, false
}

// CardRows returns how many card rows fit inside a bucket.
func (l Layout) CardRows(col session.Column) int {
	return max(l.Column(col).H-2, 0)
}

// Window returns which of a bucket's n cards are drawn: the first index and
// how many. An overflowing bucket keeps its last row for a "+N more" line and
// scrolls so the selected card stays in view.
func (l Layout) Window(col session.Column, n int, sel Selection) (start, count int) {
	rows := l.CardRows(col)
	if n <= rows {
		return 0, n
	}
	count = max(rows-1, 0)
	if count > 0 && sel.Active && sel.Column == col && sel.Index >= count {
		start = min(sel.Index-count+1, n-count)
	}
	return start, count
}

// CardAt returns the bucket and card index under (x, y). count reports each
// bucket's length and sel the scroll position; borders, empty rows and the
// "+N more" line miss.
func (l Layout) CardAt(x, y int, count func(session.Column) int, sel Selection) (session.Column, int, bool) {
	col, ok := l.ColumnAt(x, y)
	if !ok {
		return col, -1, false
	}
	r := l.Column(col)
	row := y - r.Y - 1
	if row < 0 || x == r.X || x == r.X+r.W-1 {
		return col, -1, false
	}
	start, n := l.Window(col, count(col), sel)
	if row >= n {
		return col, -1, false
	}
	return col, start + row, true
}
