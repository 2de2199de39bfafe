// Package ui provides terminal rendering using tcell.
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Screen wraps tcell.Screen with a simplified interface.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return Attach(s)
}

// Attach initializes an existing tcell screen, such as a simulation screen.
func Attach(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.EnableMouse()
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent waits for and returns the next terminal event.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Clear clears the screen buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// Size returns the current terminal dimensions.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync forces a complete redraw of the screen.
func (s *Screen) Sync() {
	s.screen.Sync()
}

// DrawText writes text starting at (x, y), stopping before it would exceed
// maxWidth cells. It returns the number of cells used.
func (s *Screen) DrawText(x, y, maxWidth int, text string, style tcell.Style) int {
	col := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if w == 0 {
			continue
		}
		if col+w > maxWidth {
			break
		}
		runes := g.Runes()
		s.screen.SetContent(x+col, y, runes[0], runes[1:], style)
		col += w
	}
	return col
}

// Fill paints a rectangle with spaces in the given style.
func (s *Screen) Fill(r Rect, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// Box draws a single-line border around r with an optional title.
func (s *Screen) Box(r Rect, title string, style tcell.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < right; x++ {
		s.SetContent(x, r.Y, tcell.RuneHLine, style)
		s.SetContent(x, bottom, tcell.RuneHLine, style)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.SetContent(r.X, y, tcell.RuneVLine, style)
		s.SetContent(right, y, tcell.RuneVLine, style)
	}
	s.SetContent(r.X, r.Y, tcell.RuneULCorner, style)
	s.SetContent(right, r.Y, tcell.RuneURCorner, style)
	s.SetContent(r.X, bottom, tcell.RuneLLCorner, style)
	s.SetContent(right, bottom, tcell.RuneLRCorner, style)
	if title != "" {
		s.DrawText(r.X+2, r.Y, r.W-4, " "+title+" ", style.Bold(true))
	}
}
