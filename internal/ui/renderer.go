package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/readydeck/internal/authoring"
	"github.com/samdwyer/readydeck/internal/session"
)

// Palette resolves category display names and colors.
type Palette interface {
	Name(session.Category) string
	Color(session.Category) tcell.Color
}

// Selection is the keyboard cursor over settled cards.
type Selection struct {
	Active bool
	Column session.Column
	Index  int
}

// FormView is the state of the custom card form.
type FormView struct {
	Title       string
	Description string
	Focus       authoring.Field
	Errors      authoring.Errors
}

// View carries presentation state that does not belong to the session.
type View struct {
	Selection Selection
	Form      *FormView
	Library   int // cursor in the custom card list on the welcome screen
	Dragging  int // id of the card under a mouse drag, 0 if none
	Status    string
	Help      string
}

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleDim     = styleDefault.Foreground(tcell.ColorGray)
	styleTitle   = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleError   = styleDefault.Foreground(tcell.ColorRed)
)

// BucketLabel returns the display name of a bucket.
func BucketLabel(col session.Column) string {
	switch col {
	case session.ColumnAccepted:
		return "Accepted"
	case session.ColumnDeferred:
		return "Deferred"
	case session.ColumnRejected:
		return "Rejected"
	default:
		return "Deck"
	}
}

func bucketStyle(col session.Column) tcell.Style {
	switch col {
	case session.ColumnAccepted:
		return styleDefault.Foreground(tcell.ColorGreen)
	case session.ColumnDeferred:
		return styleDefault.Foreground(tcell.ColorOrange)
	case session.ColumnRejected:
		return styleDefault.Foreground(tcell.ColorRed)
	default:
		return styleDefault
	}
}

// Renderer handles drawing the session to the screen.
type Renderer struct {
	screen  *Screen
	palette Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Layout returns the board layout for the current screen size.
func (r *Renderer) Layout() Layout {
	w, h := r.screen.Size()
	return NewLayout(w, h)
}

// Render draws the screen for the session's phase plus any overlay.
func (r *Renderer) Render(s *session.Session, v View) {
	r.screen.Clear()
	w, h := r.screen.Size()

	switch s.Phase() {
	case session.PhaseNotStarted:
		r.renderWelcome(s, v, w)
	case session.PhaseSummary:
		r.renderSummary(s, w, h)
	default:
		r.renderBoard(s, v)
	}

	if v.Form != nil {
		r.renderForm(*v.Form, w, h)
	}

	r.screen.DrawText(0, h-2, w, v.Status, styleDefault.Foreground(tcell.ColorAqua))
	r.screen.DrawText(0, h-1, w, v.Help, styleDim)
	r.screen.Show()
}

func (r *Renderer) renderWelcome(s *session.Session, v View, w int) {
	r.screen.DrawText(2, 1, w-4, "READY DECK", styleTitle)
	y := 3
	intro := "Walk the team through the Definition of Ready deck. Each card is accepted, deferred or rejected; " +
		"add your own criteria at any time."
	for _, line := range Wrap(intro, min(w-4, 72)) {
		r.screen.DrawText(2, y, w-4, line, styleDefault)
		y++
	}
	y++
	r.screen.DrawText(2, y, w-4, fmt.Sprintf("%d cards in the deck", s.TotalCards()), styleDim)
	y += 2

	custom := s.CustomCards()
	if len(custom) == 0 {
		r.screen.DrawText(2, y, w-4, "No custom cards yet.", styleDim)
		return
	}
	r.screen.DrawText(2, y, w-4, fmt.Sprintf("Custom cards (%d), dealt first:", len(custom)), styleDefault.Bold(true))
	y++
	for i, c := range custom {
		style := styleDefault
		if i == v.Library {
			style = style.Reverse(true)
		}
		r.screen.DrawText(4, y, w-6, Truncate(fmt.Sprintf("#%d %s", c.ID, c.Title), w-6), style)
		y++
	}
}

func (r *Renderer) renderBoard(s *session.Session, v View) {
	l := r.Layout()

	header := "READY DECK"
	if n := s.CustomCount(); n > 0 {
		header += fmt.Sprintf("   custom cards: %d", n)
	}
	r.screen.DrawText(0, 0, l.Width, header, styleTitle)
	r.renderProgress(s, l.Width)

	r.renderCurrent(s, v, l.Current)
	for _, col := range session.Buckets {
		r.renderColumn(s, v, col, l)
	}
}

func (r *Renderer) renderProgress(s *session.Session, w int) {
	total := s.TotalCards()
	decided := s.Decided()
	text := fmt.Sprintf("%d/%d decided  ", decided, total)
	x := r.screen.DrawText(0, 1, w, text, styleDefault)
	for _, col := range session.Buckets {
		x += r.screen.DrawText(x, 1, w-x, fmt.Sprintf("%s %d  ", BucketLabel(col), s.BucketLen(col)), bucketStyle(col))
	}
	x += r.screen.DrawText(x, 1, w-x, fmt.Sprintf("remaining %d ", s.Remaining()), styleDim)

	barW := w - x - 2
	if barW < 5 || total == 0 {
		return
	}
	// Removing a live custom card from the library can leave decided > total.
	filled := min(barW*decided/total, barW)
	bar := "[" + strings.Repeat("█", filled) + strings.Repeat("·", barW-filled) + "]"
	r.screen.DrawText(x, 1, w-x, bar, styleDefault.Foreground(tcell.ColorGreen))
}

func (r *Renderer) renderCurrent(s *session.Session, v View, rect Rect) {
	r.screen.Box(rect, "Current card", styleDefault)
	innerX, innerW := rect.X+2, rect.W-4
	y := rect.Y + 2

	card, ok := s.CurrentCard()
	if !ok {
		for _, line := range Wrap("All cards are decided. Press s for the summary or u to undo.", innerW) {
			r.screen.DrawText(innerX, y, innerW, line, styleDefault.Foreground(tcell.ColorGreen))
			y++
		}
		return
	}

	catStyle := styleDefault.Foreground(r.palette.Color(card.Category)).Bold(true)
	if v.Dragging == card.ID {
		catStyle = catStyle.Reverse(true)
	}
	r.screen.DrawText(innerX, y, innerW, fmt.Sprintf("%s  #%d", r.palette.Name(card.Category), card.ID), catStyle)
	y += 2
	for _, line := range Wrap(card.Title, innerW) {
		r.screen.DrawText(innerX, y, innerW, line, styleDefault.Bold(true))
		y++
	}
	y++
	for _, line := range Wrap(card.Description, innerW) {
		if y >= rect.Y+rect.H-4 {
			break
		}
		r.screen.DrawText(innerX, y, innerW, line, styleDim)
		y++
	}

	y = rect.Y + rect.H - 3
	x := innerX
	x += r.screen.DrawText(x, y, innerW, "[a]ccept ", bucketStyle(session.ColumnAccepted))
	x += r.screen.DrawText(x, y, innerW-(x-innerX), "[d]efer ", bucketStyle(session.ColumnDeferred))
	r.screen.DrawText(x, y, innerW-(x-innerX), "[r]eject", bucketStyle(session.ColumnRejected))
	if s.CanUndo() {
		r.screen.DrawText(innerX, y+1, innerW, "[u]ndo last decision", styleDim)
	}
}

func (r *Renderer) renderColumn(s *session.Session, v View, col session.Column, l Layout) {
	rect := l.Column(col)
	cards := s.Bucket(col)
	r.screen.Box(rect, fmt.Sprintf("%s (%d)", BucketLabel(col), len(cards)), bucketStyle(col))

	innerW := rect.W - 4
	start, count := l.Window(col, len(cards), v.Selection)
	for i, c := range cards[start : start+count] {
		idx := start + i
		y := rect.Y + 1 + i
		style := styleDefault
		if v.Selection.Active && v.Selection.Column == col && v.Selection.Index == idx {
			style = style.Reverse(true)
		}
		if v.Dragging == c.ID {
			style = style.Foreground(tcell.ColorYellow)
		}
		r.screen.SetContent(rect.X+1, y, '▌', styleDefault.Foreground(r.palette.Color(c.Category)))
		r.screen.DrawText(rect.X+2, y, innerW, Truncate(fmt.Sprintf("#%d %s", c.ID, c.Title), innerW), style)
	}
	if hidden := len(cards) - count; hidden > 0 && l.CardRows(col) > 0 {
		r.screen.DrawText(rect.X+2, rect.Y+1+count, innerW, fmt.Sprintf("+%d more", hidden), styleDim)
	}
}

func (r *Renderer) renderSummary(s *session.Session, w, h int) {
	r.screen.DrawText(2, 0, w-4, "Session complete: your Definition of Ready", styleTitle)

	x := 2
	for _, col := range session.Buckets {
		x += r.screen.DrawText(x, 2, w-x, fmt.Sprintf("%s: %d    ", BucketLabel(col), s.BucketLen(col)), bucketStyle(col).Bold(true))
	}

	y := 4
	for _, col := range session.Buckets {
		cards := s.Bucket(col)
		if len(cards) == 0 {
			continue
		}
		r.screen.DrawText(2, y, w-4, BucketLabel(col), bucketStyle(col).Bold(true))
		y++
		for _, c := range cards {
			if y >= h-3 {
				return
			}
			line := fmt.Sprintf("#%-3d %s  (%s)", c.ID, c.Title, r.palette.Name(c.Category))
			r.screen.DrawText(4, y, w-6, Truncate(line, w-6), styleDefault)
			y++
		}
		y++
	}
}

func (r *Renderer) renderForm(f FormView, w, h int) {
	formW := min(64, w-4)
	descLines := Wrap(f.Description, formW-4)
	formH := 12 + max(len(descLines), 1)
	rect := Rect{X: (w - formW) / 2, Y: max((h-formH)/2, 0), W: formW, H: formH}

	r.screen.Fill(rect, styleDefault)
	r.screen.Box(rect, "New custom card", styleTitle)
	innerX, innerW := rect.X+2, rect.W-4
	y := rect.Y + 2

	field := func(label string, name authoring.Field, limit int, value string, lines []string) {
		labelStyle := styleDim
		cursor := ""
		if f.Focus == name {
			labelStyle = styleDefault.Bold(true)
			cursor = "_"
		}
		r.screen.DrawText(innerX, y, innerW, fmt.Sprintf("%s (%d/%d)", label, authoring.Length(value), limit), labelStyle)
		y++
		if len(lines) == 0 {
			lines = []string{""}
		}
		for i, line := range lines {
			if i == len(lines)-1 {
				line += cursor
			}
			r.screen.DrawText(innerX, y, innerW, line, styleDefault.Underline(true))
			y++
		}
		if msg := f.Errors.For(name); msg != "" {
			r.screen.DrawText(innerX, y, innerW, label+" "+msg, styleError)
		}
		y += 2
	}

	field("Title", authoring.FieldTitle, authoring.MaxTitle, f.Title, []string{Truncate(f.Title, innerW-1)})
	field("Description", authoring.FieldDescription, authoring.MaxDescription, f.Description, descLines)

	r.screen.DrawText(innerX, rect.Y+rect.H-2, innerW, "Tab switch field  Enter add  Esc cancel", styleDim)
}
