package game

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/samdwyer/readydeck/internal/authoring"
	"github.com/samdwyer/readydeck/internal/session"
	"github.com/samdwyer/readydeck/internal/ui"
)

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		g.running = false
		return
	}
	if g.mode == ModeForm {
		g.handleFormKey(ctx, ev)
		return
	}

	g.view.Status = ""
	switch g.session.Phase() {
	case session.PhaseNotStarted:
		g.handleWelcomeKey(ctx, ev)
	case session.PhaseSummary:
		g.handleSummaryKey(ctx, ev)
	default:
		if g.mode == ModeSelect {
			g.handleSelectKey(ctx, ev)
		} else {
			g.handleBoardKey(ctx, ev)
		}
	}
}

func (g *Game) handleWelcomeKey(ctx context.Context, ev *tcell.EventKey) {
	custom := g.session.CustomCards()

	switch ev.Key() {
	case tcell.KeyEnter:
		g.startGame(ctx)
	case tcell.KeyEscape:
		g.running = false
	case tcell.KeyUp:
		g.view.Library = max(g.view.Library-1, 0)
	case tcell.KeyDown:
		g.view.Library = min(g.view.Library+1, max(len(custom)-1, 0))
	case tcell.KeyDelete:
		g.removeSelectedCustomCard(ctx, custom)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'n':
			g.openForm()
		case 'x':
			g.removeSelectedCustomCard(ctx, custom)
		case 'k':
			g.view.Library = max(g.view.Library-1, 0)
		case 'j':
			g.view.Library = min(g.view.Library+1, max(len(custom)-1, 0))
		case 'q', 'Q':
			g.running = false
		}
	}
}

func (g *Game) removeSelectedCustomCard(ctx context.Context, custom []session.Card) {
	if g.view.Library >= len(custom) {
		return
	}
	g.removeCustomCard(ctx, custom[g.view.Library].ID)
	g.view.Library = min(g.view.Library, max(g.session.CustomCount()-1, 0))
}

func (g *Game) handleBoardKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		g.running = false
	case tcell.KeyTab:
		g.enterSelect()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', '1':
			g.decide(ctx, session.Accept)
		case 'd', '2':
			g.decide(ctx, session.Defer)
		case 'r', '3':
			g.decide(ctx, session.Reject)
		case 'u':
			g.undo(ctx)
		case 'n':
			g.openForm()
		case 's':
			g.showSummary(ctx)
		case 'R':
			g.restart(ctx)
		case 'q', 'Q':
			g.running = false
		}
	}
}

func (g *Game) handleSummaryKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		g.backToGame(ctx)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'e':
			g.exportResults(ctx)
		case 'g':
			g.backToGame(ctx)
		case 'R':
			g.restart(ctx)
		case 'q', 'Q':
			g.running = false
		}
	}
}

// enterSelect puts the cursor on the first non-empty bucket.
func (g *Game) enterSelect() {
	if g.session.Decided() == 0 {
		g.view.Status = "No filed cards to move yet"
		return
	}
	g.mode = ModeSelect
	g.view.Selection = ui.Selection{Active: true, Column: session.ColumnAccepted}
	for _, col := range session.Buckets {
		if g.session.BucketLen(col) > 0 {
			g.view.Selection.Column = col
			break
		}
	}
}

func (g *Game) leaveSelect() {
	g.mode = ModeNormal
	g.view.Selection = ui.Selection{}
}

func (g *Game) handleSelectKey(ctx context.Context, ev *tcell.EventKey) {
	sel := &g.view.Selection

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyTab:
		g.leaveSelect()
		return
	case tcell.KeyLeft:
		sel.Column = max(sel.Column-1, session.ColumnAccepted)
	case tcell.KeyRight:
		sel.Column = min(sel.Column+1, session.ColumnRejected)
	case tcell.KeyUp:
		sel.Index--
	case tcell.KeyDown:
		sel.Index++
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h':
			sel.Column = max(sel.Column-1, session.ColumnAccepted)
		case 'l':
			sel.Column = min(sel.Column+1, session.ColumnRejected)
		case 'k':
			sel.Index--
		case 'j':
			sel.Index++
		case 'a', '1':
			g.moveSelected(ctx, session.ColumnAccepted)
		case 'd', '2':
			g.moveSelected(ctx, session.ColumnDeferred)
		case 'r', '3':
			g.moveSelected(ctx, session.ColumnRejected)
		case 'q':
			g.leaveSelect()
			return
		}
	}
	g.clampSelection()
}

func (g *Game) moveSelected(ctx context.Context, target session.Column) {
	sel := g.view.Selection
	cards := g.session.Bucket(sel.Column)
	if sel.Index < 0 || sel.Index >= len(cards) {
		return
	}
	g.move(ctx, cards[sel.Index].ID, target)
}

func (g *Game) clampSelection() {
	n := g.session.BucketLen(g.view.Selection.Column)
	g.view.Selection.Index = max(min(g.view.Selection.Index, n-1), 0)
}

// =============================================================================
// Custom card form
// =============================================================================

func (g *Game) openForm() {
	g.drag = drag{}
	g.view.Dragging = 0
	g.mode = ModeForm
	g.view.Form = &ui.FormView{Focus: authoring.FieldTitle}
}

func (g *Game) closeForm() {
	g.mode = ModeNormal
	g.view.Form = nil
}

func (g *Game) handleFormKey(ctx context.Context, ev *tcell.EventKey) {
	f := g.view.Form
	if f == nil {
		g.closeForm()
		return
	}

	field, limit := &f.Title, authoring.MaxTitle
	if f.Focus == authoring.FieldDescription {
		field, limit = &f.Description, authoring.MaxDescription
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		g.closeForm()
	case tcell.KeyTab, tcell.KeyBacktab:
		if f.Focus == authoring.FieldTitle {
			f.Focus = authoring.FieldDescription
		} else {
			f.Focus = authoring.FieldTitle
		}
	case tcell.KeyEnter:
		g.submitForm(ctx)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		*field = dropLastGrapheme(*field)
	case tcell.KeyRune:
		*field = authoring.Truncate(*field+string(ev.Rune()), limit)
	}
}

func (g *Game) submitForm(ctx context.Context) {
	f := g.view.Form
	draft, err := authoring.Validate(authoring.Draft{Title: f.Title, Description: f.Description})
	if err != nil {
		var errs authoring.Errors
		if errors.As(err, &errs) {
			f.Errors = errs
		}
		return
	}
	g.closeForm()
	g.addCustomCard(ctx, draft)
}

func dropLastGrapheme(s string) string {
	last := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		last, _ = g.Positions()
	}
	return s[:last]
}

// =============================================================================
// Mouse
// =============================================================================

// handleMouseEvent turns a press-and-release into a decision (when the press
// started on the current card) or a move (when it started on a filed card).
func (g *Game) handleMouseEvent(ctx context.Context, ev *tcell.EventMouse) {
	if g.mode == ModeForm {
		return
	}
	phase := g.session.Phase()
	if phase != session.PhaseInProgress && phase != session.PhaseComplete {
		return
	}

	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !g.drag.active:
		g.beginDrag(x, y)
	case !pressed && g.drag.active:
		g.endDrag(ctx, x, y)
	}
}

func (g *Game) beginDrag(x, y int) {
	layout := g.renderer.Layout()

	if layout.Current.Contains(x, y) {
		if card, ok := g.session.CurrentCard(); ok {
			g.drag = drag{active: true, cardID: card.ID, fromCurrent: true}
			g.view.Dragging = card.ID
		}
		return
	}

	col, i, ok := layout.CardAt(x, y, g.session.BucketLen, g.view.Selection)
	if !ok {
		return
	}
	cards := g.session.Bucket(col)
	if i >= len(cards) {
		return
	}
	g.drag = drag{active: true, cardID: cards[i].ID}
	g.view.Dragging = cards[i].ID
}

func (g *Game) endDrag(ctx context.Context, x, y int) {
	d := g.drag
	g.drag = drag{}
	g.view.Dragging = 0

	target, ok := g.renderer.Layout().ColumnAt(x, y)
	if !ok {
		return
	}
	if !d.fromCurrent {
		g.move(ctx, d.cardID, target)
		return
	}
	if card, ok := g.session.CurrentCard(); ok && card.ID == d.cardID {
		g.decide(ctx, decisionFor(target))
	}
}

func decisionFor(col session.Column) session.Decision {
	switch col {
	case session.ColumnDeferred:
		return session.Defer
	case session.ColumnRejected:
		return session.Reject
	default:
		return session.Accept
	}
}
