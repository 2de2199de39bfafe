package game

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/readydeck/internal/authoring"
	"github.com/samdwyer/readydeck/internal/export"
	"github.com/samdwyer/readydeck/internal/session"
	"github.com/samdwyer/readydeck/internal/ui"
)

// command runs one session command inside a span and reports whether it
// changed the session.
func (g *Game) command(ctx context.Context, name string, fn func() bool, attrs ...attribute.KeyValue) bool {
	_, span := g.tracer.Start(ctx, "session."+name)
	defer span.End()

	before := g.session.Phase()
	applied := fn()

	span.SetAttributes(attrs...)
	span.SetAttributes(
		attribute.String("session.id", g.id),
		attribute.String("phase.before", before.String()),
		attribute.String("phase.after", g.session.Phase().String()),
		attribute.Bool("noop", !applied),
	)
	return applied
}

func (g *Game) startGame(ctx context.Context) {
	g.command(ctx, "start", g.session.Start, attribute.Int("deck.size", g.session.TotalCards()))
	g.mode = ModeNormal
	g.view.Selection = ui.Selection{}
	g.view.Status = fmt.Sprintf("Dealt %d cards", g.session.Remaining())
}

func (g *Game) decide(ctx context.Context, d session.Decision) {
	card, ok := g.session.CurrentCard()
	applied := g.command(ctx, "decide", func() bool { return g.session.Decide(d) },
		attribute.Int("card.id", card.ID),
		attribute.String("decision", d.String()),
	)
	if ok && applied {
		g.view.Status = fmt.Sprintf("#%d filed as %s", card.ID, strings.ToLower(ui.BucketLabel(d.Column())))
	}
}

func (g *Game) undo(ctx context.Context) {
	var last session.Entry
	if h := g.session.History(); len(h) > 0 {
		last = h[len(h)-1]
	}
	if g.command(ctx, "undo", g.session.Undo, attribute.Int("card.id", last.Card.ID)) {
		g.view.Status = fmt.Sprintf("#%d is back on the table", last.Card.ID)
	}
}

func (g *Game) move(ctx context.Context, cardID int, target session.Column) {
	applied := g.command(ctx, "move", func() bool { return g.session.Move(cardID, target) },
		attribute.Int("card.id", cardID),
		attribute.String("target", target.String()),
	)
	if applied {
		g.view.Status = fmt.Sprintf("#%d moved to %s", cardID, strings.ToLower(ui.BucketLabel(target)))
	}
}

func (g *Game) addCustomCard(ctx context.Context, d authoring.Draft) session.Card {
	var card session.Card
	g.command(ctx, "add_custom_card", func() bool {
		card = g.session.AddCustomCard(d.Title, d.Description)
		return true
	})
	g.view.Status = fmt.Sprintf("Added custom card #%d", card.ID)
	return card
}

func (g *Game) removeCustomCard(ctx context.Context, cardID int) {
	if g.command(ctx, "remove_custom_card", func() bool { return g.session.RemoveCustomCard(cardID) },
		attribute.Int("card.id", cardID),
	) {
		g.view.Status = fmt.Sprintf("Removed custom card #%d", cardID)
	}
}

func (g *Game) showSummary(ctx context.Context) {
	g.command(ctx, "go_to_summary", g.session.GoToSummary)
	g.mode = ModeNormal
}

func (g *Game) backToGame(ctx context.Context) {
	g.command(ctx, "go_to_game", g.session.GoToGame)
}

func (g *Game) restart(ctx context.Context) {
	g.command(ctx, "restart", g.session.Restart)
	g.mode = ModeNormal
	g.view = ui.View{}
	g.drag = drag{}
}

// exportResults writes the summary to the configured directory.
func (g *Game) exportResults(ctx context.Context) {
	_, span := g.tracer.Start(ctx, "export.write")
	defer span.End()

	results := g.session.Results()
	span.SetAttributes(
		attribute.String("session.id", g.id),
		attribute.Int("cards", results.Total()),
		attribute.Bool("html", g.cfg.ExportHTML),
	)

	meta := export.Meta{SessionID: g.id, Date: g.now()}
	paths, err := export.Write(g.cfg.ExportDir, results, meta, g.cfg.ExportHTML)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.view.Status = "Export failed: " + err.Error()
		return
	}
	g.view.Status = "Exported " + strings.Join(paths, ", ")
}
