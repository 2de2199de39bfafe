package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/readydeck/internal/carddata"
	"github.com/samdwyer/readydeck/internal/session"
	"github.com/samdwyer/readydeck/internal/telemetry"
	"github.com/samdwyer/readydeck/internal/ui"
)

// drag tracks a mouse press that may end on a bucket.
type drag struct {
	active      bool
	cardID      int
	fromCurrent bool
}

// Game holds the session and everything needed to present it.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	catalog  *carddata.Catalog
	session  *session.Session
	cfg      Config
	id       string
	tracer   trace.Tracer
	mode     Mode
	view     ui.View
	drag     drag
	running  bool
	now      func() time.Time
}

// New creates a new game on the terminal.
func New(cfg Config) (*Game, error) {
	catalog, err := carddata.LoadCatalog()
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return newGame(cfg, screen, catalog), nil
}

func newGame(cfg Config, screen *ui.Screen, catalog *carddata.Catalog) *Game {
	var opts []session.Option
	if cfg.Shuffle {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		opts = append(opts, session.WithShuffle(rand.New(rand.NewSource(seed))))
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, catalog),
		catalog:  catalog,
		session:  catalog.NewSession(opts...),
		cfg:      cfg,
		id:       uuid.NewString(),
		tracer:   telemetry.Tracer("session"),
		mode:     ModeNormal,
		running:  true,
		now:      time.Now,
	}
}

// Run executes the main input loop until the user quits.
func (g *Game) Run(ctx context.Context) error {
	_, span := telemetry.Tracer("game").Start(ctx, "game.init")
	span.SetAttributes(
		attribute.String("session.id", g.id),
		attribute.Int("deck.base_cards", g.catalog.Count()),
		attribute.Bool("deck.shuffle", g.cfg.Shuffle),
	)
	span.End()

	for g.running {
		g.render()
		g.handleInput(ctx)
	}

	g.screen.Close()
	return nil
}

func (g *Game) render() {
	g.view.Help = g.help()
	g.renderer.Render(g.session, g.view)
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventMouse:
		g.handleMouseEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case nil:
		// Screen finalized
		g.running = false
	}
}

func (g *Game) help() string {
	switch {
	case g.mode == ModeForm:
		return "Tab switch field  Enter add card  Esc cancel"
	case g.session.Phase() == session.PhaseNotStarted:
		return "Enter start  n new card  ↑/↓ select  x remove card  q quit"
	case g.session.Phase() == session.PhaseSummary:
		return "e export  g back to board  R restart  q quit"
	case g.mode == ModeSelect:
		return "←/→ column  ↑/↓ card  a/d/r move card  Esc done"
	case g.session.Phase() == session.PhaseComplete:
		return "s summary  u undo  Tab re-file cards  n new card  R restart  q quit"
	default:
		return "a accept  d defer  r reject  u undo  Tab re-file cards  n new card  R restart  q quit"
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
