package session

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

var testOrder = []Category{"independent", "negotiable", "valuable", "estimable", "small", "testable"}

// testBase returns 25 base cards whose catalog order interleaves categories,
// so dealing has to sort them.
func testBase() []Card {
	cards := make([]Card, 0, 25)
	for id := 1; id <= 25; id++ {
		cat := testOrder[(25-id)%len(testOrder)]
		cards = append(cards, Card{ID: id, Category: cat, Title: fmt.Sprintf("card %d", id)})
	}
	return cards
}

func newTestSession(opts ...Option) *Session {
	return New(testBase(), testOrder, opts...)
}

// describe renders every partitioned field so states can be compared
// without caring about nil versus empty slices.
func describe(s *Session) string {
	var b strings.Builder
	ids := func(cards []Card) string {
		parts := make([]string, len(cards))
		for i, c := range cards {
			parts[i] = fmt.Sprint(c.ID)
		}
		return "[" + strings.Join(parts, " ") + "]"
	}
	if c, ok := s.CurrentCard(); ok {
		fmt.Fprintf(&b, "cur=%d ", c.ID)
	} else {
		b.WriteString("cur=- ")
	}
	fmt.Fprintf(&b, "deck=%s acc=%s def=%s rej=%s hist=[", ids(s.Deck()),
		ids(s.Bucket(ColumnAccepted)), ids(s.Bucket(ColumnDeferred)), ids(s.Bucket(ColumnRejected)))
	for _, e := range s.History() {
		fmt.Fprintf(&b, " %d:%s", e.Card.ID, e.Decision)
	}
	b.WriteString(" ]")
	return b.String()
}

// checkPartition verifies every dealt card lives in exactly one place.
func checkPartition(t *testing.T, s *Session, total int) {
	t.Helper()
	seen := map[int]string{}
	add := func(where string, cards ...Card) {
		for _, c := range cards {
			if prev, ok := seen[c.ID]; ok {
				t.Fatalf("card %d in both %s and %s: %s", c.ID, prev, where, describe(s))
			}
			seen[c.ID] = where
		}
	}
	if c, ok := s.CurrentCard(); ok {
		add("current", c)
	}
	add("deck", s.Deck()...)
	for _, col := range Buckets {
		add(col.String(), s.Bucket(col)...)
	}
	if len(seen) != total {
		t.Fatalf("partition holds %d cards, want %d: %s", len(seen), total, describe(s))
	}
	if got := s.HistoryLen() + s.Remaining(); got != total {
		t.Fatalf("history + remaining = %d, want %d", got, total)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseNotStarted, "not_started"},
		{PhaseInProgress, "in_progress"},
		{PhaseComplete, "complete"},
		{PhaseSummary, "summary"},
		{Phase(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.expected {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.expected)
		}
	}
}

func TestDecisionColumn(t *testing.T) {
	tests := []struct {
		decision Decision
		column   Column
	}{
		{Accept, ColumnAccepted},
		{Defer, ColumnDeferred},
		{Reject, ColumnRejected},
		{Decision(7), ColumnDeck},
	}

	for _, tt := range tests {
		if got := tt.decision.Column(); got != tt.column {
			t.Errorf("%v.Column() = %v, want %v", tt.decision, got, tt.column)
		}
	}
}

func TestNewSessionIsNotStarted(t *testing.T) {
	s := newTestSession()

	if s.Phase() != PhaseNotStarted {
		t.Errorf("Phase() = %v, want not_started", s.Phase())
	}
	if _, ok := s.CurrentCard(); ok {
		t.Error("CurrentCard() should be empty before start")
	}
	if s.TotalCards() != 25 {
		t.Errorf("TotalCards() = %d, want 25", s.TotalCards())
	}
	if s.Decide(Accept) {
		t.Error("Decide() before start should be a no-op")
	}
	if s.Undo() {
		t.Error("Undo() before start should be a no-op")
	}
}

func TestStartOrdersByCategory(t *testing.T) {
	s := newTestSession()
	s.Start()

	if s.Phase() != PhaseInProgress {
		t.Fatalf("Phase() = %v, want in_progress", s.Phase())
	}

	cur, _ := s.CurrentCard()
	dealt := append([]Card{cur}, s.Deck()...)
	if len(dealt) != 25 {
		t.Fatalf("dealt %d cards, want 25", len(dealt))
	}

	rank := map[Category]int{}
	for i, c := range testOrder {
		rank[c] = i
	}
	for i := 1; i < len(dealt); i++ {
		prev, next := dealt[i-1], dealt[i]
		if rank[prev.Category] > rank[next.Category] {
			t.Fatalf("card %d (%s) dealt before %d (%s)", prev.ID, prev.Category, next.ID, next.Category)
		}
		if prev.Category == next.Category && prev.ID > next.ID {
			t.Fatalf("catalog order not preserved within %s: %d before %d", prev.Category, prev.ID, next.ID)
		}
	}
}

func TestStartRedealsAndClears(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.Decide(Accept)
	s.Decide(Reject)

	s.Start()

	if s.HistoryLen() != 0 || s.Decided() != 0 {
		t.Errorf("Start() should clear history and buckets, got %s", describe(s))
	}
	if s.Remaining() != 25 {
		t.Errorf("Remaining() = %d, want 25", s.Remaining())
	}
}

func TestDecideAllCompletes(t *testing.T) {
	for _, k := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("custom=%d", k), func(t *testing.T) {
			s := newTestSession()
			for i := 0; i < k; i++ {
				s.AddCustomCard(fmt.Sprintf("custom %d", i), "authored during test")
			}
			s.Start()

			total := 25 + k
			for i := 0; i < total; i++ {
				if s.Phase() != PhaseInProgress {
					t.Fatalf("Phase() after %d decisions = %v, want in_progress", i, s.Phase())
				}
				if !s.Decide(Decision(i % 3)) {
					t.Fatalf("Decide() #%d was a no-op", i+1)
				}
				checkPartition(t, s, total)
			}

			if s.Phase() != PhaseComplete {
				t.Errorf("Phase() = %v, want complete", s.Phase())
			}
			if s.Decide(Accept) {
				t.Error("Decide() with no current card should be a no-op")
			}
			if s.HistoryLen() != total {
				t.Errorf("HistoryLen() = %d, want %d", s.HistoryLen(), total)
			}
		})
	}
}

func TestUndoIsInverseOfDecide(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := newTestSession()
	s.Start()

	for step := 0; step < 200; step++ {
		if s.Phase() == PhaseComplete || rng.Intn(3) == 0 {
			if s.CanUndo() {
				s.Undo()
			}
		} else {
			before := describe(s)
			s.Decide(Decision(rng.Intn(3)))
			s.Undo()
			if after := describe(s); after != before {
				t.Fatalf("undo(decide(S)) != S\n before: %s\n after:  %s", before, after)
			}
			s.Decide(Decision(rng.Intn(3)))
		}
		checkPartition(t, s, 25)
	}
}

func TestUndoScenario(t *testing.T) {
	s := newTestSession()
	s.Start()

	first, _ := s.CurrentCard()
	s.Decide(Accept)
	second, _ := s.CurrentCard()
	s.Decide(Accept)
	s.Undo()

	cur, ok := s.CurrentCard()
	if !ok || cur.ID != second.ID {
		t.Errorf("CurrentCard() = %v, want card %d", cur.ID, second.ID)
	}
	acc := s.Bucket(ColumnAccepted)
	if len(acc) != 1 || acc[0].ID != first.ID {
		t.Errorf("accepted = %v, want only card %d", acc, first.ID)
	}
	if s.HistoryLen() != 1 {
		t.Errorf("HistoryLen() = %d, want 1", s.HistoryLen())
	}
}

func TestUndoLeavesComplete(t *testing.T) {
	s := newTestSession()
	s.Start()
	for s.Phase() == PhaseInProgress {
		s.Decide(Defer)
	}

	if !s.Undo() {
		t.Fatal("Undo() should apply after completion")
	}
	if s.Phase() != PhaseInProgress {
		t.Errorf("Phase() = %v, want in_progress", s.Phase())
	}
	if s.DeckLen() != 0 {
		t.Errorf("DeckLen() = %d, want 0", s.DeckLen())
	}

	for s.Undo() {
	}
	if s.HistoryLen() != 0 || s.Remaining() != 25 {
		t.Errorf("undoing everything should restore the deal, got %s", describe(s))
	}
}

func TestMoveBetweenBuckets(t *testing.T) {
	s := newTestSession()
	s.Start()
	a, _ := s.CurrentCard()
	s.Decide(Accept)
	d, _ := s.CurrentCard()
	s.Decide(Defer)
	hist := s.HistoryLen()

	if !s.Move(a.ID, ColumnDeferred) {
		t.Fatal("Move() should apply")
	}

	if s.BucketLen(ColumnAccepted) != 0 {
		t.Errorf("accepted still holds %v", s.Bucket(ColumnAccepted))
	}
	def := s.Bucket(ColumnDeferred)
	if len(def) != 2 || def[0].ID != d.ID || def[1].ID != a.ID {
		t.Errorf("deferred = %v, want [%d %d]", def, d.ID, a.ID)
	}
	if s.HistoryLen() != hist {
		t.Errorf("HistoryLen() = %d, want %d", s.HistoryLen(), hist)
	}
	if s.TotalCards() != 25 {
		t.Errorf("TotalCards() = %d, want 25", s.TotalCards())
	}
	checkPartition(t, s, 25)
}

func TestMoveNoOps(t *testing.T) {
	s := newTestSession()
	s.Start()
	a, _ := s.CurrentCard()
	s.Decide(Accept)
	cur, _ := s.CurrentCard()
	next := s.Deck()[0]
	before := describe(s)

	tests := []struct {
		name   string
		id     int
		target Column
	}{
		{"same bucket", a.ID, ColumnAccepted},
		{"deck target", a.ID, ColumnDeck},
		{"invalid target", a.ID, Column(9)},
		{"current card", cur.ID, ColumnRejected},
		{"deck card", next.ID, ColumnRejected},
		{"unknown card", 999, ColumnRejected},
	}

	for _, tt := range tests {
		if s.Move(tt.id, tt.target) {
			t.Errorf("%s: Move(%d, %v) should be a no-op", tt.name, tt.id, tt.target)
		}
		if after := describe(s); after != before {
			t.Errorf("%s: state changed\n before: %s\n after:  %s", tt.name, before, after)
		}
	}
}

func TestUndoAfterMove(t *testing.T) {
	s := newTestSession()
	s.Start()
	a, _ := s.CurrentCard()
	s.Decide(Accept)
	s.Move(a.ID, ColumnRejected)

	s.Undo()

	if cur, _ := s.CurrentCard(); cur.ID != a.ID {
		t.Errorf("CurrentCard() = %d, want %d", cur.ID, a.ID)
	}
	if s.Decided() != 0 {
		t.Errorf("moved card should leave its new bucket, got %s", describe(s))
	}
	checkPartition(t, s, 25)
}

func TestCustomCardsDealtFirst(t *testing.T) {
	s := newTestSession()
	c := s.AddCustomCard("Design reviewed", "A designer signed off on the mockups.")

	if s.Phase() != PhaseNotStarted {
		t.Errorf("Phase() = %v, want not_started", s.Phase())
	}
	if _, ok := s.CurrentCard(); ok {
		t.Error("AddCustomCard() before start should not deal")
	}

	s.Start()

	cur, _ := s.CurrentCard()
	if cur.ID != c.ID {
		t.Errorf("first card = %d, want custom %d", cur.ID, c.ID)
	}
	if !cur.IsCustom() {
		t.Errorf("card %d should be custom", cur.ID)
	}
	if s.TotalCards() != 26 {
		t.Errorf("TotalCards() = %d, want 26", s.TotalCards())
	}
}

func TestCustomIDsIncrease(t *testing.T) {
	s := newTestSession()
	last := 0
	for round := 0; round < 3; round++ {
		c := s.AddCustomCard("title", "description")
		if c.ID < FirstCustomID || c.ID <= last {
			t.Fatalf("round %d: id %d not above %d", round, c.ID, last)
		}
		last = c.ID
		s.RemoveCustomCard(c.ID)
		s.Restart()
	}
	if last != FirstCustomID+2 {
		t.Errorf("last id = %d, want %d", last, FirstCustomID+2)
	}
}

func TestAddCustomCardMidSession(t *testing.T) {
	s := newTestSession()
	s.Start()
	prev, _ := s.CurrentCard()

	c := s.AddCustomCard("Legal review", "Legal approved the terms.")

	cur, _ := s.CurrentCard()
	if cur.ID != c.ID {
		t.Errorf("CurrentCard() = %d, want %d", cur.ID, c.ID)
	}
	if deck := s.Deck(); len(deck) == 0 || deck[0].ID != prev.ID {
		t.Errorf("displaced card %d should head the deck", prev.ID)
	}
	checkPartition(t, s, 26)
}

func TestAddCustomCardReopensComplete(t *testing.T) {
	s := newTestSession()
	s.Start()
	for s.Phase() == PhaseInProgress {
		s.Decide(Accept)
	}

	s.AddCustomCard("Late idea", "Raised after the deck ran out.")

	if s.Phase() != PhaseInProgress {
		t.Errorf("Phase() = %v, want in_progress", s.Phase())
	}
	s.Decide(Reject)
	if s.Phase() != PhaseComplete {
		t.Errorf("Phase() = %v, want complete", s.Phase())
	}
}

func TestRemoveCustomCardKeepsLiveCopy(t *testing.T) {
	s := newTestSession()
	c := s.AddCustomCard("Temporary", "Only for this session.")
	s.Start()
	s.Decide(Accept)

	if !s.RemoveCustomCard(c.ID) {
		t.Fatal("RemoveCustomCard() should apply")
	}
	if s.RemoveCustomCard(c.ID) {
		t.Error("second RemoveCustomCard() should be a no-op")
	}
	if col, ok := s.Locate(c.ID); !ok || col != ColumnAccepted {
		t.Errorf("Locate(%d) = %v, %v, want accepted", c.ID, col, ok)
	}

	s.Restart()
	s.Start()
	if s.Remaining() != 25 {
		t.Errorf("Remaining() = %d after removal, want 25", s.Remaining())
	}
}

func TestSummaryToggle(t *testing.T) {
	s := newTestSession()
	s.Start()

	if s.GoToSummary() {
		t.Error("GoToSummary() should be a no-op while in progress")
	}
	for s.Phase() == PhaseInProgress {
		s.Decide(Accept)
	}
	before := describe(s)

	if !s.GoToSummary() || s.Phase() != PhaseSummary {
		t.Fatalf("Phase() = %v, want summary", s.Phase())
	}
	if !s.GoToGame() || s.Phase() != PhaseComplete {
		t.Fatalf("Phase() = %v, want complete", s.Phase())
	}
	if after := describe(s); after != before {
		t.Errorf("summary round trip changed state\n before: %s\n after:  %s", before, after)
	}
}

func TestCommandsDuringSummary(t *testing.T) {
	tests := []struct {
		name       string
		run        func(s *Session) bool
		wantApply  bool
		wantReturn Phase
		wantCard   bool
	}{
		{
			name:       "add custom card",
			run:        func(s *Session) bool { s.AddCustomCard("Late", "Raised during the summary."); return true },
			wantApply:  true,
			wantReturn: PhaseInProgress,
			wantCard:   true,
		},
		{
			name:       "undo",
			run:        (*Session).Undo,
			wantApply:  true,
			wantReturn: PhaseInProgress,
			wantCard:   true,
		},
		{
			name:       "decide",
			run:        func(s *Session) bool { return s.Decide(Accept) },
			wantApply:  false,
			wantReturn: PhaseComplete,
		},
		{
			name:       "go to summary again",
			run:        (*Session).GoToSummary,
			wantApply:  false,
			wantReturn: PhaseComplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()
			s.Start()
			for s.Decide(Reject) {
			}
			s.GoToSummary()

			if got := tt.run(s); got != tt.wantApply {
				t.Errorf("applied = %v, want %v", got, tt.wantApply)
			}
			if s.Phase() != PhaseSummary {
				t.Errorf("Phase() = %v, want summary until GoToGame", s.Phase())
			}
			checkPartition(t, s, s.TotalCards())

			if !s.GoToGame() {
				t.Fatal("GoToGame() should apply from summary")
			}
			if s.Phase() != tt.wantReturn {
				t.Errorf("Phase() after GoToGame = %v, want %v", s.Phase(), tt.wantReturn)
			}
			if _, ok := s.CurrentCard(); ok != tt.wantCard {
				t.Errorf("CurrentCard() present = %v, want %v", ok, tt.wantCard)
			}
		})
	}
}

func TestRestartKeepsLibrary(t *testing.T) {
	s := newTestSession()
	s.AddCustomCard("Kept", "Survives a restart.")
	s.Start()
	s.Decide(Accept)

	s.Restart()

	if s.Phase() != PhaseNotStarted {
		t.Errorf("Phase() = %v, want not_started", s.Phase())
	}
	if s.Remaining() != 0 || s.Decided() != 0 || s.HistoryLen() != 0 {
		t.Errorf("Restart() left state behind: %s", describe(s))
	}
	if s.CustomCount() != 1 {
		t.Errorf("CustomCount() = %d, want 1", s.CustomCount())
	}
	if c := s.AddCustomCard("Next", "Gets the next id."); c.ID != FirstCustomID+1 {
		t.Errorf("id after restart = %d, want %d", c.ID, FirstCustomID+1)
	}
}

func TestShuffleStaysWithinCategory(t *testing.T) {
	s1 := newTestSession(WithShuffle(rand.New(rand.NewSource(7))))
	s2 := newTestSession(WithShuffle(rand.New(rand.NewSource(7))))
	s1.Start()
	s2.Start()

	if describe(s1) != describe(s2) {
		t.Error("same seed should deal the same deck")
	}

	cur, _ := s1.CurrentCard()
	dealt := append([]Card{cur}, s1.Deck()...)
	rank := map[Category]int{}
	for i, c := range testOrder {
		rank[c] = i
	}
	for i := 1; i < len(dealt); i++ {
		if rank[dealt[i-1].Category] > rank[dealt[i].Category] {
			t.Fatalf("shuffle broke category order at position %d", i)
		}
	}
}

func TestLocate(t *testing.T) {
	s := newTestSession()
	s.Start()
	a, _ := s.CurrentCard()
	s.Decide(Reject)
	cur, _ := s.CurrentCard()

	tests := []struct {
		id    int
		col   Column
		found bool
	}{
		{a.ID, ColumnRejected, true},
		{cur.ID, ColumnDeck, true},
		{s.Deck()[0].ID, ColumnDeck, true},
		{404, ColumnDeck, false},
	}

	for _, tt := range tests {
		col, ok := s.Locate(tt.id)
		if col != tt.col || ok != tt.found {
			t.Errorf("Locate(%d) = %v, %v, want %v, %v", tt.id, col, ok, tt.col, tt.found)
		}
	}
}
