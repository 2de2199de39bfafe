package session

import "slices"

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.state.phase
}

// CurrentCard returns the card awaiting a decision, if any.
func (s *Session) CurrentCard() (Card, bool) {
	if s.state.current == nil {
		return Card{}, false
	}
	return *s.state.current, true
}

// Deck returns a copy of the undecided queue, excluding the current card.
func (s *Session) Deck() []Card {
	return slices.Clone(s.state.deck)
}

// DeckLen returns the number of cards left in the queue.
func (s *Session) DeckLen() int {
	return len(s.state.deck)
}

// Remaining returns the number of undecided cards including the current one.
func (s *Session) Remaining() int {
	n := len(s.state.deck)
	if s.state.current != nil {
		n++
	}
	return n
}

// Bucket returns a copy of a bucket's cards in insertion order. It returns
// nil for ColumnDeck.
func (s *Session) Bucket(col Column) []Card {
	if !col.IsBucket() {
		return nil
	}
	return slices.Clone(s.state.buckets[col.index()])
}

// BucketLen returns the number of cards in a bucket.
func (s *Session) BucketLen(col Column) int {
	if !col.IsBucket() {
		return 0
	}
	return len(s.state.buckets[col.index()])
}

// Decided returns the number of filed cards across all buckets.
func (s *Session) Decided() int {
	n := 0
	for _, b := range s.state.buckets {
		n += len(b)
	}
	return n
}

// Results snapshots the three buckets.
func (s *Session) Results() Results {
	return Results{
		Accepted: s.Bucket(ColumnAccepted),
		Deferred: s.Bucket(ColumnDeferred),
		Rejected: s.Bucket(ColumnRejected),
	}
}

// History returns a copy of the decision history, oldest first.
func (s *Session) History() []Entry {
	return slices.Clone(s.state.history)
}

// HistoryLen returns the number of undoable decisions.
func (s *Session) HistoryLen() int {
	return len(s.state.history)
}

// CanUndo reports whether Undo would change anything.
func (s *Session) CanUndo() bool {
	return len(s.state.history) > 0
}

// CustomCards returns a copy of the custom card library in authoring order.
func (s *Session) CustomCards() []Card {
	return slices.Clone(s.state.custom)
}

// CustomCount returns the size of the custom card library.
func (s *Session) CustomCount() int {
	return len(s.state.custom)
}

// TotalCards returns the base deck size plus the custom library size.
func (s *Session) TotalCards() int {
	return len(s.base) + len(s.state.custom)
}

// Locate reports where a card currently lives. Cards in the deck or the
// current card report ColumnDeck; unknown ids report false.
func (s *Session) Locate(cardID int) (Column, bool) {
	if col, _, ok := s.state.find(cardID); ok {
		return col, true
	}
	if s.state.current != nil && s.state.current.ID == cardID {
		return ColumnDeck, true
	}
	for _, c := range s.state.deck {
		if c.ID == cardID {
			return ColumnDeck, true
		}
	}
	return ColumnDeck, false
}
