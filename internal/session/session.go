// Package session implements the triage session state machine: deck order,
// bucket membership, decision history and the custom card library.
//
// Every command either applies atomically or is a silent no-op. Commands
// compute a new state from a copy of the old one and install it only when
// something changed, so no caller ever observes a half-applied command.
package session

import (
	"cmp"
	"math/rand"
	"slices"
)

// FirstCustomID is the id given to the first authored card.
const FirstCustomID = 26

// Entry is one completed decision in the undo history.
type Entry struct {
	Card     Card
	Decision Decision
}

// Results is a snapshot of the three buckets in insertion order.
type Results struct {
	Accepted []Card
	Deferred []Card
	Rejected []Card
}

// Total returns the number of filed cards.
func (r Results) Total() int {
	return len(r.Accepted) + len(r.Deferred) + len(r.Rejected)
}

type state struct {
	phase        Phase
	deck         []Card
	current      *Card
	buckets      [3][]Card
	history      []Entry
	custom       []Card
	nextCustomID int
}

func (st state) clone() state {
	next := st
	next.deck = slices.Clone(st.deck)
	for i := range st.buckets {
		next.buckets[i] = slices.Clone(st.buckets[i])
	}
	next.history = slices.Clone(st.history)
	next.custom = slices.Clone(st.custom)
	if st.current != nil {
		c := *st.current
		next.current = &c
	}
	return next
}

// settle derives InProgress/Complete from the current card. NotStarted and
// Summary are only left through explicit commands.
func (st *state) settle() {
	if st.phase != PhaseInProgress && st.phase != PhaseComplete {
		return
	}
	if st.current == nil {
		st.phase = PhaseComplete
	} else {
		st.phase = PhaseInProgress
	}
}

func (st *state) draw() {
	st.current = nil
	if len(st.deck) == 0 {
		return
	}
	next := st.deck[0]
	st.current = &next
	st.deck = st.deck[1:]
}

// requeueCurrent pushes the current card back onto the front of the deck.
func (st *state) requeueCurrent() {
	if st.current == nil {
		return
	}
	st.deck = append([]Card{*st.current}, st.deck...)
	st.current = nil
}

// find returns the bucket and position holding id.
func (st *state) find(id int) (Column, int, bool) {
	for _, col := range Buckets {
		for i, c := range st.buckets[col.index()] {
			if c.ID == id {
				return col, i, true
			}
		}
	}
	return ColumnDeck, -1, false
}

func (st *state) removeAt(col Column, pos int) Card {
	b := st.buckets[col.index()]
	card := b[pos]
	st.buckets[col.index()] = slices.Delete(b, pos, pos+1)
	return card
}

// Option configures a Session.
type Option func(*Session)

// WithShuffle shuffles base cards within their category each time a deck is
// dealt. Decisions themselves stay deterministic.
func WithShuffle(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// Session owns all mutable state of one facilitation session.
type Session struct {
	base  []Card
	rank  map[Category]int
	rng   *rand.Rand
	state state
}

// New creates a session in the NotStarted phase. order is the category
// precedence used to arrange base cards when a deck is dealt; categories
// missing from it sort last.
func New(base []Card, order []Category, opts ...Option) *Session {
	rank := make(map[Category]int, len(order))
	for i, c := range order {
		if _, ok := rank[c]; !ok {
			rank[c] = i
		}
	}

	next := FirstCustomID
	for _, c := range base {
		if c.ID >= next {
			next = c.ID + 1
		}
	}

	s := &Session{
		base: slices.Clone(base),
		rank: rank,
		state: state{
			phase:        PhaseNotStarted,
			nextCustomID: next,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// apply installs the result of fn when fn reports a change.
func (s *Session) apply(fn func(st *state) bool) bool {
	next := s.state.clone()
	if !fn(&next) {
		return false
	}
	s.state = next
	return true
}

// orderedBase returns the base cards in category precedence, keeping the
// catalog order (or the shuffled order) within a category.
func (s *Session) orderedBase() []Card {
	cards := slices.Clone(s.base)
	if s.rng != nil {
		s.rng.Shuffle(len(cards), func(i, j int) {
			cards[i], cards[j] = cards[j], cards[i]
		})
	}
	slices.SortStableFunc(cards, func(a, b Card) int {
		return cmp.Compare(s.categoryRank(a.Category), s.categoryRank(b.Category))
	})
	return cards
}

func (s *Session) categoryRank(c Category) int {
	if r, ok := s.rank[c]; ok {
		return r
	}
	return len(s.rank)
}

// Start deals a fresh deck: custom cards in authoring order, then base cards
// by category. Buckets and history are cleared. Calling it again re-deals.
func (s *Session) Start() bool {
	return s.apply(func(st *state) bool {
		cards := make([]Card, 0, len(st.custom)+len(s.base))
		cards = append(cards, st.custom...)
		cards = append(cards, s.orderedBase()...)

		st.deck = cards
		st.buckets = [3][]Card{}
		st.history = nil
		st.draw()
		st.phase = PhaseInProgress
		st.settle()
		return true
	})
}

// Decide files the current card into the bucket for d and draws the next
// card. It is a no-op without a current card.
func (s *Session) Decide(d Decision) bool {
	if !d.Valid() {
		return false
	}
	return s.apply(func(st *state) bool {
		if st.current == nil {
			return false
		}
		card := *st.current
		st.history = append(st.history, Entry{Card: card, Decision: d})
		i := d.Column().index()
		st.buckets[i] = append(st.buckets[i], card)
		st.draw()
		st.settle()
		return true
	})
}

// Undo reverts the most recent decision: the card leaves its bucket and
// becomes current again, and the card it displaced returns to the front of
// the deck. It is a no-op with an empty history.
func (s *Session) Undo() bool {
	return s.apply(func(st *state) bool {
		n := len(st.history)
		if n == 0 {
			return false
		}
		last := st.history[n-1]
		st.history = st.history[:n-1]

		// A later Move may have relocated the card; take it from wherever it is.
		if col, pos, ok := st.find(last.Card.ID); ok {
			st.removeAt(col, pos)
		}

		st.requeueCurrent()
		card := last.Card
		st.current = &card
		st.settle()
		return true
	})
}

// Move re-files a settled card into another bucket, appending it there.
// Cards in the deck or the current card cannot be moved, and moves are not
// recorded in the history.
func (s *Session) Move(cardID int, target Column) bool {
	if !target.IsBucket() {
		return false
	}
	return s.apply(func(st *state) bool {
		src, pos, ok := st.find(cardID)
		if !ok || src == target {
			return false
		}
		card := st.removeAt(src, pos)
		st.buckets[target.index()] = append(st.buckets[target.index()], card)
		return true
	})
}

// AddCustomCard adds an authored card to the library. During a live session
// the card also becomes the current card, ahead of the queue; the card it
// replaces goes back to the front of the deck. Inputs are assumed to be
// validated already.
func (s *Session) AddCustomCard(title, description string) Card {
	var card Card
	s.apply(func(st *state) bool {
		card = Card{
			ID:          st.nextCustomID,
			Category:    CategoryCustom,
			Title:       title,
			Description: description,
		}
		st.nextCustomID++
		st.custom = append(st.custom, card)

		if st.phase == PhaseNotStarted {
			return true
		}
		st.requeueCurrent()
		c := card
		st.current = &c
		st.settle()
		return true
	})
	return card
}

// RemoveCustomCard drops a card from the library. Copies already dealt into
// the live session stay where they are; only future deals are affected.
func (s *Session) RemoveCustomCard(cardID int) bool {
	return s.apply(func(st *state) bool {
		i := slices.IndexFunc(st.custom, func(c Card) bool { return c.ID == cardID })
		if i < 0 {
			return false
		}
		st.custom = slices.Delete(st.custom, i, i+1)
		return true
	})
}

// GoToSummary switches a complete session to the summary view.
func (s *Session) GoToSummary() bool {
	return s.apply(func(st *state) bool {
		if st.phase != PhaseComplete {
			return false
		}
		st.phase = PhaseSummary
		return true
	})
}

// GoToGame leaves the summary view.
func (s *Session) GoToGame() bool {
	return s.apply(func(st *state) bool {
		if st.phase != PhaseSummary {
			return false
		}
		st.phase = PhaseComplete
		st.settle()
		return true
	})
}

// Restart returns to NotStarted, keeping the custom card library and the id
// counter.
func (s *Session) Restart() bool {
	return s.apply(func(st *state) bool {
		*st = state{
			phase:        PhaseNotStarted,
			custom:       st.custom,
			nextCustomID: st.nextCustomID,
		}
		return true
	})
}
