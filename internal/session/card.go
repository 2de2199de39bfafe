package session

// Category tags a card with the criterion group it belongs to.
type Category string

// CategoryCustom marks cards authored during a session.
const CategoryCustom Category = "custom"

// Card is an immutable triage card.
type Card struct {
	ID          int
	Category    Category
	Title       string
	Description string
}

// IsCustom reports whether the card was authored at runtime.
func (c Card) IsCustom() bool {
	return c.Category == CategoryCustom
}

// Decision is the verdict given to the current card.
type Decision int

const (
	// Accept files the card as an agreed criterion.
	Accept Decision = iota
	// Defer files the card as "not yet".
	Defer
	// Reject files the card as not applicable.
	Reject
)

// String returns a human-readable decision name.
func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case Defer:
		return "defer"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the three decisions.
func (d Decision) Valid() bool {
	return d >= Accept && d <= Reject
}

// Column returns the bucket a decision files its card into.
func (d Decision) Column() Column {
	switch d {
	case Accept:
		return ColumnAccepted
	case Defer:
		return ColumnDeferred
	case Reject:
		return ColumnRejected
	default:
		return ColumnDeck
	}
}

// Column identifies where a card lives. ColumnDeck is a sentinel for the
// undecided queue; the other three are the buckets.
type Column int

const (
	ColumnDeck Column = iota
	ColumnAccepted
	ColumnDeferred
	ColumnRejected
)

// Buckets lists the three real buckets in display order.
var Buckets = []Column{ColumnAccepted, ColumnDeferred, ColumnRejected}

// String returns a human-readable column name.
func (c Column) String() string {
	switch c {
	case ColumnDeck:
		return "deck"
	case ColumnAccepted:
		return "accepted"
	case ColumnDeferred:
		return "deferred"
	case ColumnRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// IsBucket reports whether c is one of the three buckets.
func (c Column) IsBucket() bool {
	return c >= ColumnAccepted && c <= ColumnRejected
}

func (c Column) index() int {
	return int(c) - 1
}
