// Package game provides the interactive loop that drives a triage session.
package game

// Mode represents how keyboard input is interpreted.
type Mode int

const (
	// ModeNormal is the default mode: keys decide, undo and navigate phases.
	ModeNormal Mode = iota
	// ModeSelect moves a cursor over settled cards so they can be re-filed.
	ModeSelect
	// ModeForm routes keys into the custom card form.
	ModeForm
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSelect:
		return "select"
	case ModeForm:
		return "form"
	default:
		return "unknown"
	}
}
