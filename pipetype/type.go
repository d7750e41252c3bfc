// Package pipetype implements the closed pipe-type lattice that the
// pipeline engine type-checks stage connections against before launching
// any process.
package pipetype

import "strings"

// Type classifies what a stage reads from stdin or writes to stdout.
type Type int

const (
	// Any accepts data of any type. Used as a sink's declared input when
	// the sink doesn't care what it receives.
	Any Type = iota

	// Unknown is binary data of unknown shape — what a command resolved
	// from the system $PATH is assumed to produce.
	Unknown

	// Nothing marks a stage that reads no stdin, or writes no stdout.
	Nothing

	// Cbor is a stream of self-describing CBOR records.
	Cbor

	// Text is human-readable line-oriented text.
	Text

	// Tty is text containing ANSI escape codes, meant for a terminal.
	Tty
)

func (t Type) String() string {
	switch t {
	case Any:
		return "[any]"
	case Unknown:
		return "[unknown]"
	case Nothing:
		return "[nothing]"
	case Cbor:
		return "cbor"
	case Text:
		return "text"
	case Tty:
		return "tty"
	default:
		return "[invalid]"
	}
}

// Parse resolves the user-facing type names accepted in shell syntax (the
// argument to the `to` built-in). Any/Unknown/Nothing have no textual
// form — they are never written by a user, only inferred by the engine —
// so they are deliberately not accepted here.
func Parse(name string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cbor":
		return Cbor, true
	case "text":
		return Text, true
	case "tty":
		return Tty, true
	default:
		return 0, false
	}
}

// CanConnect reports whether a stage producing `from` may feed a stage
// expecting `to`.
func CanConnect(from, to Type) bool {
	switch {
	case to == Any:
		return true
	case from == to:
		return true
	case to == Nothing:
		return true
	default:
		return false
	}
}
