package tab

// Mode is the authoring mode of a Manager.
type Mode int

const (
	// ModeSingle commits each symbol as its own position.
	ModeSingle Mode = iota
	// ModeChord collects symbols at one position until the mode is left.
	ModeChord
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeChord:
		return "chord"
	default:
		return "unknown"
	}
}

// ParseMode returns the mode named s.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "single", "note":
		return ModeSingle, true
	case "chord":
		return ModeChord, true
	}
	return ModeSingle, false
}
