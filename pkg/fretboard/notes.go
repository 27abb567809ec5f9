package fretboard

import (
	"slices"
	"strings"

	"github.com/matzehuels/tabsmith/pkg/errors"
)

// Flat is the musical flat sign used in note names.
const Flat = "♭"

// Notes lists the twelve pitch classes starting from A.
var Notes = [12]string{"A", "B" + Flat, "B", "C", "C#", "D", "E" + Flat, "E", "F", "F#", "G", "G#"}

// String names from the lowest to the highest string.
const (
	ELow  = "E_LOW"
	A     = "A"
	D     = "D"
	G     = "G"
	B     = "B"
	EHigh = "E_HIGH"
)

// Strings lists the string names from the lowest (string 6) to the highest
// (string 1).
var Strings = [NumStrings]string{ELow, A, D, G, B, EHigh}

var stringNumbers = map[string]int{ELow: 6, A: 5, D: 4, G: 3, B: 2, EHigh: 1}

// StringNumber maps a string name to its tab string-line, 1 for the high E
// through 6 for the low E. It returns 0 for an unknown name.
func StringNumber(name string) int { return stringNumbers[name] }

// StringName is the inverse of StringNumber.
func StringName(number int) string {
	if number < 1 || number > NumStrings {
		return ""
	}
	return Strings[NumStrings-number]
}

// Scale names a scale type.
type Scale string

const (
	Major         Scale = "major"
	Minor         Scale = "minor"
	Pentatonic    Scale = "pentatonic"
	HarmonicMinor Scale = "harmonicMinor"
)

// Intervals holds the semitone offsets from the root for each scale.
var Intervals = map[Scale][]int{
	Major:         {0, 2, 4, 5, 7, 9, 11},
	Minor:         {0, 2, 3, 5, 7, 8, 10},
	Pentatonic:    {0, 3, 5, 7, 10},
	HarmonicMinor: {0, 2, 3, 5, 7, 8, 11},
}

// Scales returns the known scale names in a stable order.
func Scales() []Scale {
	return []Scale{Major, Minor, Pentatonic, HarmonicMinor}
}

// ParseScale accepts a scale name, case-insensitively. "harmonic-minor" and
// "harmonic_minor" are accepted for HarmonicMinor.
func ParseScale(s string) (Scale, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	for _, sc := range Scales() {
		if strings.ToLower(string(sc)) == norm {
			return sc, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown scale %q", s)
}

// NormalizeNote maps a key or string name to one of Notes. Both string
// names for E resolve to "E", and an ASCII "b" suffix is read as flat.
func NormalizeNote(name string) (string, error) {
	switch name {
	case ELow, EHigh:
		return "E", nil
	}
	if len(name) == 2 && name[1] == 'b' {
		name = name[:1] + Flat
	}
	if len(name) > 0 {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	if !slices.Contains(Notes[:], name) {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown note %q", name)
	}
	return name, nil
}

// NotesFrom returns the twelve pitch classes rotated to start at note.
func NotesFrom(note string) ([12]string, error) {
	n, err := NormalizeNote(note)
	if err != nil {
		return [12]string{}, err
	}
	i := slices.Index(Notes[:], n)
	var out [12]string
	for k := range out {
		out[k] = Notes[(i+k)%12]
	}
	return out, nil
}

// NoteAt returns the note sounded on the named string at fret.
func NoteAt(stringName string, fret int) (string, error) {
	notes, err := NotesFrom(stringName)
	if err != nil {
		return "", err
	}
	return notes[fret%12], nil
}

// ScaleNotes returns the notes of scale in key, starting from the root.
func ScaleNotes(key string, scale Scale) ([]string, error) {
	intervals, ok := Intervals[scale]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown scale %q", scale)
	}
	notes, err := NotesFrom(key)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(intervals))
	for _, i := range intervals {
		out = append(out, notes[i])
	}
	return out, nil
}
