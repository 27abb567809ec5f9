package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// Limits applied to user-supplied tab input.
const (
	NumStringLines   = 6
	MaxFret          = 36
	MaxDocumentName  = 128
	MaxPositionIndex = 1 << 16
)

// ValidateStringLine checks that line names one of the six string-lines.
func ValidateStringLine(line int) error {
	if line < 1 || line > NumStringLines {
		return New(ErrCodeInvalidStringLine, "string-line %d out of range 1..%d", line, NumStringLines)
	}
	return nil
}

// ValidateSymbol checks a note symbol. A symbol is either a fret number
// from 0 to MaxFret, a muted-string "x", or one of the technique markers
// s (slide), b (bend), h (hammer-on) and p (pull-off).
func ValidateSymbol(symbol string) error {
	switch symbol {
	case "":
		return New(ErrCodeInvalidSymbol, "symbol cannot be empty")
	case "x", "s", "b", "h", "p":
		return nil
	}
	fret, err := strconv.Atoi(symbol)
	if err != nil || strings.HasPrefix(symbol, "+") || strings.HasPrefix(symbol, "-") {
		return New(ErrCodeInvalidSymbol, "invalid symbol %q", symbol)
	}
	if fret > MaxFret {
		return New(ErrCodeInvalidSymbol, "fret %d above %d", fret, MaxFret)
	}
	return nil
}

// ValidatePosition checks a position index.
func ValidatePosition(p int) error {
	if p < 0 || p > MaxPositionIndex {
		return New(ErrCodeInvalidPosition, "position %d out of range", p)
	}
	return nil
}

// ValidateDocumentName checks a human-readable document name. Names are
// also used as file stems, so path separators are rejected.
func ValidateDocumentName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidDocument, "document name cannot be empty")
	}
	if len(name) > MaxDocumentName {
		return New(ErrCodeInvalidDocument, "document name too long (max %d characters)", MaxDocumentName)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "document name contains invalid control characters")
		}
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return New(ErrCodeInvalidDocument, "document name cannot contain path separators")
	}
	return nil
}
