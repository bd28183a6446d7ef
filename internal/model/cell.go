package model

import (
	"math"
	"strconv"
	"strings"
)

// CellKind classifies a raw tabular cell.
type CellKind int

const (
	// CellMissing is an empty cell or a conventional NA token.
	CellMissing CellKind = iota
	// CellNumber is a finite numeric value.
	CellNumber
	// CellUnparseable is present but cannot be read as a number.
	CellUnparseable
)

// String returns a human readable name for the kind.
func (k CellKind) String() string {
	switch k {
	case CellMissing:
		return "missing"
	case CellNumber:
		return "number"
	case CellUnparseable:
		return "unparseable"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k CellKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// naTokens are the values treated as missing rather than unparseable.
var naTokens = map[string]struct{}{
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
	"-":    {},
	"#n/a": {},
}

// Cell is a raw revenue or expense value as read from the source.
type Cell struct {
	Raw    string
	Number float64
	Kind   CellKind
}

// ParseCell classifies a raw string value.
func ParseCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Cell{Raw: raw, Kind: CellMissing}
	}
	if _, ok := naTokens[strings.ToLower(trimmed)]; ok {
		return Cell{Raw: raw, Kind: CellMissing}
	}

	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return Cell{Raw: raw, Kind: CellUnparseable}
	}
	return Cell{Raw: raw, Number: v, Kind: CellNumber}
}

// NumberCell builds a cell holding v.
func NumberCell(v float64) Cell {
	return Cell{Raw: strconv.FormatFloat(v, 'f', -1, 64), Number: v, Kind: CellNumber}
}

// MissingCell builds an empty cell.
func MissingCell() Cell {
	return Cell{Kind: CellMissing}
}

// IsNumber reports whether the cell holds a usable number.
func (c Cell) IsNumber() bool {
	return c.Kind == CellNumber
}
