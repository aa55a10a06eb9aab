package enums

import "fmt"

// Unit is the fixed measurement vocabulary accepted for shortages.
type Unit string

const (
	UnitKilo   Unit = "كيلو"
	UnitLiter  Unit = "لتر"
	UnitPiece  Unit = "حبة"
	UnitCarton Unit = "كرتون"
	UnitBox    Unit = "صندوق"
	UnitBag    Unit = "كيس"
	UnitCan    Unit = "علبة"
	UnitDozen  Unit = "درزن"
)

var validUnits = []Unit{
	UnitKilo,
	UnitLiter,
	UnitPiece,
	UnitCarton,
	UnitBox,
	UnitBag,
	UnitCan,
	UnitDozen,
}

// Units returns the vocabulary in presentation order.
func Units() []Unit {
	out := make([]Unit, len(validUnits))
	copy(out, validUnits)
	return out
}

// IsValid checks whether the given unit matches the canonical vocabulary.
func (u Unit) IsValid() bool {
	for _, candidate := range validUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUnit converts raw strings into Unit.
func ParseUnit(value string) (Unit, error) {
	for _, candidate := range validUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid unit %q", value)
}
