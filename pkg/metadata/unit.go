package metadata

import (
	"fmt"
	"strings"
)

// Unit of measure for an inventory item: mass, volume or count.
type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitLiter    Unit = "L"
	UnitCount    Unit = "units"
)

func NewUnit(value string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "kg", "kilogram", "kilograms":
		return UnitKilogram, nil
	case "l", "liter", "liters", "litre", "litres":
		return UnitLiter, nil
	case "units", "unit", "pcs":
		return UnitCount, nil
	}

	return Unit(value), fmt.Errorf(
		"value not valid, only valid values are: %s, %s, %s",
		UnitKilogram, UnitLiter, UnitCount,
	)
}

func (u Unit) IsValid() bool {
	switch u {
	case UnitKilogram, UnitLiter, UnitCount:
		return true
	default:
		return false
	}
}

func (u Unit) String() string {
	return string(u)
}
