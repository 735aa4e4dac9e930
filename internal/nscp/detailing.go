package nscp

import (
	"math"
	"slices"
)

// NSCP 2015 reinforcement detailing

const (
	// Section 425.2.1 - minimum clear spacing between parallel bars in a layer
	MinClearSpacing = 25.0 // mm

	// Section 425.2.2 - minimum clear spacing between layers
	MinLayerSpacing = 25.0 // mm

	// Aggregate factor for clear spacing (4/3 d_agg)
	AggregateSpacingFactor = 4.0 / 3.0
)

// Bar diameters stocked for beams (mm)
var (
	StirrupDiameters = []int{10, 12, 16}
	MainDiameters    = []int{16, 20, 25, 28, 32, 36}
)

// BarArea returns the nominal area of a bar of diameter db (mm²).
func BarArea(db float64) float64 {
	return math.Pi * db * db / 4
}

// ClearSpacing returns the minimum clear spacing between bars in one layer
// NSCP 2015 Section 425.2.1: max(25 mm, db, 4/3 d_agg). A nil aggregate size
// drops the aggregate term.
func ClearSpacing(db float64, aggregate *float64) float64 {
	s := math.Max(MinClearSpacing, db)
	if aggregate != nil && *aggregate > 0 {
		s = math.Max(s, AggregateSpacingFactor*(*aggregate))
	}
	return s
}

// IsStirrupDiameter reports whether db is a stocked stirrup size.
func IsStirrupDiameter(db float64) bool {
	return isStocked(StirrupDiameters, db)
}

// IsMainDiameter reports whether db is a stocked main bar size.
func IsMainDiameter(db float64) bool {
	return isStocked(MainDiameters, db)
}

func isStocked(sizes []int, db float64) bool {
	if db != math.Trunc(db) {
		return false
	}
	return slices.Contains(sizes, int(db))
}
