package commute

import "math"

// Annualization and offset constants.
//
// A commute is two legs per working day; the one-way estimate from the
// service is multiplied up to a full year before being divided by a single
// tree's annual absorption capacity.
const (
	// RoundTripLegsPerDay is the number of commute legs per working day.
	RoundTripLegsPerDay = 2

	// WorkingDaysPerYear is the assumed number of commuting days per year.
	WorkingDaysPerYear = 230

	// TreeAbsorptionKgPerYear is the kg CO2e one tree absorbs in a year.
	TreeAbsorptionKgPerYear = 25.0
)

// AnnualEmissionsKg converts a one-way emissions value to annualized
// round-trip emissions.
func AnnualEmissionsKg(oneWayKgCO2e float64) float64 {
	return oneWayKgCO2e * RoundTripLegsPerDay * WorkingDaysPerYear
}

// TreesNeeded returns the number of trees required to absorb the annualized
// emissions for the given one-way value, rounded up. It is a pure projection
// of an estimate and is never stored; callers recompute it on use.
//
// Zero or negative input yields zero trees.
func TreesNeeded(oneWayKgCO2e float64) int {
	if oneWayKgCO2e <= 0 {
		return 0
	}
	return int(math.Ceil(AnnualEmissionsKg(oneWayKgCO2e) / TreeAbsorptionKgPerYear))
}
