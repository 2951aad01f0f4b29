// Package analysis derives summary statistics from recorded runs:
// specific growth rate, doubling time, and substrate depletion.
package analysis

import (
	"math"

	"github.com/san-kum/dynfba/internal/sim"
)

// GrowthStats summarizes the biomass trajectory of one run.
type GrowthStats struct {
	// SpecificRate is the fitted specific growth rate in 1/hr, from a
	// least-squares fit of ln(biomass) against time.
	SpecificRate float64
	// DoublingTime is ln(2)/SpecificRate in hours; +Inf when the
	// culture does not grow.
	DoublingTime float64
	// InitialBiomass and FinalBiomass bracket the run (gDW).
	InitialBiomass float64
	FinalBiomass   float64
}

// FitGrowth estimates the specific growth rate from a time series.
// Returns false when fewer than two snapshots exist or biomass is not
// strictly positive throughout.
func FitGrowth(series *sim.TimeSeries) (GrowthStats, bool) {
	times, _ := series.Column("time")
	biomass, _ := series.Column("biomass")
	if len(times) < 2 {
		return GrowthStats{}, false
	}

	// Least squares on (t_hr, ln X).
	n := float64(len(times))
	var sumT, sumY, sumTT, sumTY float64
	for i := range times {
		if biomass[i] <= 0 {
			return GrowthStats{}, false
		}
		t := times[i] / sim.SecondsPerHour
		y := math.Log(biomass[i])
		sumT += t
		sumY += y
		sumTT += t * t
		sumTY += t * y
	}
	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return GrowthStats{}, false
	}
	rate := (n*sumTY - sumT*sumY) / denom

	doubling := math.Inf(1)
	if rate > 0 {
		doubling = math.Ln2 / rate
	}
	return GrowthStats{
		SpecificRate:   rate,
		DoublingTime:   doubling,
		InitialBiomass: biomass[0],
		FinalBiomass:   biomass[len(biomass)-1],
	}, true
}

// DepletionTime returns the simulated time (seconds) at which a
// metabolite first reaches zero, and false if it never does.
func DepletionTime(series *sim.TimeSeries, metabolite string) (float64, bool) {
	times, _ := series.Column("time")
	conc, ok := series.Column(metabolite)
	if !ok {
		return 0, false
	}
	for i, v := range conc {
		if v <= 0 {
			return times[i], true
		}
	}
	return 0, false
}
