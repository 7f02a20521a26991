package measure

import (
	"gonum.org/v1/gonum/stat"
)

// EstimateSpread returns the sample standard deviation of the per-pair
// estimates, a quick quality signal for the lab report. Zero when fewer
// than two estimates exist.
func EstimateSpread(estimates []float64) float64 {
	if len(estimates) < 2 {
		return 0
	}
	return stat.StdDev(estimates, nil)
}

// ResistivityLeastSquares cross-checks the per-pair resistivity mean by
// regressing R against (l_swapped - l_normal) through the origin: the
// slope of R = rho * dl is rho itself. Pairs with coincident lengths
// contribute a zero abscissa and are skipped.
func ResistivityLeastSquares(readings []Reading) (rho float64, ok bool) {
	var diffs, rs []float64
	for _, r := range readings {
		if !r.Complete() {
			continue
		}
		diff := *r.SwappedLengthCM - *r.NormalLengthCM
		if diff == 0 {
			continue
		}
		diffs = append(diffs, diff)
		rs = append(rs, r.KnownResistance)
	}
	if len(diffs) == 0 {
		return 0, false
	}
	_, beta := stat.LinearRegression(diffs, rs, nil, true)
	return beta, true
}
