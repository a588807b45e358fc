package algo

import "github.com/eastside-atlas/velocity/schema"

// Lerp samples a piecewise-linear series at the given year.
// Points must be sorted by year with unique years. Years outside the series
// clamp to the nearest endpoint, and an empty series yields 0.
func Lerp(points []schema.TimeSamplePoint, year float64) float64 {
	if len(points) == 0 {
		return 0
	}
	first, last := points[0], points[len(points)-1]
	if year <= float64(first.Year) {
		return first.Value
	}
	if year >= float64(last.Year) {
		return last.Value
	}

	i := Bracket(points, year)
	a, b := points[i], points[i+1]
	t := (year - float64(a.Year)) / float64(b.Year-a.Year)
	return a.Value + t*(b.Value-a.Value)
}

// Bracket returns the index i such that points[i].Year <= year < points[i+1].Year.
// The caller guarantees first.Year < year < last.Year.
func Bracket(points []schema.TimeSamplePoint, year float64) int {
	lo, hi := 0, len(points)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if float64(points[mid].Year) <= year {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
