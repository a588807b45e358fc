package algo

import (
	"math"

	"github.com/eastside-atlas/velocity/schema"
)

// ChangeOf returns the percent change from prior to current, or nil when
// there is no usable baseline (prior missing or zero).
// higherIsWorse is carried on the result for presentation; it does not
// affect the computed percent or direction.
func ChangeOf(current float64, prior *float64, higherIsWorse bool) *schema.Change {
	if prior == nil || *prior == 0 {
		return nil
	}
	p := *prior
	pct := (current - p) / math.Abs(p) * 100
	dir := schema.Up
	if pct < 0 {
		dir = schema.Down
	}
	return &schema.Change{
		Percent:       pct,
		Direction:     dir,
		HigherIsWorse: higherIsWorse,
	}
}
