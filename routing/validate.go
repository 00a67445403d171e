package routing

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// checkValues reports every NaN, infinite or negative entry of v, at most
// limit of them, as one multierr value. what names the quantity.
func checkValues(v []float64, what string, limit int) error {
	var errs error
	bad := 0
	for p, x := range v {
		if x >= 0 && !math.IsInf(x, 1) {
			continue
		}
		bad++
		if bad <= limit {
			errs = multierr.Append(errs, fmt.Errorf("pixel %d: %s = %v", p, what, x))
		}
	}
	if bad > limit {
		errs = multierr.Append(errs, fmt.Errorf("and %d more", bad-limit))
	}
	return errs
}
