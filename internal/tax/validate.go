package tax

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// ValidateBrackets rejects malformed bracket tables at configuration-save
// time so the calculator can assume a clean schedule: ascending, contiguous
// from zero, no gaps or overlaps, only the last bracket unbounded.
func ValidateBrackets(brackets []Bracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("at least one tax bracket is required")
	}

	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("first bracket must start at 0, got %s", brackets[0].Min)
	}

	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return fmt.Errorf("bracket %d rate %s is outside [0, 1]", i+1, b.Rate)
		}

		last := i == len(brackets)-1
		if b.Max == nil {
			if !last {
				return fmt.Errorf("bracket %d is unbounded but is not the last bracket", i+1)
			}
			continue
		}

		if !b.Max.GreaterThan(b.Min) {
			return fmt.Errorf("bracket %d max %s must be greater than min %s", i+1, b.Max, b.Min)
		}

		if !last {
			next := brackets[i+1]
			switch {
			case next.Min.LessThan(*b.Max):
				return fmt.Errorf("bracket %d overlaps bracket %d at %s", i+1, i+2, next.Min)
			case next.Min.GreaterThan(*b.Max):
				return fmt.Errorf("gap between bracket %d and bracket %d from %s to %s", i+1, i+2, b.Max, next.Min)
			}
		}
	}

	return nil
}
