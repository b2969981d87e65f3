package rl

import "fmt"

// EmptyRangeError reports a random draw or table lookup over a degenerate range
type EmptyRangeError struct {
	What string
	Low  float64
	High float64
}

func (e *EmptyRangeError) Error() string {
	return fmt.Sprintf("%s: empty range [%g, %g)", e.What, e.Low, e.High)
}
