package providers

import "fmt"

// stopOrderFromTripPositions converts the trip responses of OSRM and Mapbox
// into a stop ordering. positions[i] holds the visit position assigned to
// input point i, where input 0 is the start and input n-1 the destination.
// The mapping is validated as a bijection by position: every visit slot must
// be claimed exactly once, with start and destination pinned to the ends.
func stopOrderFromTripPositions(positions []int) ([]int, error) {
	n := len(positions)
	if n < 3 {
		return nil, fmt.Errorf("trip has %d waypoints, need at least 3", n)
	}

	inputAt := make([]int, n)
	claimed := make([]bool, n)
	for input, pos := range positions {
		if pos < 0 || pos >= n {
			return nil, fmt.Errorf("waypoint position %d out of range", pos)
		}
		if claimed[pos] {
			return nil, fmt.Errorf("waypoint position %d assigned twice", pos)
		}
		claimed[pos] = true
		inputAt[pos] = input
	}

	if inputAt[0] != 0 {
		return nil, fmt.Errorf("trip does not start at the first point")
	}
	if inputAt[n-1] != n-1 {
		return nil, fmt.Errorf("trip does not end at the last point")
	}

	// Interior visit slots map input indices 1..n-2 back to zero-based stops.
	order := make([]int, 0, n-2)
	for pos := 1; pos < n-1; pos++ {
		order = append(order, inputAt[pos]-1)
	}
	return order, nil
}

// validateStopPermutation checks that order is a complete permutation of the
// stop indices {0..nStops-1}, by position rather than by value: stop labels
// may repeat, indices may not.
func validateStopPermutation(order []int, nStops int) error {
	if len(order) != nStops {
		return fmt.Errorf("order has %d entries, want %d", len(order), nStops)
	}
	seen := make([]bool, nStops)
	for _, idx := range order {
		if idx < 0 || idx >= nStops {
			return fmt.Errorf("stop index %d out of range", idx)
		}
		if seen[idx] {
			return fmt.Errorf("stop index %d recommended twice", idx)
		}
		seen[idx] = true
	}
	return nil
}
