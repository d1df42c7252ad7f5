package domain

// OptimizationResult is a provider-recommended reordering of the interior
// stops, with the provider's own cost metrics for that ordering. Absence of a
// recommendation is represented by a nil *OptimizationResult, never by an
// error: consumers fall back to the as-entered route.
type OptimizationResult struct {
	// StopOrder maps optimized position -> index into the original stop list.
	// It is always a complete permutation, validated at construction.
	StopOrder []int

	// Labels are the stop labels in recommended order.
	Labels []string

	TotalDurationMinutes int
	TotalDistanceMeters  int
}
