package health

// SuccessRateStrategy folds one transfer outcome into a 0..100 success rate.
type SuccessRateStrategy interface {
	Update(current float64, success bool) float64
}

// EWMAStrategy smooths the rate; Alpha weights the newest outcome.
type EWMAStrategy struct {
	Alpha float64
}

func (e EWMAStrategy) Update(current float64, success bool) float64 {
	value := 0.0
	if success {
		value = 100
	}
	return e.Alpha*value + (1-e.Alpha)*current
}

// SlidingStrategy moves the rate by fixed steps, clamped to 0..100.
type SlidingStrategy struct {
	StepUp   float64
	StepDown float64
}

func (s SlidingStrategy) Update(current float64, success bool) float64 {
	if success {
		return min(current+s.StepUp, 100)
	}
	return max(current-s.StepDown, 0)
}
