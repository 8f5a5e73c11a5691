package core

// Tolerances groups the numeric thresholds used by the solver and the shading engine
type Tolerances struct {
	// Solver treats discriminants and polynomial terms with magnitude below this as zero
	Solver float64
	// Surface offsets secondary ray origins off a surface and rejects torus roots
	// at or below it. Tuned for scenes whose objects are roughly unit sized.
	Surface float64
}

// DefaultTolerances returns the thresholds the renderer was tuned with
func DefaultTolerances() Tolerances {
	return Tolerances{
		Solver:  1e-9,
		Surface: 1e-4,
	}
}
