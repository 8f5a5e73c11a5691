// Package roots finds the real roots of quadratic, cubic and quartic polynomials.
//
// The cubic uses Cardano's formula and the quartic uses Ferrari's method, in the
// closed forms given by Schwarze's "Cubic and Quartic Roots" (Graphics Gems I).
// Coefficients are passed highest degree first: Quartic(c0, c1, c2, c3, c4) solves
// c0·x⁴ + c1·x³ + c2·x² + c3·x + c4 = 0.
package roots

import "math"

// Solver extracts real roots, treating magnitudes below Epsilon as exactly zero
type Solver struct {
	Epsilon float64
}

// NewSolver creates a solver with the given near-zero threshold
func NewSolver(epsilon float64) Solver {
	return Solver{Epsilon: epsilon}
}

func (s Solver) isZero(x float64) bool {
	return math.Abs(x) < s.Epsilon
}

// Quadratic returns the real roots of c0·x² + c1·x + c2 = 0.
// A double root is reported once.
func (s Solver) Quadratic(c0, c1, c2 float64) []float64 {
	// normal form: x² + px + q = 0
	p := c1 / (2 * c0)
	q := c2 / c0

	d := p*p - q

	switch {
	case s.isZero(d):
		return []float64{-p}
	case d < 0:
		return nil
	default:
		sqrtD := math.Sqrt(d)
		return []float64{sqrtD - p, -sqrtD - p}
	}
}

// Cubic returns the real roots of c0·x³ + c1·x² + c2·x + c3 = 0.
// Repeated roots are reported once.
func (s Solver) Cubic(c0, c1, c2, c3 float64) []float64 {
	// normal form: x³ + Ax² + Bx + C = 0
	a := c1 / c0
	b := c2 / c0
	c := c3 / c0

	// substitute x = y - A/3 to eliminate the quadratic term: y³ + py + q = 0
	a2 := a * a
	p := 1.0 / 3 * (-1.0/3*a2 + b)
	q := 1.0 / 2 * (2.0/27*a*a2 - 1.0/3*a*b + c)

	// Cardano's formula
	p3 := p * p * p
	d := q*q + p3

	var ys []float64
	switch {
	case s.isZero(d):
		if s.isZero(q) {
			// one triple root
			ys = []float64{0}
		} else {
			// one single and one double root
			u := math.Cbrt(-q)
			ys = []float64{2 * u, -u}
		}
	case d < 0:
		// casus irreducibilis: three real roots
		phi := 1.0 / 3 * math.Acos(clampUnit(-q/math.Sqrt(-p3)))
		t := 2 * math.Sqrt(-p)
		ys = []float64{
			t * math.Cos(phi),
			-t * math.Cos(phi+math.Pi/3),
			-t * math.Cos(phi-math.Pi/3),
		}
	default:
		// one real root
		sqrtD := math.Sqrt(d)
		u := math.Cbrt(sqrtD - q)
		v := -math.Cbrt(sqrtD + q)
		ys = []float64{u + v}
	}

	return resubstitute(ys, a/3)
}

// Quartic returns the real roots of c0·x⁴ + c1·x³ + c2·x² + c3·x + c4 = 0.
// The result is empty when the polynomial has no real roots.
func (s Solver) Quartic(c0, c1, c2, c3, c4 float64) []float64 {
	// normal form: x⁴ + Ax³ + Bx² + Cx + D = 0
	a := c1 / c0
	b := c2 / c0
	c := c3 / c0
	d := c4 / c0

	// substitute x = y - A/4 to eliminate the cubic term: y⁴ + py² + qy + r = 0
	a2 := a * a
	p := -3.0/8*a2 + b
	q := 1.0/8*a2*a - 1.0/2*a*b + c
	r := -3.0/256*a2*a2 + 1.0/16*a2*b - 1.0/4*a*c + d

	var ys []float64
	if s.isZero(r) {
		// no absolute term: y(y³ + py + q) = 0
		ys = append(s.Cubic(1, 0, p, q), 0)
	} else {
		// one real root of the resolvent cubic ...
		z := s.Cubic(1, -1.0/2*p, -r, 1.0/2*r*p-1.0/8*q*q)[0]

		// ... splits the depressed quartic into two quadratics
		u := z*z - r
		v := 2*z - p

		switch {
		case s.isZero(u):
			u = 0
		case u > 0:
			u = math.Sqrt(u)
		default:
			return nil
		}

		switch {
		case s.isZero(v):
			v = 0
		case v > 0:
			v = math.Sqrt(v)
		default:
			return nil
		}

		if q < 0 {
			v = -v
		}
		ys = append(s.Quadratic(1, v, z-u), s.Quadratic(1, -v, z+u)...)
	}

	return resubstitute(ys, a/4)
}

// resubstitute undoes the depression shift x = y - shift
func resubstitute(ys []float64, shift float64) []float64 {
	for i := range ys {
		ys[i] -= shift
	}
	return ys
}

// clampUnit keeps an acos argument inside [-1, 1] against rounding drift
func clampUnit(x float64) float64 {
	return max(-1, min(1, x))
}
