package catalog

import "math"

// CosineSimilarity returns dot(a,b) / (|a|·|b|). It fails with
// ErrDimensionMismatch when the lengths differ, with ErrZeroNorm when
// either vector has zero norm and with ErrNonFinite when a component is
// NaN or Inf, so the result is never NaN.
//
// Each vector is divided by its largest absolute component before summing;
// cosine is scale-invariant and the squares stay within [0, 1].
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	ma, err := maxAbs(a)
	if err != nil {
		return 0, err
	}
	mb, err := maxAbs(b)
	if err != nil {
		return 0, err
	}
	if ma == 0 || mb == 0 {
		return 0, ErrZeroNorm
	}

	var dot, na, nb float64
	for i := range a {
		x, y := a[i]/ma, b[i]/mb
		dot += x * y
		na += x * x
		nb += y * y
	}
	s := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(-1, math.Min(1, s)), nil
}

func maxAbs(v []float64) (float64, error) {
	var m float64
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, ErrNonFinite
		}
		m = math.Max(m, math.Abs(x))
	}
	return m, nil
}

// round4 rounds half away from zero to 4 decimal places.
func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
