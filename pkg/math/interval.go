package math

// Interval is a closed parameter range [T0, T1]. T0 may exceed T1 for a
// decreasing interval; Length is then negative.
type Interval struct {
	T0, T1 float64
}

// NewInterval returns the interval [t0, t1].
func NewInterval(t0, t1 float64) Interval {
	return Interval{T0: t0, T1: t1}
}

// Length returns T1 - T0.
func (i Interval) Length() float64 {
	return i.T1 - i.T0
}

// Min returns the smaller bound.
func (i Interval) Min() float64 {
	if i.T0 < i.T1 {
		return i.T0
	}
	return i.T1
}

// Max returns the larger bound.
func (i Interval) Max() float64 {
	if i.T0 > i.T1 {
		return i.T0
	}
	return i.T1
}

// ParameterAt maps a normalized parameter to the interval.
// 0 returns T0 and 1 returns T1 exactly.
func (i Interval) ParameterAt(normalized float64) float64 {
	switch normalized {
	case 0:
		return i.T0
	case 1:
		return i.T1
	}
	return (1-normalized)*i.T0 + normalized*i.T1
}

// NormalizedParameterAt is the inverse of ParameterAt. A zero-length
// interval maps every value to 0.
func (i Interval) NormalizedParameterAt(t float64) float64 {
	l := i.Length()
	if l == 0 {
		return 0
	}
	return (t - i.T0) / l
}

// Includes reports whether t lies inside the interval, bounds included.
func (i Interval) Includes(t float64) bool {
	return t >= i.Min() && t <= i.Max()
}
