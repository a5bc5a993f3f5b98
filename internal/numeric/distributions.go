package numeric

import (
	"fmt"
	"math"

	"hypotest/domain/core"
)

const (
	bisectTol       = 1e-8
	bisectMaxIter   = 200
	bracketAttempts = 60
)

// NormalCDF computes the standard normal CDF via the error function.
func NormalCDF(z float64) float64 {
	return 0.5 * (1 + Erf(z/math.Sqrt2))
}

// Acklam coefficients for the piecewise rational quantile approximation.
var (
	acklamA = [6]float64{
		-3.969683028665376e+01, 2.209460984245205e+02, -2.759285104469687e+02,
		1.383577518672690e+02, -3.066479806614716e+01, 2.506628277459239e+00,
	}
	acklamB = [5]float64{
		-5.447609879822406e+01, 1.615858368580409e+02, -1.556989798598866e+02,
		6.680131188771972e+01, -1.328068155288572e+01,
	}
	acklamC = [6]float64{
		-7.784894002430293e-03, -3.223964580411365e-01, -2.400758277161838e+00,
		-2.549732539343734e+00, 4.374664141464968e+00, 2.938163982698783e+00,
	}
	acklamD = [4]float64{
		7.784695709041462e-03, 3.224671290700398e-01,
		2.445134137142996e+00, 3.754408661907416e+00,
	}
)

// NormalQuantile computes the standard normal quantile with Acklam's
// piecewise rational approximation, followed by one Halley refinement step
// against this package's own CDF so that Quantile(CDF(z)) round-trips.
// Returns -Inf at p == 0 and +Inf at p == 1; p outside [0,1] is an error.
func NormalQuantile(p float64) (float64, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, core.NewInvalidParameterError("p", fmt.Sprintf("must be in (0,1), got %v", p))
	}
	if p == 0 {
		return math.Inf(-1), nil
	}
	if p == 1 {
		return math.Inf(1), nil
	}

	const pLow = 0.02425
	const pHigh = 1 - pLow

	var x float64
	switch {
	case p < pLow:
		q := math.Sqrt(-2 * math.Log(p))
		x = (((((acklamC[0]*q+acklamC[1])*q+acklamC[2])*q+acklamC[3])*q+acklamC[4])*q + acklamC[5]) /
			((((acklamD[0]*q+acklamD[1])*q+acklamD[2])*q+acklamD[3])*q + 1)
	case p <= pHigh:
		q := p - 0.5
		r := q * q
		x = (((((acklamA[0]*r+acklamA[1])*r+acklamA[2])*r+acklamA[3])*r+acklamA[4])*r + acklamA[5]) * q /
			(((((acklamB[0]*r+acklamB[1])*r+acklamB[2])*r+acklamB[3])*r+acklamB[4])*r + 1)
	default:
		q := math.Sqrt(-2 * math.Log(1-p))
		x = -(((((acklamC[0]*q+acklamC[1])*q+acklamC[2])*q+acklamC[3])*q+acklamC[4])*q + acklamC[5]) /
			((((acklamD[0]*q+acklamD[1])*q+acklamD[2])*q+acklamD[3])*q + 1)
	}

	// Halley step: pin the quantile to the CDF implementation actually used
	// for p-values, so inversion errors do not accumulate across the two.
	// Exp overflows past x*x/2 ~ 709; in that far tail keep the raw
	// approximation rather than poison x with Inf/NaN.
	if x*x/2 < 700 {
		e := NormalCDF(x) - p
		u := e * math.Sqrt(2*math.Pi) * math.Exp(x*x/2)
		x -= u / (1 + x*u/2)
	}

	return x, nil
}

// TCDF computes the Student-t CDF with df degrees of freedom via the
// regularized incomplete beta function, symmetric around 0.5.
func TCDF(t, df float64) float64 {
	x := df / (df + t*t)
	ib := RegularizedIncompleteBeta(df/2, 0.5, x)
	if t >= 0 {
		return 1 - ib/2
	}
	return ib / 2
}

// ChiSquareCDF computes the chi-square CDF with df degrees of freedom.
func ChiSquareCDF(x, df float64) (float64, error) {
	return RegularizedGammaP(df/2, x/2)
}

// InvertCDF finds the point where a monotone non-decreasing cdf reaches
// target, by bisection on [lo, hi]. If the initial bracket does not straddle
// the target both bounds are pushed outward symmetrically by a geometrically
// growing span, up to 60 times, before giving up. The doubling matters for
// heavy tails: a t distribution with df=1 puts its 0.9995 quantile near 637,
// far beyond any fixed multiple of the usual [0, 5] starting bracket. Used to
// derive critical values where no closed form is available.
func InvertCDF(cdf func(float64) float64, target, lo, hi float64) (float64, error) {
	if hi <= lo {
		return 0, core.NewInvalidParameterError("bracket", fmt.Sprintf("lo %v must be below hi %v", lo, hi))
	}

	span := hi - lo
	expanded := 0
	for cdf(lo) > target || cdf(hi) < target {
		lo -= span
		hi += span
		span *= 2
		expanded++
		if expanded > bracketAttempts {
			return 0, core.NewDegeneracyError(fmt.Sprintf("could not bracket cdf target %v", target))
		}
	}

	for i := 0; i < bisectMaxIter; i++ {
		mid := (lo + hi) / 2
		if hi-lo < bisectTol {
			return mid, nil
		}
		if cdf(mid) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, nil
}
