// Package fit provides the nonlinear least-squares fitter used by the
// energy model to calibrate a candidate formula's numeric parameters
// against training data.
package fit

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// ResidualFunc returns the sum of squared errors for a given parameter
// vector theta. The energy model builds one of these per fit call by
// closing over the compiled expression and the training data.
type ResidualFunc func(theta []float64) (sse float64)

// ErrFitFailed is returned when the underlying optimizer cannot make
// progress from theta0 (a non-finite objective value, or a result the
// optimizer itself reports as a failure status).
var ErrFitFailed = errors.New("fit: optimizer failed to converge")

// Fit runs a derivative-free Nelder-Mead minimization of f starting from
// theta0, capped at maxIter iterations. This mirrors
// scipy.optimize.curve_fit's default behavior when no Jacobian is
// supplied: minimize the sum of squared residuals directly rather than
// linearizing around the initial guess.
func Fit(f ResidualFunc, theta0 []float64, maxIter int) ([]float64, error) {
	if len(theta0) == 0 {
		return nil, nil
	}
	problem := optimize.Problem{
		Func: func(theta []float64) float64 {
			v := f(theta)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return math.MaxFloat64
			}
			return v
		},
	}

	result, err := optimize.Minimize(problem, theta0, &optimize.Settings{
		MajorIterations: maxIter,
	}, &optimize.NelderMead{})
	if err != nil {
		return nil, errors.Join(ErrFitFailed, err)
	}
	if result.Status == optimize.Failure {
		return nil, ErrFitFailed
	}
	// The objective above maps non-finite values to MaxFloat64, so check
	// the residual itself at the returned point.
	if v := f(result.X); math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, ErrFitFailed
	}
	return result.X, nil
}
