// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

package svd

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Reconstruct multiplies the factors back into a dense predicted
// matrix and rescales it into [ratingMin, ratingMax] with an affine
// min-max transform: the smallest reconstructed value maps to
// ratingMin, the largest to ratingMax.
//
// The rating range must describe the true rating scale of the source
// data (for MovieLens, 0.5-5.0), not the observed range of the aligned
// training subset.
//
// When the reconstruction is flat (max == min, e.g. a single row or
// column), every cell falls back to the midpoint of the rating range
// instead of dividing by zero.
func Reconstruct(f *Factorization, ratingMin, ratingMax float64) (*mat.Dense, error) {
	if f == nil || f.U == nil || f.Vt == nil {
		return nil, fmt.Errorf("reconstruct: %w: nil factorization", ErrInvalidInput)
	}
	uRows, uCols := f.U.Dims()
	vtRows, vtCols := f.Vt.Dims()
	if uCols != len(f.Sigma) || vtRows != len(f.Sigma) {
		return nil, fmt.Errorf("reconstruct: %w: U is %dx%d, Vt is %dx%d, Sigma has %d values",
			ErrInvalidInput, uRows, uCols, vtRows, vtCols, len(f.Sigma))
	}
	if ratingMax < ratingMin {
		return nil, fmt.Errorf("reconstruct: %w: rating range [%g, %g]", ErrInvalidInput, ratingMin, ratingMax)
	}

	raw := reconstructRaw(f)

	data := raw.RawMatrix().Data
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("reconstruct: %w: non-finite value in reconstruction", ErrNumericDegeneracy)
		}
	}

	rawMin := mat.Min(raw)
	rawMax := mat.Max(raw)
	if rawMax == rawMin {
		mid := (ratingMin + ratingMax) / 2
		for i := range data {
			data[i] = mid
		}
		return raw, nil
	}

	floats.AddConst(-rawMin, data)
	floats.Scale((ratingMax-ratingMin)/(rawMax-rawMin), data)
	floats.AddConst(ratingMin, data)
	return raw, nil
}

// reconstructRaw computes U * diag(Sigma) * Vt without rescaling.
func reconstructRaw(f *Factorization) *mat.Dense {
	rows, k := f.U.Dims()

	// Fold Sigma into a column-scaled copy of U, then one product.
	scaled := mat.NewDense(rows, k, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < k; j++ {
			scaled.Set(i, j, f.U.At(i, j)*f.Sigma[j])
		}
	}

	var raw mat.Dense
	raw.Mul(scaled, f.Vt)
	return &raw
}
