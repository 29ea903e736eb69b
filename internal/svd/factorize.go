// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

package svd

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Factorization holds the truncated singular value decomposition of a
// training matrix: U (users x k), Sigma (k singular values, descending)
// and Vt (k x items), whose product approximates the matrix.
type Factorization struct {
	U     *mat.Dense
	Sigma []float64
	Vt    *mat.Dense
}

// Rank returns the number of singular values kept.
func (f *Factorization) Rank() int { return len(f.Sigma) }

// FactorizeOptions configures the decomposition.
type FactorizeOptions struct {
	// Rank is the requested number of singular values. Clamped to
	// min(rows, cols)-1 (floor 1) when the matrix is smaller.
	Rank int

	// Seed is reserved for randomized solvers. The Golub-Kahan
	// bidiagonalization used here is fully deterministic, so identical
	// (matrix, rank) inputs always produce identical output; Seed is
	// carried so a randomized method could be swapped in without an
	// API break.
	Seed int64
}

// Factorize computes the truncated SVD of a rating matrix. The matrix
// is not mutated. An empty matrix or a non-positive rank is rejected
// with ErrInvalidInput.
func Factorize(m *Matrix, opts FactorizeOptions) (*Factorization, error) {
	if m == nil || m.IsEmpty() {
		return nil, fmt.Errorf("factorize: %w: empty matrix", ErrInvalidInput)
	}
	if opts.Rank <= 0 {
		return nil, fmt.Errorf("factorize: %w: rank %d", ErrInvalidInput, opts.Rank)
	}

	rows, cols := m.Rows(), m.Cols()
	k := clampRank(opts.Rank, rows, cols)

	var dec mat.SVD
	if ok := dec.Factorize(m.Dense(), mat.SVDThin); !ok {
		return nil, fmt.Errorf("factorize: %w: SVD failed to converge", ErrNumericDegeneracy)
	}

	var u, v mat.Dense
	dec.UTo(&u)
	dec.VTo(&v)
	values := dec.Values(nil)

	sigma := make([]float64, k)
	copy(sigma, values[:k])

	// Thin U is rows x min(rows, cols); keep the leading k columns.
	uTrunc := mat.DenseCopyOf(u.Slice(0, rows, 0, k))

	// Thin V is cols x min(rows, cols); transpose its leading k
	// columns into Vt.
	vt := mat.NewDense(k, cols, nil)
	for i := 0; i < k; i++ {
		for j := 0; j < cols; j++ {
			vt.Set(i, j, v.At(j, i))
		}
	}

	return &Factorization{U: uTrunc, Sigma: sigma, Vt: vt}, nil
}

// clampRank limits the requested rank to what a rows x cols matrix can
// meaningfully support: one less than the smaller dimension, but never
// below 1.
func clampRank(rank, rows, cols int) int {
	maxRank := rows
	if cols < maxRank {
		maxRank = cols
	}
	maxRank--
	if maxRank < 1 {
		maxRank = 1
	}
	if rank < maxRank {
		return rank
	}
	return maxRank
}
