// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

package svd

import "errors"

var (
	// ErrInvalidInput marks malformed or incompatible shapes and
	// identifiers reaching a stage, such as an empty matrix entering
	// the factorization or mismatched dimensions entering evaluation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientData marks a computation that is mathematically
	// undefined for the given data, such as evaluation with no
	// overlapping observed ratings.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrNumericDegeneracy marks a computation that would produce
	// non-finite results. Stages intercept it at their own boundary;
	// NaN or Inf never reaches reported metrics.
	ErrNumericDegeneracy = errors.New("numeric degeneracy")
)
