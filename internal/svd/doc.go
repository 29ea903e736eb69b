// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

// Package svd implements the rating prediction pipeline: building an
// aligned user-item rating matrix from two data splits, computing a
// truncated singular value decomposition of the training matrix,
// reconstructing and rescaling predicted ratings, scoring the
// reconstruction against held-out data, and ranking unrated items per
// user.
//
// # Pipeline
//
//	Build -> Align -> Factorize -> Reconstruct -> Evaluate
//	                                      \-> Model.Recommend
//
// Each stage fully consumes its inputs and produces an immutable output
// before the next stage runs. Matrices are ephemeral: derived per run
// and discarded after metrics and recommendations are produced.
//
// # Unobserved cells
//
// Matrix stores observed-ness explicitly per cell. The conventional
// "0 means unrated" dense encoding exists only at the factorization
// boundary, where Matrix.Dense materializes unobserved cells as 0 for
// the linear algebra routines.
//
// # Errors
//
// Stages signal failures through three sentinel kinds, discriminated
// with errors.Is: ErrInvalidInput, ErrInsufficientData and
// ErrNumericDegeneracy. A failed run reports which stage failed; it
// never produces default-zero metrics.
package svd
