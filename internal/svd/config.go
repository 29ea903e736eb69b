// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

package svd

// PipelineConfig contains the parameters of one pipeline invocation.
type PipelineConfig struct {
	// Rank is the number of singular values kept by the truncated SVD.
	// Clamped to the matrix dimensions at factorization time.
	Rank int

	// Seed drives any randomized numerics; see FactorizeOptions.Seed.
	Seed int64

	// Threshold is the binarization cutoff for the classification
	// metrics.
	Threshold float64

	// RatingMin and RatingMax pin the rating scale used when rescaling
	// predictions. When both are zero, the scale is derived from the
	// full record set passed to Run.
	RatingMin float64
	RatingMax float64
}

// DefaultPipelineConfig returns the default pipeline parameters.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Rank:      10,
		Seed:      42,
		Threshold: 3.5,
		RatingMin: 0,
		RatingMax: 0,
	}
}
