// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

// Package dataset loads rating records and partitions them into
// train/test splits.
//
// The core pipeline consumes records through the Source interface; the
// package ships a DuckDB-backed CSV source for MovieLens-style files and
// an in-memory source for tests and embedding callers.
package dataset

import "context"

// Rating is a single user-item rating record. Records are immutable once
// loaded.
type Rating struct {
	// UserID identifies the rating user.
	UserID int `json:"user_id"`

	// ItemID identifies the rated item (movieId in MovieLens files).
	ItemID int `json:"item_id"`

	// Rating is the rating value, typically 0.5-5.0 in 0.5 steps.
	Rating float64 `json:"rating"`

	// Timestamp is the rating time in Unix seconds. Used only for
	// temporal splitting, never by the factorization itself.
	Timestamp int64 `json:"timestamp"`
}

// Source yields the full set of rating records as an in-memory table.
type Source interface {
	// LoadAll returns every rating record. The returned slice is owned
	// by the caller.
	LoadAll(ctx context.Context) ([]Rating, error)
}

// SliceSource is an in-memory Source backed by a record slice.
type SliceSource []Rating

// LoadAll returns a copy of the backing slice.
func (s SliceSource) LoadAll(_ context.Context) ([]Rating, error) {
	out := make([]Rating, len(s))
	copy(out, s)
	return out, nil
}

// Ensure interface compliance.
var _ Source = (SliceSource)(nil)
