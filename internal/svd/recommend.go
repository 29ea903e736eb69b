// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

package svd

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Recommendation pairs an item ID with its predicted score.
type Recommendation struct {
	ItemID int     `json:"item_id"`
	Score  float64 `json:"score"`
}

// Recommend ranks the items a user has not rated in the training data
// by predicted score, descending, and returns at most topN of them.
// Ties are broken by ascending item ID. A user absent from the training
// matrix (for example, dropped during alignment) gets an empty result,
// not an error. Inputs are not mutated.
func Recommend(userID int, pred *mat.Dense, train *Matrix, topN int) []Recommendation {
	if pred == nil || train == nil || topN <= 0 {
		return nil
	}
	row, ok := train.UserIndex(userID)
	if !ok {
		return nil
	}

	candidates := make([]Recommendation, 0, train.Cols())
	for j, itemID := range train.items {
		if _, rated := train.At(row, j); rated {
			continue
		}
		candidates = append(candidates, Recommendation{ItemID: itemID, Score: pred.At(row, j)})
	}

	// Stable sort over the ascending-ID candidate order makes ties
	// resolve by ascending item ID.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}
	return candidates
}
