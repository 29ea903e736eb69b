// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

package svd

import (
	"sort"

	"github.com/mlcollab/svdrec/internal/dataset"
)

// cell addresses one (user, item) pair during aggregation.
type cell struct {
	user, item int
}

// Build constructs a rating matrix from a flat record set. Rows and
// columns enumerate the distinct user and item IDs present in the
// records, in ascending order. Duplicate (user, item) pairs are
// aggregated by mean, so rebuilding from the same records always yields
// an identical matrix regardless of record order.
func Build(records []dataset.Rating) *Matrix {
	sums := make(map[cell]float64)
	counts := make(map[cell]int)
	userSet := make(map[int]struct{})
	itemSet := make(map[int]struct{})

	for _, r := range records {
		c := cell{r.UserID, r.ItemID}
		sums[c] += r.Rating
		counts[c]++
		userSet[r.UserID] = struct{}{}
		itemSet[r.ItemID] = struct{}{}
	}

	users := make([]int, 0, len(userSet))
	for u := range userSet {
		users = append(users, u)
	}
	sort.Ints(users)

	items := make([]int, 0, len(itemSet))
	for it := range itemSet {
		items = append(items, it)
	}
	sort.Ints(items)

	m := newMatrix(users, items)
	for c, sum := range sums {
		i := m.userIndex[c.user]
		j := m.itemIndex[c.item]
		m.set(i, j, sum/float64(counts[c]))
	}
	return m
}

// Align restricts two matrices to their common users and items so they
// share identical row and column orderings. The common sets keep the
// train matrix's own (ascending) order. Users or items absent from
// either side are dropped from both; an empty intersection on either
// axis yields empty matrices, which downstream stages reject explicitly
// rather than scoring.
func Align(train, test *Matrix) (*Matrix, *Matrix) {
	commonUsers := make([]int, 0, len(train.users))
	for _, u := range train.users {
		if _, ok := test.userIndex[u]; ok {
			commonUsers = append(commonUsers, u)
		}
	}

	commonItems := make([]int, 0, len(train.items))
	for _, it := range train.items {
		if _, ok := test.itemIndex[it]; ok {
			commonItems = append(commonItems, it)
		}
	}

	return project(train, commonUsers, commonItems), project(test, commonUsers, commonItems)
}

// project copies the cells of m at the given users and items into a new
// matrix with those orderings.
func project(m *Matrix, users, items []int) *Matrix {
	out := newMatrix(append([]int(nil), users...), append([]int(nil), items...))
	for i, u := range users {
		srcRow := m.userIndex[u]
		for j, it := range items {
			srcCol := m.itemIndex[it]
			if v, ok := m.At(srcRow, srcCol); ok {
				out.set(i, j, v)
			}
		}
	}
	return out
}
