// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

package dataset

import (
	"math"
	"math/rand"
	"sort"
)

// RandomSplit partitions records into train and test sets by seeded
// shuffle. testFraction of the records (rounded to the nearest whole
// record) go to test. Identical (records, testFraction, seed) always
// produce identical partitions. The input slice is not modified.
func RandomSplit(records []Rating, testFraction float64, seed int64) (train, test []Rating) {
	n := len(records)
	if n == 0 {
		return nil, nil
	}

	nTest := int(math.Round(float64(n) * testFraction))
	if nTest < 0 {
		nTest = 0
	}
	if nTest > n {
		nTest = n
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)

	test = make([]Rating, 0, nTest)
	train = make([]Rating, 0, n-nTest)
	for i, idx := range perm {
		if i < nTest {
			test = append(test, records[idx])
		} else {
			train = append(train, records[idx])
		}
	}
	return train, test
}

// TemporalSplit partitions records at a timestamp cutoff. The cutoff is
// the timestamp at the given quantile of the sorted timestamps
// (nearest-rank, lower); records at or before the cutoff train, later
// records test. Ties at the cutoff all land in train, so the test set
// can be empty when timestamps are heavily duplicated. The input slice
// is not modified.
func TemporalSplit(records []Rating, quantile float64) (train, test []Rating) {
	n := len(records)
	if n == 0 {
		return nil, nil
	}

	sorted := make([]Rating, n)
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	cutIdx := int(quantile * float64(n-1))
	if cutIdx < 0 {
		cutIdx = 0
	}
	if cutIdx > n-1 {
		cutIdx = n - 1
	}
	cutoff := sorted[cutIdx].Timestamp

	for _, r := range sorted {
		if r.Timestamp <= cutoff {
			train = append(train, r)
		} else {
			test = append(test, r)
		}
	}
	return train, test
}
