// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

package svd

import (
	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense user-item rating matrix with explicit per-cell
// observed-ness. Rows are users and columns are items, both ordered by
// ascending ID so row i and column j refer to the same user and item
// for the lifetime of the matrix.
type Matrix struct {
	users []int
	items []int

	userIndex map[int]int
	itemIndex map[int]int

	// values is row-major, len(users)*len(items). A cell's value is
	// meaningful only where observed is true.
	values   []float64
	observed []bool
}

// newMatrix allocates a matrix for the given ordered user and item IDs.
func newMatrix(users, items []int) *Matrix {
	m := &Matrix{
		users:     users,
		items:     items,
		userIndex: make(map[int]int, len(users)),
		itemIndex: make(map[int]int, len(items)),
		values:    make([]float64, len(users)*len(items)),
		observed:  make([]bool, len(users)*len(items)),
	}
	for i, u := range users {
		m.userIndex[u] = i
	}
	for j, it := range items {
		m.itemIndex[it] = j
	}
	return m
}

// Rows returns the number of users.
func (m *Matrix) Rows() int { return len(m.users) }

// Cols returns the number of items.
func (m *Matrix) Cols() int { return len(m.items) }

// IsEmpty reports whether the matrix has no rows or no columns.
func (m *Matrix) IsEmpty() bool { return len(m.users) == 0 || len(m.items) == 0 }

// Users returns a copy of the ordered user IDs.
func (m *Matrix) Users() []int {
	out := make([]int, len(m.users))
	copy(out, m.users)
	return out
}

// Items returns a copy of the ordered item IDs.
func (m *Matrix) Items() []int {
	out := make([]int, len(m.items))
	copy(out, m.items)
	return out
}

// UserIndex returns the row index for a user ID.
func (m *Matrix) UserIndex(userID int) (int, bool) {
	i, ok := m.userIndex[userID]
	return i, ok
}

// ItemIndex returns the column index for an item ID.
func (m *Matrix) ItemIndex(itemID int) (int, bool) {
	j, ok := m.itemIndex[itemID]
	return j, ok
}

// At returns the rating at row i, column j and whether it is observed.
// The value is 0 for unobserved cells.
func (m *Matrix) At(i, j int) (float64, bool) {
	idx := i*len(m.items) + j
	if !m.observed[idx] {
		return 0, false
	}
	return m.values[idx], true
}

// set stores an observed rating at row i, column j.
func (m *Matrix) set(i, j int, v float64) {
	idx := i*len(m.items) + j
	m.values[idx] = v
	m.observed[idx] = true
}

// Dense materializes the matrix for the linear algebra routines, with
// unobserved cells encoded as 0. This is the single place where the
// sentinel convention enters the pipeline. Returns nil for an empty
// matrix, which mat.NewDense cannot represent.
func (m *Matrix) Dense() *mat.Dense {
	if m.IsEmpty() {
		return nil
	}
	data := make([]float64, len(m.values))
	copy(data, m.values)
	return mat.NewDense(len(m.users), len(m.items), data)
}

// Equal reports whether two matrices have identical user and item
// orderings, observed-ness, and cell values.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.Rows() != other.Rows() || m.Cols() != other.Cols() {
		return false
	}
	for i, u := range m.users {
		if other.users[i] != u {
			return false
		}
	}
	for j, it := range m.items {
		if other.items[j] != it {
			return false
		}
	}
	for idx := range m.values {
		if m.observed[idx] != other.observed[idx] || m.values[idx] != other.values[idx] {
			return false
		}
	}
	return true
}
