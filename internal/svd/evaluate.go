// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

package svd

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Metrics holds the evaluation results for one pipeline run.
type Metrics struct {
	// RMSE is the root mean squared error over observed test positions.
	RMSE float64 `json:"rmse"`

	// Precision, Recall and F1 are classification metrics after
	// binarizing true and predicted ratings at the threshold, averaged
	// over the two classes weighted by true-class support.
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`

	// Observed is the number of test positions that were scored.
	Observed int `json:"observed"`
}

// Evaluate compares predicted ratings to the observed cells of the test
// matrix. Unobserved cells carry no ground truth and are excluded from
// every metric; a test matrix with no observed cells is rejected with
// ErrInsufficientData rather than scored as zero error.
//
// The test matrix and prediction must have identical shape (guaranteed
// by Align upstream); a mismatch is rejected with ErrInvalidInput.
func Evaluate(test *Matrix, pred *mat.Dense, threshold float64) (Metrics, error) {
	if test == nil || pred == nil {
		return Metrics{}, fmt.Errorf("evaluate: %w: nil input", ErrInvalidInput)
	}
	rows, cols := pred.Dims()
	if test.Rows() != rows || test.Cols() != cols {
		return Metrics{}, fmt.Errorf("evaluate: %w: test is %dx%d, prediction is %dx%d",
			ErrInvalidInput, test.Rows(), test.Cols(), rows, cols)
	}

	var trueVals, predVals []float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, ok := test.At(i, j); ok {
				trueVals = append(trueVals, v)
				predVals = append(predVals, pred.At(i, j))
			}
		}
	}

	if len(trueVals) == 0 {
		return Metrics{}, fmt.Errorf("evaluate: %w: no observed test ratings overlap the prediction", ErrInsufficientData)
	}

	sq := make([]float64, len(trueVals))
	for i := range trueVals {
		d := trueVals[i] - predVals[i]
		sq[i] = d * d
	}
	rmse := math.Sqrt(stat.Mean(sq, nil))
	if math.IsNaN(rmse) || math.IsInf(rmse, 0) {
		return Metrics{}, fmt.Errorf("evaluate: %w: non-finite RMSE", ErrNumericDegeneracy)
	}

	precision, recall, f1 := weightedBinaryMetrics(trueVals, predVals, threshold)

	return Metrics{
		RMSE:      rmse,
		Precision: precision,
		Recall:    recall,
		F1:        f1,
		Observed:  len(trueVals),
	}, nil
}

// weightedBinaryMetrics binarizes both value sets at the threshold
// (value >= threshold is the positive class) and computes precision,
// recall and F1 per class, averaged weighted by true-class support. A
// metric with a zero denominator evaluates to 0.
func weightedBinaryMetrics(trueVals, predVals []float64, threshold float64) (precision, recall, f1 float64) {
	n := len(trueVals)

	for _, positive := range []bool{false, true} {
		var tp, fp, fn, support int
		for i := range trueVals {
			trueLabel := (trueVals[i] >= threshold) == positive
			predLabel := (predVals[i] >= threshold) == positive
			if trueLabel {
				support++
			}
			switch {
			case trueLabel && predLabel:
				tp++
			case !trueLabel && predLabel:
				fp++
			case trueLabel && !predLabel:
				fn++
			}
		}

		p := safeRatio(float64(tp), float64(tp+fp))
		r := safeRatio(float64(tp), float64(tp+fn))
		f := safeRatio(2*p*r, p+r)

		weight := float64(support) / float64(n)
		precision += weight * p
		recall += weight * r
		f1 += weight * f
	}
	return precision, recall, f1
}

// safeRatio returns num/den, or 0 when the denominator is 0.
func safeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
