// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

package svd

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/mlcollab/svdrec/internal/dataset"
)

// holdoutFixture is a 3-user x 3-item dataset with one cell per user
// held out into the test split.
func holdoutFixture() (train, test, all []dataset.Rating) {
	train = []dataset.Rating{
		{UserID: 1, ItemID: 10, Rating: 5},
		{UserID: 1, ItemID: 20, Rating: 4},
		{UserID: 2, ItemID: 10, Rating: 4},
		{UserID: 2, ItemID: 30, Rating: 1},
		{UserID: 3, ItemID: 20, Rating: 2},
		{UserID: 3, ItemID: 30, Rating: 5},
	}
	test = []dataset.Rating{
		{UserID: 1, ItemID: 30, Rating: 4},
		{UserID: 2, ItemID: 20, Rating: 3},
		{UserID: 3, ItemID: 10, Rating: 2},
	}
	all = append(append([]dataset.Rating{}, train...), test...)
	return train, test, all
}

func TestPipelineEndToEnd(t *testing.T) {
	train, test, all := holdoutFixture()
	p := NewPipeline(PipelineConfig{Rank: 2, Seed: 42, Threshold: 3.5})

	res, err := p.Run(context.Background(), train, test, all)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.Users != 3 || res.Items != 3 {
		t.Errorf("aligned dims %dx%d, want 3x3", res.Users, res.Items)
	}
	if res.Rank != 2 {
		t.Errorf("effective rank = %d, want 2", res.Rank)
	}
	if res.RatingMin != 1 || res.RatingMax != 5 {
		t.Errorf("rating range [%g, %g], want [1, 5] from the full record set", res.RatingMin, res.RatingMax)
	}
	if res.RunID == "" {
		t.Error("missing run ID")
	}

	m := res.Metrics
	if math.IsNaN(m.RMSE) || m.RMSE < 0 {
		t.Errorf("RMSE = %v, want finite >= 0", m.RMSE)
	}
	for name, v := range map[string]float64{"precision": m.Precision, "recall": m.Recall, "f1": m.F1} {
		if v < 0 || v > 1 {
			t.Errorf("%s = %v, want within [0, 1]", name, v)
		}
	}
	if m.Observed != 3 {
		t.Errorf("Observed = %d, want 3 held-out cells", m.Observed)
	}

	// Each user's single unrated item is recommended with a score on
	// the rating scale.
	wantItem := map[int]int{1: 30, 2: 20, 3: 10}
	for user, item := range wantItem {
		recs := res.Model.Recommend(user, 5)
		if len(recs) != 1 {
			t.Fatalf("user %d: got %d recommendations, want 1", user, len(recs))
		}
		if recs[0].ItemID != item {
			t.Errorf("user %d: recommended item %d, want %d", user, recs[0].ItemID, item)
		}
		if recs[0].Score < res.RatingMin || recs[0].Score > res.RatingMax {
			t.Errorf("user %d: score %v outside [%g, %g]", user, recs[0].Score, res.RatingMin, res.RatingMax)
		}
	}
}

func TestPipelineDeterministic(t *testing.T) {
	train, test, all := holdoutFixture()
	p := NewPipeline(PipelineConfig{Rank: 2, Seed: 42})

	r1, err := p.Run(context.Background(), train, test, all)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	r2, err := p.Run(context.Background(), train, test, all)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if r1.Metrics != r2.Metrics {
		t.Errorf("identical inputs produced different metrics: %+v vs %+v", r1.Metrics, r2.Metrics)
	}
	if r1.RunID == r2.RunID {
		t.Error("distinct runs share a run ID")
	}
}

func TestPipelineEmptyRecords(t *testing.T) {
	p := NewPipeline(DefaultPipelineConfig())

	_, err := p.Run(context.Background(), nil, nil, nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Run() error = %v, want ErrInsufficientData", err)
	}
}

func TestPipelineDisjointSplits(t *testing.T) {
	train := []dataset.Rating{{UserID: 1, ItemID: 10, Rating: 3}}
	test := []dataset.Rating{{UserID: 2, ItemID: 20, Rating: 4}}
	all := append(append([]dataset.Rating{}, train...), test...)

	p := NewPipeline(DefaultPipelineConfig())

	// An empty alignment intersection must surface as a factorization
	// failure, not as default-zero metrics.
	_, err := p.Run(context.Background(), train, test, all)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Run() error = %v, want ErrInvalidInput", err)
	}
}

func TestPipelineContextCancellation(t *testing.T) {
	train, test, all := holdoutFixture()
	p := NewPipeline(DefaultPipelineConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, train, test, all)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestNewPipelineAppliesDefaults(t *testing.T) {
	p := NewPipeline(PipelineConfig{})

	def := DefaultPipelineConfig()
	if p.cfg.Rank != def.Rank {
		t.Errorf("rank = %d, want default %d", p.cfg.Rank, def.Rank)
	}
	if p.cfg.Threshold != def.Threshold {
		t.Errorf("threshold = %g, want default %g", p.cfg.Threshold, def.Threshold)
	}
	if p.cfg.Seed != def.Seed {
		t.Errorf("seed = %d, want default %d", p.cfg.Seed, def.Seed)
	}
}

func TestPipelinePinnedRatingRange(t *testing.T) {
	train, test, all := holdoutFixture()
	p := NewPipeline(PipelineConfig{Rank: 2, RatingMin: 0.5, RatingMax: 5.0})

	res, err := p.Run(context.Background(), train, test, all)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.RatingMin != 0.5 || res.RatingMax != 5.0 {
		t.Errorf("rating range [%g, %g], want pinned [0.5, 5.0]", res.RatingMin, res.RatingMax)
	}
}
