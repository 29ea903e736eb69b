// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

package svd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/mlcollab/svdrec/internal/dataset"
	"github.com/mlcollab/svdrec/internal/logging"
)

// Pipeline runs the full factorization pipeline: build both matrices,
// align them, factorize the training side, reconstruct and rescale
// predictions, and evaluate against the test side.
type Pipeline struct {
	cfg PipelineConfig
	log zerolog.Logger
}

// NewPipeline creates a pipeline, applying defaults for zero-valued
// parameters.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	def := DefaultPipelineConfig()
	if cfg.Rank <= 0 {
		cfg.Rank = def.Rank
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}

	return &Pipeline{
		cfg: cfg,
		log: logging.With().Str("component", "pipeline").Logger(),
	}
}

// Model holds the prediction produced by one run, for generating
// recommendations after evaluation. It is ephemeral: recomputed every
// run and never persisted.
type Model struct {
	train *Matrix
	pred  *mat.Dense
}

// RunResult is the outcome of one pipeline run.
type RunResult struct {
	// RunID uniquely identifies the run in logs and reports.
	RunID string `json:"run_id"`

	// Metrics are the evaluation results.
	Metrics Metrics `json:"metrics"`

	// Users and Items are the aligned matrix dimensions.
	Users int `json:"users"`
	Items int `json:"items"`

	// Rank is the effective rank after clamping.
	Rank int `json:"rank"`

	// RatingMin and RatingMax are the rating scale used for rescaling.
	RatingMin float64 `json:"rating_min"`
	RatingMax float64 `json:"rating_max"`

	// Elapsed is the total run duration.
	Elapsed time.Duration `json:"elapsed"`

	// Model generates recommendations from this run's prediction.
	Model *Model `json:"-"`
}

// Run executes the pipeline over one (train, test) partition. The full,
// unpartitioned record set supplies the rating scale for rescaling
// unless the config pins one; deriving it from the training subset
// would shrink the scale to an artifact of the split.
//
// Errors carry the failing stage and one of the sentinel kinds; a
// failed run never reports partial metrics.
func (p *Pipeline) Run(ctx context.Context, train, test, all []dataset.Rating) (*RunResult, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := p.log.With().Str("run_id", runID).Logger()

	log.Info().
		Int("train_records", len(train)).
		Int("test_records", len(test)).
		Int("rank", p.cfg.Rank).
		Msg("pipeline run starting")

	ratingMin, ratingMax, err := p.ratingRange(all)
	if err != nil {
		return nil, fmt.Errorf("rating range: %w", err)
	}

	trainM, testM := Align(Build(train), Build(test))
	log.Debug().
		Int("users", trainM.Rows()).
		Int("items", trainM.Cols()).
		Msg("matrices aligned")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := Factorize(trainM, FactorizeOptions{Rank: p.cfg.Rank, Seed: p.cfg.Seed})
	if err != nil {
		return nil, fmt.Errorf("factorize stage: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pred, err := Reconstruct(f, ratingMin, ratingMax)
	if err != nil {
		return nil, fmt.Errorf("reconstruct stage: %w", err)
	}

	metrics, err := Evaluate(testM, pred, p.cfg.Threshold)
	if err != nil {
		return nil, fmt.Errorf("evaluate stage: %w", err)
	}

	elapsed := time.Since(start)
	log.Info().
		Float64("rmse", metrics.RMSE).
		Float64("f1", metrics.F1).
		Int("observed", metrics.Observed).
		Dur("elapsed", elapsed).
		Msg("pipeline run complete")

	return &RunResult{
		RunID:     runID,
		Metrics:   metrics,
		Users:     trainM.Rows(),
		Items:     trainM.Cols(),
		Rank:      f.Rank(),
		RatingMin: ratingMin,
		RatingMax: ratingMax,
		Elapsed:   elapsed,
		Model:     &Model{train: trainM, pred: pred},
	}, nil
}

// ratingRange resolves the rating scale: the configured range when
// pinned, otherwise the min and max rating over the full record set.
func (p *Pipeline) ratingRange(all []dataset.Rating) (float64, float64, error) {
	if p.cfg.RatingMin != 0 || p.cfg.RatingMax != 0 {
		if p.cfg.RatingMax <= p.cfg.RatingMin {
			return 0, 0, fmt.Errorf("%w: configured range [%g, %g]",
				ErrInvalidInput, p.cfg.RatingMin, p.cfg.RatingMax)
		}
		return p.cfg.RatingMin, p.cfg.RatingMax, nil
	}

	if len(all) == 0 {
		return 0, 0, fmt.Errorf("%w: no records to derive a rating scale from", ErrInsufficientData)
	}

	lo, hi := all[0].Rating, all[0].Rating
	for _, r := range all[1:] {
		if r.Rating < lo {
			lo = r.Rating
		}
		if r.Rating > hi {
			hi = r.Rating
		}
	}
	return lo, hi, nil
}

// Recommend returns the top-N unrated items for a user from this run's
// prediction.
func (m *Model) Recommend(userID, topN int) []Recommendation {
	return Recommend(userID, m.pred, m.train, topN)
}

// Users returns the user IDs covered by the model, ascending.
func (m *Model) Users() []int {
	return m.train.Users()
}
