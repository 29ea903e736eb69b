// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

// Package config loads and validates SVDRec configuration.
//
// Configuration is layered via Koanf v2 (highest priority wins):
//
//  1. Environment variables (SVDREC_ prefix, e.g. SVDREC_PIPELINE_RANK)
//  2. Optional YAML config file (svdrec.yaml, /etc/svdrec/svdrec.yaml,
//     or the path in SVDREC_CONFIG)
//  3. Built-in defaults
package config

import (
	"fmt"
)

// Config is the root configuration tree.
type Config struct {
	// Dataset configures the rating record source.
	Dataset DatasetConfig `koanf:"dataset"`

	// Split configures the train/test split strategies.
	Split SplitConfig `koanf:"split"`

	// Pipeline configures the factorization pipeline.
	Pipeline PipelineConfig `koanf:"pipeline"`

	// Logging configures log level and format.
	Logging LoggingConfig `koanf:"logging"`
}

// DatasetConfig configures the rating record source.
type DatasetConfig struct {
	// Path is the ratings CSV file (userId,movieId,rating,timestamp with
	// a header row, MovieLens layout).
	Path string `koanf:"path"`
}

// SplitConfig configures the train/test split strategies.
type SplitConfig struct {
	// TestFraction is the held-out fraction for the random split.
	// Must be in (0, 1). Default: 0.2.
	TestFraction float64 `koanf:"test_fraction"`

	// TemporalQuantile is the timestamp quantile that separates train
	// from test in the temporal split. Must be in (0, 1). Default: 0.8.
	TemporalQuantile float64 `koanf:"temporal_quantile"`
}

// PipelineConfig configures the factorization pipeline.
type PipelineConfig struct {
	// Rank is the number of singular values kept by the truncated SVD.
	// Clamped internally when it exceeds the matrix dimensions. Default: 10.
	Rank int `koanf:"rank"`

	// Seed drives the random holdout split and any randomized numerics.
	// Default: 42.
	Seed int64 `koanf:"seed"`

	// Threshold is the binarization cutoff for the classification
	// metrics. Default: 3.5.
	Threshold float64 `koanf:"threshold"`

	// TopN is the number of recommendations returned per user. Default: 5.
	TopN int `koanf:"top_n"`

	// RatingMin and RatingMax pin the rating scale used for rescaling.
	// When both are zero the scale is derived from the loaded records.
	RatingMin float64 `koanf:"rating_min"`
	RatingMax float64 `koanf:"rating_max"`

	// ExampleUser is the user ID the CLI prints recommendations for.
	// Default: 2.
	ExampleUser int `koanf:"example_user"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and environment.
func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path: "ratings.csv",
		},
		Split: SplitConfig{
			TestFraction:     0.2,
			TemporalQuantile: 0.8,
		},
		Pipeline: PipelineConfig{
			Rank:        10,
			Seed:        42,
			Threshold:   3.5,
			TopN:        5,
			RatingMin:   0,
			RatingMax:   0,
			ExampleUser: 2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks the configuration for values no component can operate on.
func (c *Config) Validate() error {
	if c.Split.TestFraction <= 0 || c.Split.TestFraction >= 1 {
		return fmt.Errorf("split.test_fraction must be in (0, 1), got %g", c.Split.TestFraction)
	}
	if c.Split.TemporalQuantile <= 0 || c.Split.TemporalQuantile >= 1 {
		return fmt.Errorf("split.temporal_quantile must be in (0, 1), got %g", c.Split.TemporalQuantile)
	}
	if c.Pipeline.Rank < 1 {
		return fmt.Errorf("pipeline.rank must be >= 1, got %d", c.Pipeline.Rank)
	}
	if c.Pipeline.TopN < 1 {
		return fmt.Errorf("pipeline.top_n must be >= 1, got %d", c.Pipeline.TopN)
	}
	if c.Pipeline.RatingMin != 0 || c.Pipeline.RatingMax != 0 {
		if c.Pipeline.RatingMax <= c.Pipeline.RatingMin {
			return fmt.Errorf("pipeline.rating_max (%g) must exceed pipeline.rating_min (%g)",
				c.Pipeline.RatingMax, c.Pipeline.RatingMin)
		}
		if c.Pipeline.Threshold < c.Pipeline.RatingMin || c.Pipeline.Threshold > c.Pipeline.RatingMax {
			return fmt.Errorf("pipeline.threshold %g outside rating range [%g, %g]",
				c.Pipeline.Threshold, c.Pipeline.RatingMin, c.Pipeline.RatingMax)
		}
	}
	return nil
}
