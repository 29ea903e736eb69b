// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaultConfig().Validate() = %v, want nil", err)
	}
	if cfg.Pipeline.Rank != 10 {
		t.Errorf("default rank = %d, want 10", cfg.Pipeline.Rank)
	}
	if cfg.Pipeline.Threshold != 3.5 {
		t.Errorf("default threshold = %g, want 3.5", cfg.Pipeline.Threshold)
	}
	if cfg.Pipeline.TopN != 5 {
		t.Errorf("default top_n = %d, want 5", cfg.Pipeline.TopN)
	}
	if cfg.Split.TestFraction != 0.2 {
		t.Errorf("default test_fraction = %g, want 0.2", cfg.Split.TestFraction)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantSub string
	}{
		{
			name:    "zero rank",
			mutate:  func(c *Config) { c.Pipeline.Rank = 0 },
			wantSub: "rank",
		},
		{
			name:    "negative top_n",
			mutate:  func(c *Config) { c.Pipeline.TopN = -1 },
			wantSub: "top_n",
		},
		{
			name:    "test fraction at 1",
			mutate:  func(c *Config) { c.Split.TestFraction = 1.0 },
			wantSub: "test_fraction",
		},
		{
			name:    "temporal quantile at 0",
			mutate:  func(c *Config) { c.Split.TemporalQuantile = 0 },
			wantSub: "temporal_quantile",
		},
		{
			name: "inverted rating range",
			mutate: func(c *Config) {
				c.Pipeline.RatingMin = 5.0
				c.Pipeline.RatingMax = 0.5
			},
			wantSub: "rating_max",
		},
		{
			name: "threshold outside pinned range",
			mutate: func(c *Config) {
				c.Pipeline.RatingMin = 0.5
				c.Pipeline.RatingMax = 3.0
			},
			wantSub: "threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("Validate() error %q missing %q", err, tt.wantSub)
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"SVDREC_PIPELINE_RANK", "pipeline.rank"},
		{"SVDREC_SPLIT_TEST_FRACTION", "split.test_fraction"},
		{"SVDREC_PIPELINE_TOP_N", "pipeline.top_n"},
		{"SVDREC_LOGGING_LEVEL", "logging.level"},
		{"SVDREC_CONFIG", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransform(tt.input); got != tt.want {
				t.Errorf("envTransform(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadLayersFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "svdrec.yaml")
	yaml := "pipeline:\n  rank: 20\n  threshold: 4.0\nsplit:\n  test_fraction: 0.25\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("SVDREC_PIPELINE_RANK", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Env beats file, file beats defaults.
	if cfg.Pipeline.Rank != 15 {
		t.Errorf("rank = %d, want env override 15", cfg.Pipeline.Rank)
	}
	if cfg.Pipeline.Threshold != 4.0 {
		t.Errorf("threshold = %g, want file value 4.0", cfg.Pipeline.Threshold)
	}
	if cfg.Split.TestFraction != 0.25 {
		t.Errorf("test_fraction = %g, want file value 0.25", cfg.Split.TestFraction)
	}
	if cfg.Pipeline.TopN != 5 {
		t.Errorf("top_n = %d, want default 5", cfg.Pipeline.TopN)
	}
}
