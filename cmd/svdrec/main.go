// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

// Package main is the SVDRec command line entry point.
//
// SVDRec loads a MovieLens-style ratings CSV, partitions it with a
// random holdout and a temporal cutoff, runs the truncated-SVD
// prediction pipeline over each partition, and reports RMSE,
// precision, recall and F1 alongside top-N recommendations for an
// example user.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (SVDREC_ prefix, e.g. SVDREC_PIPELINE_RANK)
//   - Config file (svdrec.yaml, or the path in SVDREC_CONFIG)
//   - Built-in defaults
//
// # Example Usage
//
//	svdrec -data ml-latest-small/ratings.csv
//	svdrec -data ratings.csv -user 42 -json > report.json
//
//	SVDREC_PIPELINE_RANK=20 svdrec -data ratings.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"

	"github.com/mlcollab/svdrec/internal/config"
	"github.com/mlcollab/svdrec/internal/dataset"
	"github.com/mlcollab/svdrec/internal/logging"
	"github.com/mlcollab/svdrec/internal/svd"
)

// splitResult pairs a split strategy's name with its pipeline outcome.
type splitResult struct {
	Split  string         `json:"split"`
	Result *svd.RunResult `json:"result"`

	// Recommendations for the example user under this split's model.
	Recommendations []svd.Recommendation `json:"recommendations"`
}

// report is the optional JSON output of one invocation.
type report struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Dataset     string        `json:"dataset"`
	Records     int           `json:"records"`
	ExampleUser int           `json:"example_user"`
	Splits      []splitResult `json:"splits"`
}

func main() {
	var (
		dataPath   = flag.String("data", "", "ratings CSV path (overrides dataset.path)")
		configPath = flag.String("config", "", "config file path (overrides the default search)")
		user       = flag.Int("user", 0, "example user to print recommendations for (overrides pipeline.example_user)")
		jsonOut    = flag.Bool("json", false, "emit a JSON report to stdout instead of tables")
	)
	flag.Parse()

	if *configPath != "" {
		os.Setenv(config.ConfigPathEnvVar, *configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("configuration failed")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	if *dataPath != "" {
		cfg.Dataset.Path = *dataPath
	}
	if *user != 0 {
		cfg.Pipeline.ExampleUser = *user
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *jsonOut); err != nil {
		logging.Fatal().Err(err).Msg("run failed")
	}
}

func run(ctx context.Context, cfg *config.Config, jsonOut bool) error {
	log := logging.With().Str("component", "main").Logger()

	source := dataset.NewDuckDBSource(cfg.Dataset.Path)
	records, err := source.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load ratings: %w", err)
	}
	log.Info().Str("path", cfg.Dataset.Path).Int("records", len(records)).Msg("ratings loaded")

	pipeline := svd.NewPipeline(svd.PipelineConfig{
		Rank:      cfg.Pipeline.Rank,
		Seed:      cfg.Pipeline.Seed,
		Threshold: cfg.Pipeline.Threshold,
		RatingMin: cfg.Pipeline.RatingMin,
		RatingMax: cfg.Pipeline.RatingMax,
	})

	randomTrain, randomTest := dataset.RandomSplit(records, cfg.Split.TestFraction, cfg.Pipeline.Seed)
	temporalTrain, temporalTest := dataset.TemporalSplit(records, cfg.Split.TemporalQuantile)

	splits := []struct {
		name        string
		train, test []dataset.Rating
	}{
		{"random", randomTrain, randomTest},
		{"temporal", temporalTrain, temporalTest},
	}

	rep := report{
		GeneratedAt: time.Now().UTC(),
		Dataset:     cfg.Dataset.Path,
		Records:     len(records),
		ExampleUser: cfg.Pipeline.ExampleUser,
	}

	for _, s := range splits {
		res, err := pipeline.Run(ctx, s.train, s.test, records)
		if err != nil {
			return fmt.Errorf("%s split: %w", s.name, err)
		}
		rep.Splits = append(rep.Splits, splitResult{
			Split:           s.name,
			Result:          res,
			Recommendations: res.Model.Recommend(cfg.Pipeline.ExampleUser, cfg.Pipeline.TopN),
		})
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	printTables(rep)
	return nil
}

// printTables renders the metric and recommendation tables to stdout.
func printTables(rep report) {
	metrics := tablewriter.NewWriter(os.Stdout)
	metrics.SetHeader([]string{"Split", "Users", "Items", "Rank", "RMSE", "Precision", "Recall", "F1"})
	for _, s := range rep.Splits {
		m := s.Result.Metrics
		metrics.Append([]string{
			s.Split,
			fmt.Sprintf("%d", s.Result.Users),
			fmt.Sprintf("%d", s.Result.Items),
			fmt.Sprintf("%d", s.Result.Rank),
			fmt.Sprintf("%.4f", m.RMSE),
			fmt.Sprintf("%.4f", m.Precision),
			fmt.Sprintf("%.4f", m.Recall),
			fmt.Sprintf("%.4f", m.F1),
		})
	}
	metrics.Render()

	for _, s := range rep.Splits {
		fmt.Printf("\nTop recommendations for user %d (%s split):\n", rep.ExampleUser, s.Split)
		if len(s.Recommendations) == 0 {
			fmt.Println("  (none: user unknown or no unrated items)")
			continue
		}
		recs := tablewriter.NewWriter(os.Stdout)
		recs.SetHeader([]string{"Movie ID", "Predicted Rating"})
		for _, r := range s.Recommendations {
			recs.Append([]string{
				fmt.Sprintf("%d", r.ItemID),
				fmt.Sprintf("%.2f", r.Score),
			})
		}
		recs.Render()
	}
}
