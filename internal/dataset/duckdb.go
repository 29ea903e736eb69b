// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // database/sql driver
)

// DuckDBSource loads rating records from a MovieLens-style CSV file
// (userId,movieId,rating,timestamp with a header row) through an
// in-memory DuckDB instance. DuckDB streams the scan internally, so
// arbitrarily large files never require a second in-memory copy beyond
// the record slice itself.
type DuckDBSource struct {
	// Path is the CSV file to read.
	Path string
}

// NewDuckDBSource creates a source reading the given CSV file.
func NewDuckDBSource(path string) *DuckDBSource {
	return &DuckDBSource{Path: path}
}

// LoadAll reads every record from the CSV file in file order.
func (s *DuckDBSource) LoadAll(ctx context.Context) ([]Rating, error) {
	if s.Path == "" {
		return nil, fmt.Errorf("duckdb source: empty path")
	}

	conn, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer conn.Close()

	// read_csv takes the path as part of the statement text; escape
	// single quotes rather than relying on parameter binding inside a
	// table function.
	query := fmt.Sprintf(`
		SELECT userId, movieId, rating, "timestamp"
		FROM read_csv('%s',
			header = true,
			columns = {'userId': 'BIGINT', 'movieId': 'BIGINT', 'rating': 'DOUBLE', 'timestamp': 'BIGINT'})`,
		strings.ReplaceAll(s.Path, "'", "''"))

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read_csv %s: %w", s.Path, err)
	}
	defer rows.Close()

	var records []Rating
	for rows.Next() {
		var (
			userID, itemID, ts int64
			rating             float64
		)
		if err := rows.Scan(&userID, &itemID, &rating, &ts); err != nil {
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		records = append(records, Rating{
			UserID:    int(userID),
			ItemID:    int(itemID),
			Rating:    rating,
			Timestamp: ts,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}

	return records, nil
}

// Ensure interface compliance.
var _ Source = (*DuckDBSource)(nil)
