// Package catalog provides PostgreSQL access to the videos_new table.
package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onlyyou-coaching/catalog-sync/internal/types"
)

// muscleGroupVideoType is the videoType discriminator for exercise videos;
// recipe and program videos share the table but are never reconciled.
const muscleGroupVideoType = "MUSCLE_GROUPS"

// updatableColumns whitelists the videos_new columns a MatchDecision may
// touch, keyed by FieldDiffs field name. camelCase columns need quoting.
var updatableColumns = map[string]string{
	types.FieldStartingPosition: `"startingPosition"`,
	types.FieldMovement:         "movement",
	types.FieldIntensity:        "intensity",
	types.FieldSeries:           "series",
	types.FieldConstraints:      "constraints",
	types.FieldTheme:            "theme",
	types.FieldTargetedMuscles:  "targeted_muscles",
	types.FieldDifficulty:       "difficulty",
	types.FieldRegion:           "region",
}

// Store wraps a PostgreSQL connection pool over the video catalog.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the catalog database and
// verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// ListVideos retrieves the exercise videos of one region, or of every
// region when region is empty. NULL text columns surface as empty strings.
func (s *Store) ListVideos(ctx context.Context, region string) ([]types.VideoRecord, error) {
	query := `SELECT id, title, COALESCE("videoUrl", ''), COALESCE(region, ''),
		COALESCE(difficulty, ''), COALESCE(intensity, ''),
		COALESCE(targeted_muscles, '{}'),
		COALESCE("startingPosition", ''), COALESCE(movement, ''),
		COALESCE(series, ''), COALESCE(constraints, ''), COALESCE(theme, ''),
		COALESCE("isPublished", false), "updatedAt"
		FROM videos_new WHERE "videoType" = $1`
	args := []any{muscleGroupVideoType}
	if region != "" {
		query += ` AND region = $2`
		args = append(args, region)
	}
	query += ` ORDER BY title`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var videos []types.VideoRecord
	for rows.Next() {
		var v types.VideoRecord
		if err := rows.Scan(&v.ID, &v.Title, &v.SourceURL, &v.Region,
			&v.Difficulty, &v.Intensity, &v.TargetedMuscles,
			&v.StartingPosition, &v.Movement,
			&v.Series, &v.Constraints, &v.Theme,
			&v.IsPublished, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read videos: %w", err)
	}
	return videos, nil
}

// ApplyDecision writes a decision's field diffs to the video row in a
// single multi-column UPDATE and refreshes the update timestamp. Empty
// string proposals clear the column to NULL. Decisions without diffs are
// a no-op.
func (s *Store) ApplyDecision(ctx context.Context, d types.MatchDecision) error {
	if !d.HasDiffs() {
		return nil
	}

	query := `UPDATE videos_new SET "updatedAt" = NOW()`
	args := []any{}
	argNum := 1

	for field, value := range d.FieldDiffs {
		column, ok := updatableColumns[field]
		if !ok {
			return fmt.Errorf("decision for video %s proposes unknown field %q", d.VideoID, field)
		}
		query += fmt.Sprintf(", %s = $%d", column, argNum)
		args = append(args, columnValue(value))
		argNum++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argNum)
	args = append(args, d.VideoID)

	result, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to apply decision for video %s: %w", d.VideoID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("video not found: %s", d.VideoID)
	}
	return nil
}

// columnValue maps a diff value to its SQL form: empty strings become
// NULL, string slices pass through as text[].
func columnValue(value any) any {
	if s, ok := value.(string); ok && s == "" {
		return nil
	}
	return value
}

// UpdateTitle replaces a video's display title and refreshes its update
// timestamp.
func (s *Store) UpdateTitle(ctx context.Context, id, title string) error {
	result, err := s.pool.Exec(ctx,
		`UPDATE videos_new SET title = $1, "updatedAt" = NOW() WHERE id = $2`,
		title, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update title for video %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("video not found: %s", id)
	}
	return nil
}

// InsertVideo creates a catalog row for a newly discovered asset. The row
// starts unpublished with an intermediate difficulty until reconciliation
// fills in the authored metadata.
func (s *Store) InsertVideo(ctx context.Context, v types.VideoRecord) error {
	category := v.Region
	if category == "" {
		category = "groupes-musculaires"
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO videos_new
			(id, title, "videoUrl", duration, difficulty, category, region,
			 "isPublished", "videoType", "createdAt", "updatedAt")
		 VALUES ($1, $2, $3, 0, $4, $5, $6, false, $7, NOW(), NOW())`,
		v.ID, v.Title, v.SourceURL, string(types.DifficultyIntermediate),
		category, nullable(v.Region), muscleGroupVideoType,
	)
	if err != nil {
		return fmt.Errorf("failed to insert video %s: %w", v.ID, err)
	}
	return nil
}

// SourceURLExists reports whether a catalog row already references the
// given video URL. Used by S3 ingestion to skip known objects.
func (s *Store) SourceURLExists(ctx context.Context, sourceURL string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM videos_new WHERE "videoUrl" = $1)`,
		sourceURL,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check video url: %w", err)
	}
	return exists, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
