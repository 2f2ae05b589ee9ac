package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const topLinkLimit = 5

// TopLink is the trimmed link projection returned inside Stats.
type TopLink struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Clicks int64  `json:"clicks"`
}

// Stats aggregates the whole collection. TotalClicks is 0, never absent, when
// the collection is empty.
type Stats struct {
	LinkCount     int64     `json:"linkCount"`
	CategoryCount int64     `json:"categoryCount"`
	TotalClicks   int64     `json:"totalClicks"`
	TopLinks      []TopLink `json:"topLinks"`
}

// StatsRepository runs the collection-wide aggregate queries.
type StatsRepository interface {
	Collect(ctx context.Context) (*Stats, error)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository returns a pgx-backed StatsRepository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) Collect(ctx context.Context) (*Stats, error) {
	stats := &Stats{TopLinks: []TopLink{}}

	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM links`).Scan(&stats.LinkCount); err != nil {
		return nil, fmt.Errorf("stats: count links: %w", err)
	}

	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM categories`).Scan(&stats.CategoryCount); err != nil {
		return nil, fmt.Errorf("stats: count categories: %w", err)
	}

	if err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(clicks), 0) FROM links`).Scan(&stats.TotalClicks); err != nil {
		return nil, fmt.Errorf("stats: sum clicks: %w", err)
	}

	// Ties on clicks break by id ascending so the ranking is reproducible.
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, clicks FROM links ORDER BY clicks DESC, id ASC LIMIT $1`,
		topLinkLimit)
	if err != nil {
		return nil, fmt.Errorf("stats: top links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var top TopLink
		if err := rows.Scan(&top.ID, &top.Title, &top.Clicks); err != nil {
			return nil, fmt.Errorf("stats: scan top link: %w", err)
		}
		stats.TopLinks = append(stats.TopLinks, top)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats: iterate top links: %w", err)
	}

	return stats, nil
}
