package repository

import (
	"context"
	"encoding/json"

	"minesweeper_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GameHistoryRepository struct {
	db *pgxpool.Pool
}

func NewGameHistoryRepository(db *pgxpool.Pool) *GameHistoryRepository {
	return &GameHistoryRepository{db: db}
}

// Create records a finished game
func (r *GameHistoryRepository) Create(ctx context.Context, gh *domain.GameHistory) error {
	detailsJSON, err := json.Marshal(gh.Details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	return r.db.QueryRow(ctx,
		`INSERT INTO game_history
			(user_id, result, board_rows, board_cols, mines, elapsed_seconds, details)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		gh.UserID,
		gh.Result,
		gh.Rows,
		gh.Cols,
		gh.Mines,
		gh.ElapsedSeconds,
		detailsJSON,
	).Scan(&gh.ID, &gh.CreatedAt)
}

// GetByUser returns the user's latest finished games
func (r *GameHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*domain.GameHistory, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, result, board_rows, board_cols, mines, elapsed_seconds, details, created_at
		 FROM game_history
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanRows(rows)
}

// GetUserStats aggregates wins, losses and the fastest win
func (r *GameHistoryRepository) GetUserStats(ctx context.Context, userID int64) (*domain.UserStats, error) {
	stats := &domain.UserStats{UserID: userID}

	err := r.db.QueryRow(ctx,
		`SELECT
			COUNT(*) as total_games,
			COUNT(*) FILTER (WHERE result = 'win') as wins,
			COUNT(*) FILTER (WHERE result = 'lose') as losses,
			MIN(elapsed_seconds) FILTER (WHERE result = 'win') as best
		 FROM game_history
		 WHERE user_id = $1`,
		userID,
	).Scan(&stats.TotalGames, &stats.Wins, &stats.Losses, &stats.BestWinTime)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *GameHistoryRepository) scanRows(rows pgx.Rows) ([]*domain.GameHistory, error) {
	var result []*domain.GameHistory

	for rows.Next() {
		var (
			gh          domain.GameHistory
			detailsJSON []byte
		)

		if err := rows.Scan(
			&gh.ID, &gh.UserID, &gh.Result, &gh.Rows, &gh.Cols, &gh.Mines,
			&gh.ElapsedSeconds, &detailsJSON, &gh.CreatedAt,
		); err != nil {
			return nil, err
		}

		if len(detailsJSON) > 0 {
			_ = json.Unmarshal(detailsJSON, &gh.Details)
		}

		result = append(result, &gh)
	}

	return result, rows.Err()
}
