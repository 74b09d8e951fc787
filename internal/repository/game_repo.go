package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"minesweeper_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SavedGameRepository stores game blobs in the games table. It never looks
// inside GameData.
type SavedGameRepository struct {
	db *pgxpool.Pool
}

func NewSavedGameRepository(db *pgxpool.Pool) *SavedGameRepository {
	return &SavedGameRepository{db: db}
}

// Save inserts a new row and returns its id.
func (r *SavedGameRepository) Save(ctx context.Context, userID int64, gameData []byte, dateSaved time.Time) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO games (user_id, date_saved, game_data)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		userID,
		dateSaved,
		string(gameData),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save game: %w", err)
	}
	return id, nil
}

// List returns every saved game, newest first, without the blobs.
func (r *SavedGameRepository) List(ctx context.Context) ([]domain.SavedGameSummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, date_saved
		 FROM games
		 ORDER BY date_saved DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	res := []domain.SavedGameSummary{}
	for rows.Next() {
		var s domain.SavedGameSummary
		if err := rows.Scan(&s.ID, &s.UserID, &s.DateSaved); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		res = append(res, s)
	}

	return res, rows.Err()
}

// Get returns ErrNotFound when no row has the id.
func (r *SavedGameRepository) Get(ctx context.Context, id int64) (*domain.SavedGame, error) {
	var g domain.SavedGame
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, date_saved, game_data
		 FROM games
		 WHERE id = $1`,
		id,
	).Scan(&g.ID, &g.UserID, &g.DateSaved, &g.GameData)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get game %d: %w", id, err)
	}
	return &g, nil
}

// Delete reports whether a row was removed.
func (r *SavedGameRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete game %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
