package domain

import "time"

// SavedGame is a persisted game blob. GameData holds the JSON produced by
// game.Marshal and is opaque to the storage layer.
type SavedGame struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	DateSaved time.Time `db:"date_saved" json:"dateSaved"`
	GameData  string    `db:"game_data" json:"gameData"`
}

// SavedGameSummary is a SavedGame without its blob, for listings.
type SavedGameSummary struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	DateSaved time.Time `db:"date_saved" json:"dateSaved"`
}

// GameResult - outcome of a finished game
type GameResult string

const (
	GameResultWin  GameResult = "win"
	GameResultLose GameResult = "lose"
)

// GameHistory - one finished game
type GameHistory struct {
	ID             int64                  `db:"id" json:"id"`
	UserID         int64                  `db:"user_id" json:"user_id"`
	Result         GameResult             `db:"result" json:"result"`
	Rows           int                    `db:"board_rows" json:"rows"`
	Cols           int                    `db:"board_cols" json:"cols"`
	Mines          int                    `db:"mines" json:"mines"`
	ElapsedSeconds int                    `db:"elapsed_seconds" json:"elapsed_seconds"`
	Details        map[string]interface{} `db:"details" json:"details,omitempty"`
	CreatedAt      time.Time              `db:"created_at" json:"created_at"`
}

// UserStats - aggregate over a user's finished games
type UserStats struct {
	UserID      int64 `json:"user_id"`
	TotalGames  int   `json:"total_games"`
	Wins        int   `json:"wins"`
	Losses      int   `json:"losses"`
	BestWinTime *int  `json:"best_win_seconds,omitempty"`
}
