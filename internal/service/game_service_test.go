package service

import (
	"context"
	"testing"
	"time"

	"minesweeper_webapp/internal/domain"
	"minesweeper_webapp/internal/game"
	"minesweeper_webapp/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameClampsAndStores(t *testing.T) {
	d := newTestGameService(t)
	ctx := context.Background()

	st, err := d.svc.NewGame(ctx, 1, 100, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, game.MaxRows, st.Rows)
	assert.Equal(t, game.MinCols, st.Cols)
	assert.Equal(t, game.MinMines, st.Mines)

	live, err := d.svc.State(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, st, live)

	sum := Summarize(live)
	assert.Equal(t, game.StatusInProgress, sum.StatusMessage)
	assert.Equal(t, game.MinMines, sum.FlagsLeft)
}

func TestRevealWithoutGame(t *testing.T) {
	d := newTestGameService(t)

	_, err := d.svc.Reveal(context.Background(), 9, 0, 0)
	assert.ErrorIs(t, err, session.ErrNoGame)

	_, err = d.svc.ToggleFlag(context.Background(), 9, 0, 0)
	assert.ErrorIs(t, err, session.ErrNoGame)
}

func TestMovesOutOfRangeAreNoOps(t *testing.T) {
	d := newTestGameService(t)
	ctx := context.Background()

	_, err := d.svc.NewGame(ctx, 1, 9, 9, 10)
	require.NoError(t, err)
	before, err := d.svc.State(ctx, 1)
	require.NoError(t, err)

	res, err := d.svc.Reveal(ctx, 1, 9, 0)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Empty(t, res.Updates)
	assert.Equal(t, game.StatusInProgress, res.StatusMessage)
	assert.Equal(t, 10, res.FlagsLeft)
	assert.False(t, res.IsGameOver)

	res, err = d.svc.ToggleFlag(ctx, 1, -1, 3)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Empty(t, res.Updates)
	assert.Equal(t, 10, res.FlagsLeft)

	after, err := d.svc.State(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.True(t, after.FirstClick)
}

func TestRevealWinRecordsHistory(t *testing.T) {
	d := newTestGameService(t)
	ctx := context.Background()

	_, err := d.svc.NewGame(ctx, 1, 5, 5, 1)
	require.NoError(t, err)

	// the only mine lands on (0,0), far from the click, so the flood clears the board
	res, err := d.svc.Reveal(ctx, 1, 4, 4)
	require.NoError(t, err)
	assert.True(t, res.IsWin)
	assert.Equal(t, game.StatusWon, res.StatusMessage)
	assert.Equal(t, 0, res.FlagsLeft)

	live, err := d.svc.State(ctx, 1)
	require.NoError(t, err)
	assert.True(t, live.IsWin)
	assert.True(t, live.Board[0][0].Flagged)

	require.Len(t, d.history.entries, 1)
	assert.Equal(t, domain.GameResultWin, d.history.entries[0].Result)
	assert.Equal(t, 5, d.history.entries[0].Rows)

	// moves on a finished game change nothing and record nothing
	again, err := d.svc.Reveal(ctx, 1, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, again.Updates)
	assert.Len(t, d.history.entries, 1)
}

func TestRevealMineRecordsLoss(t *testing.T) {
	d := newTestGameService(t)
	ctx := context.Background()

	require.NoError(t, d.store.Save(ctx, 1, placedState()))

	res, err := d.svc.Reveal(ctx, 1, 0, 0)
	require.NoError(t, err)
	assert.True(t, res.IsGameOver)
	assert.Equal(t, game.StatusLost, res.StatusMessage)

	require.Len(t, d.history.entries, 1)
	assert.Equal(t, domain.GameResultLose, d.history.entries[0].Result)

	stats, err := d.svc.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalGames)
	assert.Equal(t, 1, stats.Losses)
	assert.Nil(t, stats.BestWinTime)
}

func TestToggleFlagPersists(t *testing.T) {
	d := newTestGameService(t)
	ctx := context.Background()

	require.NoError(t, d.store.Save(ctx, 1, placedState()))

	res, err := d.svc.ToggleFlag(ctx, 1, 2, 2)
	require.NoError(t, err)
	require.Len(t, res.Updates, 1)
	assert.Equal(t, game.FlagGlyph, res.Updates[0].Text)
	assert.Equal(t, 1, res.FlagsLeft)

	live, err := d.svc.State(ctx, 1)
	require.NoError(t, err)
	assert.True(t, live.Board[2][2].Flagged)
	assert.Equal(t, 1, live.FlagsLeft)
}

func TestSaveAndResume(t *testing.T) {
	d := newTestGameService(t)
	ctx := context.Background()

	require.NoError(t, d.store.Save(ctx, 1, placedState()))
	_, err := d.svc.ToggleFlag(ctx, 1, 2, 2)
	require.NoError(t, err)

	id, err := d.svc.SaveGame(ctx, 1, 42)
	require.NoError(t, err)

	list, err := d.svc.ListSaved(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	sg, err := d.svc.GetSaved(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sg.UserID)
	assert.Contains(t, sg.GameData, `"elapsedSeconds":42`)

	// play on, then resume the saved position
	_, err = d.svc.ToggleFlag(ctx, 1, 3, 3)
	require.NoError(t, err)

	st, err := d.svc.ResumeSaved(ctx, 1, id)
	require.NoError(t, err)
	assert.True(t, st.Board[2][2].Flagged)
	assert.False(t, st.Board[3][3].Flagged)
	assert.Equal(t, 42, st.ElapsedSeconds)

	live, err := d.svc.State(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, st, live)
}

func TestResumeSavedOwnership(t *testing.T) {
	d := newTestGameService(t)
	ctx := context.Background()

	require.NoError(t, d.store.Save(ctx, 1, placedState()))
	id, err := d.svc.SaveGame(ctx, 1, 0)
	require.NoError(t, err)

	_, err = d.svc.ResumeSaved(ctx, 2, id)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = d.svc.ResumeSaved(ctx, 1, id+100)
	assert.Error(t, err)
}

func TestResumeCorruptLeavesSession(t *testing.T) {
	d := newTestGameService(t)
	ctx := context.Background()

	_, err := d.svc.NewGame(ctx, 1, 6, 6, 4)
	require.NoError(t, err)

	id, err := d.saved.Save(ctx, 1, []byte(`{"rows":6,"cols":6,"board":[]}`), d.svc.now())
	require.NoError(t, err)

	_, err = d.svc.ResumeSaved(ctx, 1, id)
	assert.ErrorIs(t, err, game.ErrCorruptState)

	live, err := d.svc.State(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, live.Rows)
	assert.True(t, live.FirstClick)
}

func TestDeleteSaved(t *testing.T) {
	d := newTestGameService(t)
	ctx := context.Background()

	require.NoError(t, d.store.Save(ctx, 1, placedState()))
	id, err := d.svc.SaveGame(ctx, 1, 0)
	require.NoError(t, err)

	ok, err := d.svc.DeleteSaved(ctx, 2, id)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, ok)

	ok, err = d.svc.DeleteSaved(ctx, 1, id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = d.svc.DeleteSaved(ctx, 1, id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveWithoutGame(t *testing.T) {
	d := newTestGameService(t)

	_, err := d.svc.SaveGame(context.Background(), 3, 10)
	assert.ErrorIs(t, err, session.ErrNoGame)
}

func TestHistoryNewestFirst(t *testing.T) {
	d := newTestGameService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := d.svc.NewGame(ctx, 1, 5, 5, 1)
		require.NoError(t, err)
		_, err = d.svc.Reveal(ctx, 1, 4, 4)
		require.NoError(t, err)
	}
	require.NoError(t, d.history.Create(ctx, &domain.GameHistory{UserID: 2, Result: domain.GameResultLose}))

	games, err := d.svc.History(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, int64(3), games[0].ID)
	assert.Equal(t, int64(2), games[1].ID)

	games, err = d.svc.History(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, games, 3)

	games, err = d.svc.History(ctx, 7, 10)
	require.NoError(t, err)
	assert.NotNil(t, games)
	assert.Empty(t, games)
}

func TestStatsAndHistoryWithoutRepository(t *testing.T) {
	store := session.NewMemoryStore(time.Hour, time.Hour)
	t.Cleanup(store.Close)
	svc := NewGameService(game.NewEngine(zeroRand{}), store, session.NewLocalLocker(), newFakeSavedRepo(), nil)
	ctx := context.Background()

	stats, err := svc.Stats(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, &domain.UserStats{UserID: 4}, stats)

	games, err := svc.History(ctx, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, games)
}
