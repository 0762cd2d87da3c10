package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore opens a store against a temp database
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "tunes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGetTune(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.SaveTune(ctx, "triad", "C4 E4 G4")
	require.NoError(t, err)

	tune, err := store.GetTune(ctx, "triad")
	require.NoError(t, err)
	assert.Equal(t, "triad", tune.Name)
	assert.Equal(t, "C4 E4 G4", tune.Notes)
	assert.Equal(t, 0, tune.PlayCount)
}

func TestSaveTuneDuplicate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTune(ctx, "triad", "C4 E4 G4"))

	err := store.SaveTune(ctx, "triad", "D4 F#4 A4")
	assert.ErrorIs(t, err, ErrTuneExists)

	// Original must be untouched
	tune, err := store.GetTune(ctx, "triad")
	require.NoError(t, err)
	assert.Equal(t, "C4 E4 G4", tune.Notes)
}

func TestGetTuneNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetTune(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTuneNotFound)
}

func TestListTunesOrdered(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTune(ctx, "zelda", "G4 F#4 D#4"))
	require.NoError(t, store.SaveTune(ctx, "alarm", "880 440 880 440"))

	tunes, err := store.ListTunes(ctx)
	require.NoError(t, err)
	require.Len(t, tunes, 2)
	assert.Equal(t, "alarm", tunes[0].Name)
	assert.Equal(t, "zelda", tunes[1].Name)
}

func TestDeleteTune(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTune(ctx, "triad", "C4 E4 G4"))
	require.NoError(t, store.DeleteTune(ctx, "triad"))

	_, err := store.GetTune(ctx, "triad")
	assert.ErrorIs(t, err, ErrTuneNotFound)

	assert.ErrorIs(t, store.DeleteTune(ctx, "triad"), ErrTuneNotFound)
}

func TestRecordPlay(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTune(ctx, "triad", "C4 E4 G4"))
	require.NoError(t, store.RecordPlay(ctx, "triad"))
	require.NoError(t, store.RecordPlay(ctx, "triad"))

	tune, err := store.GetTune(ctx, "triad")
	require.NoError(t, err)
	assert.Equal(t, 2, tune.PlayCount)

	assert.ErrorIs(t, store.RecordPlay(ctx, "missing"), ErrTuneNotFound)
}
