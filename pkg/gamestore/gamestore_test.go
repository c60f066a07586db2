package gamestore

import (
	"context"
	"os"
	"testing"

	"garitoblackjack-server/pkg/blackjack"
	"garitoblackjack-server/pkg/garito"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var cbg = context.Background()

// testStore connects to the database named by GBJ_TEST_PG_DSN. The tests in
// this package need a live database and are skipped without one.
func testStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("GBJ_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("GBJ_TEST_PG_DSN is not set")
	}

	store, err := New(dsn)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Migrate("../../sql"); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

func testSnapshot(t *testing.T) *blackjack.Snapshot {
	t.Helper()

	game, err := blackjack.NewGame(uuid.New().String(), "Tex", garito.DifficultyNormal, nil)
	if err != nil {
		t.Fatal(err)
	}

	return game.Snapshot()
}

func TestStore_SaveAndGetGame(t *testing.T) {
	store := testStore(t)
	a := assert.New(t)

	snap := testSnapshot(t)
	a.NoError(store.SaveGame(cbg, snap))

	got, err := store.GetGame(cbg, snap.ID)
	a.NoError(err)
	a.Equal(snap.ID, got.ID)
	a.Equal(snap.PlayerName, got.PlayerName)
	a.Equal(snap.Chips, got.Chips)
	a.Equal(snap.Shoe, got.Shoe)

	// saving again updates in place
	snap.Chips = 750
	a.NoError(store.SaveGame(cbg, snap))

	got, err = store.GetGame(cbg, snap.ID)
	a.NoError(err)
	a.Equal(750, got.Chips)
}

func TestStore_GetGame_notFound(t *testing.T) {
	store := testStore(t)

	got, err := store.GetGame(cbg, uuid.New().String())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_DeleteGame(t *testing.T) {
	store := testStore(t)
	a := assert.New(t)

	snap := testSnapshot(t)
	a.NoError(store.SaveGame(cbg, snap))
	a.NoError(store.DeleteGame(cbg, snap.ID))

	got, err := store.GetGame(cbg, snap.ID)
	a.NoError(err)
	a.Nil(got)
}

func TestStore_Leaderboard(t *testing.T) {
	store := testStore(t)
	a := assert.New(t)

	low := testSnapshot(t)
	low.Chips = 100
	a.NoError(store.RecordResult(cbg, low))

	high := testSnapshot(t)
	high.Chips = 1000000
	a.NoError(store.RecordResult(cbg, high))

	entries, err := store.Leaderboard(cbg, 5)
	a.NoError(err)
	a.True(len(entries) >= 2)
	a.Equal(high.ID, entries[0].GameID)
	a.Equal(1000000, entries[0].Chips)
}
