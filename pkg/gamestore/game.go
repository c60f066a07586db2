package gamestore

import (
	"context"
	"database/sql"
	"encoding/json"

	"garitoblackjack-server/pkg/blackjack"
)

// SaveGame upserts the snapshot, keyed by the game id. The full snapshot is
// kept as jsonb; a few columns are lifted out for querying.
func (s *Store) SaveGame(ctx context.Context, snap *blackjack.Snapshot) error {
	state, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO games (id, player_name, difficulty, status, chips, stress, venue_level, win_streak, state)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE
SET status     = EXCLUDED.status,
    chips      = EXCLUDED.chips,
    stress     = EXCLUDED.stress,
    venue_level = EXCLUDED.venue_level,
    win_streak = EXCLUDED.win_streak,
    state      = EXCLUDED.state,
    updated    = (NOW() AT TIME ZONE 'utc')`

	_, err = s.db.ExecContext(ctx, query,
		snap.ID, snap.PlayerName, string(snap.Difficulty), string(snap.Status),
		snap.Chips, snap.Stress, snap.VenueLevel, snap.WinStreak, state)
	return err
}

// GetGame returns the stored snapshot, or nil if the game is not known
func (s *Store) GetGame(ctx context.Context, id string) (*blackjack.Snapshot, error) {
	const query = `
SELECT state
FROM games
WHERE id = $1`

	var state []byte
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&state); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	var snap blackjack.Snapshot
	if err := json.Unmarshal(state, &snap); err != nil {
		return nil, err
	}

	return &snap, nil
}

// DeleteGame removes the stored snapshot
func (s *Store) DeleteGame(ctx context.Context, id string) error {
	const query = `
DELETE
FROM games
WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id)
	return err
}
