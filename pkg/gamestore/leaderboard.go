package gamestore

import (
	"context"
	"time"

	"garitoblackjack-server/pkg/blackjack"
)

// LeaderboardEntry is a record in the `leaderboard` table
type LeaderboardEntry struct {
	ID              int64     `json:"id"`
	GameID          string    `json:"gameId"`
	PlayerName      string    `json:"playerName"`
	Difficulty      string    `json:"difficulty"`
	Chips           int       `json:"chips"`
	VenueLevel      int       `json:"venueLevel"`
	VenuesCompleted int       `json:"venuesCompleted"`
	MaxWinStreak    int       `json:"maxWinStreak"`
	Rounds          int       `json:"rounds"`
	CheatsUsed      int       `json:"cheatsUsed"`
	CheatsDetected  int       `json:"cheatsDetected"`
	Created         time.Time `json:"created"`
}

const leaderboardColumns = `
leaderboard.id,
leaderboard.game_id,
leaderboard.player_name,
leaderboard.difficulty,
leaderboard.chips,
leaderboard.venue_level,
leaderboard.venues_completed,
leaderboard.max_win_streak,
leaderboard.rounds,
leaderboard.cheats_used,
leaderboard.cheats_detected,
leaderboard.created`

func getLeaderboardEntryByRow(row Scanner) (*LeaderboardEntry, error) {
	var e LeaderboardEntry
	if err := row.Scan(&e.ID, &e.GameID, &e.PlayerName, &e.Difficulty, &e.Chips, &e.VenueLevel,
		&e.VenuesCompleted, &e.MaxWinStreak, &e.Rounds, &e.CheatsUsed, &e.CheatsDetected, &e.Created); err != nil {
		return nil, err
	}

	return &e, nil
}

// RecordResult writes a finished run to the leaderboard
func (s *Store) RecordResult(ctx context.Context, snap *blackjack.Snapshot) error {
	const query = `
INSERT INTO leaderboard (game_id, player_name, difficulty, chips, venue_level, venues_completed, max_win_streak, rounds, cheats_used, cheats_detected)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.db.ExecContext(ctx, query,
		snap.ID, snap.PlayerName, string(snap.Difficulty), snap.Chips, snap.VenueLevel,
		len(snap.VenuesCompleted), snap.MaxWinStreak, snap.Stats.Rounds,
		snap.Stats.CheatsUsed, snap.Stats.CheatsDetected)
	return err
}

// Leaderboard returns the top runs ordered by chips, then venues completed
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	const query = `
SELECT ` + leaderboardColumns + `
FROM leaderboard
ORDER BY chips DESC, venues_completed DESC, created ASC
LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*LeaderboardEntry, 0)
	for rows.Next() {
		entry, err := getLeaderboardEntryByRow(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
