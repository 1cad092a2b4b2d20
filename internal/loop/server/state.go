package server

import (
	"cmp"
	"slices"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// Snapshot is an immutable view of the shared state for rendering.
type Snapshot struct {
	Players   int             // Connected clients
	Playing   int             // Clients with a game in progress
	Record    TopScoreEntry   // Best score since the server started
	TopScores []TopScoreEntry // Top N scores for leaderboard display
}

// playerState is what the server knows about one client's tower.
type playerState struct {
	score   int
	best    int
	playing bool
}

// topScores returns the n best scores among connected clients, counting both
// the finished best and the game in progress.
func topScores(clients map[int]*ClientHandle, n int) []TopScoreEntry {
	entries := make([]TopScoreEntry, 0, len(clients))
	for id, h := range clients {
		score := max(h.state.best, h.state.score)
		if score == 0 {
			continue
		}
		entries = append(entries, TopScoreEntry{Username: h.Username, Score: score, clientID: id})
	}
	slices.SortFunc(entries, func(a, b TopScoreEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.clientID, b.clientID)
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
