package client

import (
	"time"

	"github.com/tomz197/towerstack/internal/input"
)

// Screen is what the client shows on top of the tower.
type Screen int

const (
	ScreenStart    Screen = iota // Idle before the first game
	ScreenPlaying                // Game running, HUD only
	ScreenGameOver               // Idle after a miss
	ScreenShutdown               // Server is shutting down
)

// ClientState holds per-connection state that is not part of the game
// session itself.
type ClientState struct {
	Input         input.Input
	Screen        Screen
	Running       bool          // Client loop running
	GamesPlayed   int           // Finished games in this connection
	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state

	notice      string  // Transient HUD message (new records)
	noticeTimer float64 // Seconds left to show notice

	prevScreen  Screen
	wasInactive bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Screen:  ScreenStart,
		Running: true,
	}
}

// setNotice shows msg on the HUD for the given number of seconds.
func (s *ClientState) setNotice(msg string, seconds float64) {
	s.notice = msg
	s.noticeTimer = seconds
}

// tickNotice counts the notice down and clears it when expired.
func (s *ClientState) tickNotice() {
	if s.noticeTimer <= 0 {
		return
	}
	s.noticeTimer -= s.delta.Seconds()
	if s.noticeTimer <= 0 {
		s.notice = ""
		s.noticeTimer = 0
	}
}
