package config

import "time"

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical viewport width
	ViewHeight = 80  // Logical viewport height (in sub-pixels, so 40 terminal rows)
)

// Max render resolution. Larger terminals get a centered, bordered area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// ViewUnits is how many world units fit across the viewport width.
// Matches an orthographic camera that is 10 units wide.
const ViewUnits = 10.0

// Leaderboard
const (
	TopScoreCount     = 5
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate
const (
	ServerTickRate = 20
	ServerTickTime = time.Second / ServerTickRate
)
