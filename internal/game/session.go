// Package game runs one player's tower: the Idle/Running state machine, the
// score, the motion of the active layer and the camera that follows it.
package game

import (
	"github.com/charmbracelet/log"

	"github.com/tomz197/towerstack/internal/config"
	"github.com/tomz197/towerstack/internal/logging"
	"github.com/tomz197/towerstack/internal/object"
	"github.com/tomz197/towerstack/internal/stack"
)

// State is the phase of a session.
type State int

const (
	StateIdle     State = iota // Waiting for the first activation
	StateRunning               // Top layer moving, ticks active
	StateGameOver              // Transient while a missed game is torn down
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Outcome is what a single activation did.
type Outcome int

const (
	OutcomeNone    Outcome = iota
	OutcomeStarted         // Idle -> Running
	OutcomeCut             // Layer placed, score increased
	OutcomeMiss            // Layer missed, game reset
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStarted:
		return "started"
	case OutcomeCut:
		return "cut"
	case OutcomeMiss:
		return "miss"
	default:
		return "none"
	}
}

// Event describes an activation after it was applied.
type Event struct {
	Outcome Outcome
	Score   int // Score after the activation; for a miss, the final score
	Best    int
	Height  int // Layers in the stack after the activation
}

// Session is the aggregate for one player: stack, motion, camera and score.
// It is not safe for concurrent use; one goroutine owns it and calls
// Activate and Tick in order.
type Session struct {
	tuning config.Tuning
	stack  *stack.Manager
	motion Motion
	pace   Pace
	camera Camera
	log    *log.Logger

	state         State
	score         int
	best          int
	lastScore     int
	movingForward bool

	// OnEvent, if set, is called after every activation that changed something.
	OnEvent func(Event)
}

// NewSession creates an idle session with a freshly seeded stack.
// A nil logger discards output.
func NewSession(scene object.Scene, world object.World, t config.Tuning, logger *log.Logger) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Session{
		tuning: t,
		stack:  stack.NewManager(scene, world, t),
		motion: Motion{
			BackLimit:  t.BackLimit,
			FrontLimit: t.FrontLimit,
			Epsilon:    t.BounceEpsilon,
		},
		pace: Pace{
			BaseSpeed:        t.BaseSpeed,
			Growth:           t.SpeedGrowth,
			LayerHeight:      t.LayerHeight,
			CameraBaseHeight: t.CameraBaseHeight,
		},
		camera:        Camera{Height: t.CameraBaseHeight},
		log:           logger,
		state:         StateIdle,
		movingForward: true,
	}
	return s
}

// Activate handles the single player action: start when idle, drop when running.
func (s *Session) Activate() Outcome {
	switch s.state {
	case StateIdle:
		s.state = StateRunning
		s.log.Debug("game started", "best", s.best)
		s.emit(OutcomeStarted, s.score)
		return OutcomeStarted
	case StateRunning:
		return s.drop()
	default:
		return OutcomeNone
	}
}

// drop cuts the top layer against the previous one.
func (s *Session) drop() Outcome {
	top := s.stack.Top()
	r := stack.ComputeOverlap(top, s.stack.Prev())
	if r.Outcome == stack.Miss {
		final := s.score
		s.gameOver()
		s.log.Info("game over", "score", final, "best", s.best, "overlap", r.Overlap)
		s.emit(OutcomeMiss, final)
		return OutcomeMiss
	}

	s.stack.CutTop(r.Overlap, r.Size, r.Delta)
	if r.HasOverhang() {
		s.stack.AddOverhang(r.OverhangPosition.X, r.OverhangPosition.Z, r.OverhangWidth, r.OverhangDepth)
	}

	// The next layer keeps the placed position on the cut axis and starts
	// from the back limit on the other one.
	x, z := s.tuning.BackLimit, s.tuning.BackLimit
	if r.Direction == object.AxisX {
		x = top.Position.X
	} else {
		z = top.Position.Z
	}
	s.stack.AddLayer(x, z, r.NewWidth, r.NewDepth, r.Direction.Other())
	s.score++

	s.log.Debug("layer placed", "score", s.score, "overlap", r.Overlap, "axis", r.Direction)
	s.emit(OutcomeCut, s.score)
	return OutcomeCut
}

// gameOver commits the best score and reseeds the stack, leaving the
// session idle.
func (s *Session) gameOver() {
	s.state = StateGameOver
	s.lastScore = s.score
	s.best = max(s.best, s.score)
	s.score = 0
	s.stack.Reset()
	s.camera.Reset(s.tuning.CameraBaseHeight)
	s.movingForward = true
	s.state = StateIdle
}

func (s *Session) emit(o Outcome, score int) {
	if s.OnEvent == nil {
		return
	}
	s.OnEvent(Event{Outcome: o, Score: score, Best: s.best, Height: s.stack.Len()})
}

// Tick advances one frame while running: moves the top layer, bounces it at
// the limits, follows with the camera and steps the falling overhangs.
func (s *Session) Tick() {
	if s.state != StateRunning {
		return
	}
	n := s.stack.Len()
	speed := s.pace.Speed(n, s.movingForward)
	if s.motion.Advance(s.stack.Top(), speed) {
		s.movingForward = !s.movingForward
	}
	s.camera.Follow(s.pace.CameraBound(n), speed)
	s.stack.StepPhysics(s.tuning.FixedStep)
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Score returns the number of layers placed in the current game.
func (s *Session) Score() int { return s.score }

// Best returns the highest score reached in this session.
func (s *Session) Best() int { return s.best }

// LastScore returns the final score of the most recent finished game.
func (s *Session) LastScore() int { return s.lastScore }

// OverlayVisible reports whether the start overlay should be shown.
func (s *Session) OverlayVisible() bool { return s.state == StateIdle }

// MovingForward reports the travel sign of the top layer.
func (s *Session) MovingForward() bool { return s.movingForward }

// CameraHeight returns the current camera follow height.
func (s *Session) CameraHeight() float64 { return s.camera.Height }

// Stack exposes the layers and overhangs for rendering and inspection.
func (s *Session) Stack() *stack.Manager { return s.stack }
