package world

import (
	"fmt"

	"github.com/milk9111/sneak/logger"
	"github.com/sirupsen/logrus"
)

// GameState is the session's outcome bookkeeping.
type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
	StateVictory
)

func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	case StateVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Session ends the run on capture or escape. It is the capture listener
// handed to every guard.
type Session struct {
	// OnEnd, when set, is called once when the session leaves Playing.
	OnEnd func(GameState)

	state      GameState
	capturedBy string
	log        *logrus.Entry
}

func NewSession() *Session {
	return &Session{log: logger.For("session")}
}

// OnCapture ends the session. Captures after the first are ignored.
func (s *Session) OnCapture(guard string) {
	if s.state != StatePlaying {
		return
	}
	s.capturedBy = guard
	s.end(StateGameOver)
}

// ReachExit ends the session in victory.
func (s *Session) ReachExit() {
	if s.state != StatePlaying {
		return
	}
	s.end(StateVictory)
}

func (s *Session) end(state GameState) {
	s.state = state
	s.log.WithFields(logrus.Fields{"state": state, "guard": s.capturedBy}).Info("session ended")
	if s.OnEnd != nil {
		s.OnEnd(state)
	}
}

func (s *Session) Reset() {
	s.state = StatePlaying
	s.capturedBy = ""
}

func (s *Session) State() GameState { return s.state }

func (s *Session) Playing() bool { return s.state == StatePlaying }

// CapturedBy names the guard that ended the session, if any.
func (s *Session) CapturedBy() string { return s.capturedBy }

// Headline is the one-line outcome shown to the player, or "" while
// playing.
func (s *Session) Headline() string {
	switch s.state {
	case StateGameOver:
		if s.capturedBy == "" {
			return "Caught"
		}
		return fmt.Sprintf("Caught by %s", s.capturedBy)
	case StateVictory:
		return "Escaped"
	default:
		return ""
	}
}

// TimeScale is 1 while playing and 0 once the session has ended.
func (s *Session) TimeScale() float64 {
	if s.Playing() {
		return 1
	}
	return 0
}
