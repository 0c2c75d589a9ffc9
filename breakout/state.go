package breakout

import (
	"errors"
	"fmt"
)

// GameState is an enum that represents all possible game states
type GameState byte

const (
	StateIdle GameState = iota
	StateIntroPlaying
	StatePlaying
	StatePaused
	StateDropped
)

var stateNames = [...]string{
	StateIdle:         "idle",
	StateIntroPlaying: "intro",
	StatePlaying:      "playing",
	StatePaused:       "paused",
	StateDropped:      "dropped",
}

func (s GameState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("GameState(%d)", s)
}

// Trigger is something that may move the game to another state.
type Trigger byte

const (
	TriggerStart Trigger = iota
	TriggerIntroDone
	TriggerBlur
	TriggerFocus
	TriggerDrop
	TriggerRestart
)

var triggerNames = [...]string{
	TriggerStart:     "start",
	TriggerIntroDone: "intro-done",
	TriggerBlur:      "blur",
	TriggerFocus:     "focus",
	TriggerDrop:      "drop",
	TriggerRestart:   "restart",
}

func (t Trigger) String() string {
	if int(t) < len(triggerNames) {
		return triggerNames[t]
	}
	return fmt.Sprintf("Trigger(%d)", t)
}

// ErrInvalidTransition is returned when a trigger is not accepted in the
// current state.
var ErrInvalidTransition = errors.New("invalid state transition")

type edge struct {
	from GameState
	on   Trigger
}

// transitions is the whole state machine. Any pair not listed is rejected.
var transitions = map[edge]GameState{
	{StateIdle, TriggerStart}:             StateIntroPlaying,
	{StateIntroPlaying, TriggerIntroDone}: StatePlaying,
	{StatePlaying, TriggerBlur}:           StatePaused,
	{StatePaused, TriggerFocus}:           StatePlaying,
	{StatePlaying, TriggerDrop}:           StateDropped,
	{StateDropped, TriggerRestart}:        StatePlaying,
}

// Next returns the state reached from s on t.
func (s GameState) Next(t Trigger) (GameState, error) {
	next, ok := transitions[edge{s, t}]
	if !ok {
		return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, t, s)
	}
	return next, nil
}

// stateMachine holds the current state and validates every move.
type stateMachine struct {
	current GameState
}

func (m *stateMachine) State() GameState { return m.current }

func (m *stateMachine) fire(t Trigger) (GameState, error) {
	next, err := m.current.Next(t)
	if err != nil {
		return m.current, err
	}
	m.current = next
	return next, nil
}
