package main

import (
	"fmt"
	"sync"

	"github.com/cricklet/chessmatch/internal/arena"
	"github.com/cricklet/chessmatch/internal/eval"
	"github.com/cricklet/chessmatch/internal/game"
	. "github.com/cricklet/chessmatch/internal/helpers"
)

// session is the state shared between a websocket reader loop and a match
// goroutine. Every access goes through the mutex, and configuration
// changes are rejected while a match runs, so the goroutine always plays
// the configuration it started with.
type session struct {
	mu sync.Mutex

	evalNames [2]string
	depths    [2]int
	position  *game.Position
	running   bool
}

func newSession() *session {
	return &session{
		evalNames: [2]string{"countpieces", "weightpieces"},
		depths:    [2]int{2, 2},
		position:  game.StartingPosition(),
	}
}

func sideIndex(side game.Player) int {
	if side == game.Black {
		return 1
	}
	return 0
}

func (s *session) setFen(fen string) (*game.Position, Error) {
	position, err := game.PositionFromFen(fen)
	if !IsNil(err) {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil, Errorf("cannot change the position mid-match")
	}
	s.position = position
	return position, NilError
}

func (s *session) setEval(side game.Player, name string) Error {
	_, err := eval.ByName(name)
	if !IsNil(err) {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return Errorf("cannot change evaluators mid-match")
	}
	s.evalNames[sideIndex(side)] = name
	return NilError
}

func (s *session) setDepth(side game.Player, depth int) Error {
	if depth < 1 {
		return Errorf("depth must be at least 1, got %v", depth)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return Errorf("cannot change depths mid-match")
	}
	s.depths[sideIndex(side)] = depth
	return NilError
}

func (s *session) playerLocked(side game.Player) (arena.Player, Error) {
	i := sideIndex(side)
	evaluator, err := eval.ByName(s.evalNames[i])
	if !IsNil(err) {
		return arena.Player{}, err
	}
	return arena.Player{
		Name:      fmt.Sprintf("%v@%v", s.evalNames[i], s.depths[i]),
		Evaluator: evaluator,
		Depth:     s.depths[i],
	}, NilError
}

// start launches the match goroutine with a snapshot of the current
// configuration. The returned channel carries the result and closes when
// the match is over.
func (s *session) start(logger Logger, onMove func(position *game.Position, move game.Move)) (<-chan game.Result, Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil, Errorf("match already running")
	}
	white, err := s.playerLocked(game.White)
	if !IsNil(err) {
		return nil, err
	}
	black, err := s.playerLocked(game.Black)
	if !IsNil(err) {
		return nil, err
	}
	position := s.position
	s.running = true

	a := arena.NewArena(
		arena.WithLogger{Logger: logger},
		arena.WithMoveListener{Callback: onMove})

	done := make(chan game.Result, 1)
	go func() {
		defer func() {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			close(done)
		}()

		result, err := a.Play(position, white, black)
		if !IsNil(err) {
			logger.Println("play: ", err)
			return
		}
		logger.Println(white.Name, "vs", black.Name, ":", result)
		done <- result
	}()
	return done, NilError
}
