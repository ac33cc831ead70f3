package game

import (
	"strconv"
	"strings"

	"github.com/notnil/chess"

	. "github.com/cricklet/chessmatch/internal/helpers"
)

type Move = *chess.Move

type Player = chess.Color

const (
	White Player = chess.White
	Black Player = chess.Black
)

type Result int

const (
	InProgress Result = iota
	WhiteWon
	BlackWon
	Drawn
)

func (r Result) String() string {
	switch r {
	case WhiteWon:
		return "1-0"
	case BlackWon:
		return "0-1"
	case Drawn:
		return "1/2-1/2"
	}
	return "*"
}

// Position wraps the rules library behind a push/pop discipline: Apply
// pushes a move, Undo pops the most recent one. Search borrows a Position
// and must leave the stack exactly as it found it.
type Position struct {
	stack []*chess.Position
	moves []Move
	seen  map[string]int
}

// repetitionKey is the FEN without its clocks, so repeated positions
// compare equal regardless of when they occur.
func repetitionKey(pos *chess.Position) string {
	fields := strings.Fields(pos.String())
	return strings.Join(fields[:4], " ")
}

// halfmoveClock is field 5 of the FEN: half-moves since the last capture
// or pawn move.
func halfmoveClock(pos *chess.Position) int {
	fields := strings.Fields(pos.String())
	if len(fields) < 5 {
		return 0
	}
	clock, err := strconv.Atoi(fields[4])
	if err != nil {
		return 0
	}
	return clock
}

func StartingPosition() *Position {
	start := chess.StartingPosition()
	return &Position{
		stack: []*chess.Position{start},
		moves: []Move{},
		seen:  map[string]int{repetitionKey(start): 1},
	}
}

func PositionFromFen(fen string) (*Position, Error) {
	fenOption, err := chess.FEN(fen)
	if !IsNil(err) {
		return nil, Wrap(err)
	}
	start := chess.NewGame(fenOption).Position()
	return &Position{
		stack: []*chess.Position{start},
		moves: []Move{},
		seen:  map[string]int{repetitionKey(start): 1},
	}, NilError
}

func (p *Position) Current() *chess.Position {
	return p.stack[len(p.stack)-1]
}

func (p *Position) Turn() Player {
	return p.Current().Turn()
}

func (p *Position) LegalMoves() []Move {
	return p.Current().ValidMoves()
}

func (p *Position) Apply(move Move) {
	next := p.Current().Update(move)
	p.stack = append(p.stack, next)
	p.moves = append(p.moves, move)
	p.seen[repetitionKey(next)]++
}

func (p *Position) Undo() Move {
	if len(p.moves) == 0 {
		panic("undo without a preceding apply")
	}
	p.seen[repetitionKey(p.Current())]--
	p.stack = p.stack[:len(p.stack)-1]

	move := p.moves[len(p.moves)-1]
	p.moves = p.moves[:len(p.moves)-1]
	return move
}

// LastMove is the most recently applied move, empty at the root of a game.
func (p *Position) LastMove() Optional[Move] {
	return Last(p.moves)
}

func (p *Position) MoveHistory() []string {
	return MapSlice(p.moves, func(m Move) string {
		return m.String()
	})
}

func (p *Position) PlyCount() int {
	return len(p.moves)
}

// Result reports the game outcome: checkmate and stalemate come from the
// rules library; fivefold repetition is tracked here with repetition keys,
// and the seventy-five-move rule comes from the FEN halfmove clock.
// Checkmate wins even on the move that fills the clock. InProgress for
// anything else.
func (p *Position) Result() Result {
	switch p.Current().Status() {
	case chess.Checkmate:
		if p.Turn() == White {
			return BlackWon
		}
		return WhiteWon
	case chess.Stalemate:
		return Drawn
	}
	if halfmoveClock(p.Current()) >= 150 {
		return Drawn
	}
	if p.seen[repetitionKey(p.Current())] >= 5 {
		return Drawn
	}
	return InProgress
}

func (p *Position) IsOver() bool {
	return p.Result() != InProgress
}

func (p *Position) Fen() string {
	return p.Current().String()
}

func (p *Position) String() string {
	return p.Current().Board().Draw()
}
