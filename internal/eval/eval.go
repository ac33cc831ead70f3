package eval

import (
	"math"
	"math/rand"
	"time"

	"github.com/notnil/chess"

	"github.com/cricklet/chessmatch/internal/game"
	. "github.com/cricklet/chessmatch/internal/helpers"
	"github.com/cricklet/chessmatch/internal/search"
)

// Standard piece valuations. The king counts for a single point: search
// never reaches a kingless position, the value only nudges king placement
// in the weighted evaluators.
func piecePoints(t chess.PieceType) float64 {
	switch t {
	case chess.Pawn:
		return 1
	case chess.Knight:
		return 3
	case chess.Bishop:
		return 3
	case chess.Rook:
		return 5
	case chess.Queen:
		return 9
	case chess.King:
		return 1
	}
	return 0
}

func linearDist(ax float64, ay float64, bx float64, by float64) float64 {
	return math.Sqrt(math.Pow(bx-ax, 2) + math.Pow(by-ay, 2))
}

// centerWeight scales a square's worth by its distance from the middle of
// the board, in [something under 0, 1]. The y coordinate is the square
// index over 8 without truncating, so it carries a fraction of the file;
// squares on the same rank weigh slightly differently.
func centerWeight(sq chess.Square) float64 {
	x := float64(int(sq) % 8)
	y := float64(int(sq)) / 8
	return 1 - linearDist(x, y, 4.5, 4.5)/5
}

func signedPoints(piece chess.Piece, weight float64) float64 {
	pts := piecePoints(piece.Type()) * weight
	if piece.Color() == chess.White {
		return pts
	}
	return -pts
}

// CountPieces scores material only.
type CountPieces struct {
}

var _ search.Evaluator = CountPieces{}

func (e CountPieces) Evaluate(position *game.Position) float64 {
	score := 0.0
	board := position.Current().Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := board.Piece(sq)
		if piece == chess.NoPiece {
			continue
		}
		score += signedPoints(piece, 1)
	}
	return score
}

// WeightPieces scores material scaled towards the center of the board.
type WeightPieces struct {
}

var _ search.Evaluator = WeightPieces{}

func (e WeightPieces) Evaluate(position *game.Position) float64 {
	score := 0.0
	board := position.Current().Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := board.Piece(sq)
		if piece == chess.NoPiece {
			continue
		}
		score += signedPoints(piece, centerWeight(sq))
	}
	return score
}

// Thorough adds mobility and a check bonus on top of center-weighted
// material.
type Thorough struct {
}

var _ search.Evaluator = Thorough{}

func (e Thorough) Evaluate(position *game.Position) float64 {
	score := 0.0

	if last := position.LastMove(); last.HasValue() && last.Value().HasTag(chess.Check) {
		score += 1
	}
	score += float64(len(position.LegalMoves())) * 0.02

	board := position.Current().Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := board.Piece(sq)
		if piece == chess.NoPiece {
			continue
		}
		score += signedPoints(piece, centerWeight(sq))
	}
	return score
}

// Random scores uniformly in [-100, 100), for baseline matches.
type Random struct {
	rand *rand.Rand
}

var _ search.Evaluator = (*Random)(nil)

func NewRandom() *Random {
	return &Random{rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func NewRandomWithSeed(seed int64) *Random {
	return &Random{rand.New(rand.NewSource(seed))}
}

func (e *Random) Evaluate(position *game.Position) float64 {
	return e.rand.Float64()*200 - 100
}

type Named struct {
	Name      string
	Evaluator search.Evaluator
}

// All lists the deterministic evaluators, in tournament order.
func All() []Named {
	return []Named{
		{"countpieces", CountPieces{}},
		{"weightpieces", WeightPieces{}},
		{"thorough", Thorough{}},
	}
}

func ByName(name string) (search.Evaluator, Error) {
	if name == "random" {
		return NewRandom(), NilError
	}
	named := FindInSlice(All(), func(n Named) bool {
		return n.Name == name
	})
	if named.IsEmpty() {
		return nil, Errorf("unknown evaluator %v", name)
	}
	return named.Value().Evaluator, NilError
}
