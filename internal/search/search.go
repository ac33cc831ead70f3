package search

import (
	"math"
	"math/rand"
	"time"

	. "github.com/cricklet/chessmatch/internal/game"
	. "github.com/cricklet/chessmatch/internal/helpers"
)

type Role int

const (
	Maximizing Role = iota
	Minimizing
)

func (r Role) Opposite() Role {
	if r == Maximizing {
		return Minimizing
	}
	return Maximizing
}

func (r Role) String() string {
	if r == Maximizing {
		return "maximizing"
	}
	return "minimizing"
}

// Evaluator scores a position from the maximizing side's perspective.
// Positive favors the side that moved first.
type Evaluator interface {
	Evaluate(position *Position) float64
}

type EvaluatorFunc func(position *Position) float64

var _ Evaluator = (EvaluatorFunc)(nil)

func (f EvaluatorFunc) Evaluate(position *Position) float64 {
	return f(position)
}

// SearchResult pairs the score of a subtree with the move that leads into
// it. Move is empty only when the node had no legal moves.
type SearchResult struct {
	Score float64
	Move  Optional[Move]
}

type Searcher struct {
	Logger Logger

	evaluator Evaluator
	rand      *rand.Rand
	shuffle   bool

	DebugTotalEvaluations int
}

func NewSearcher(evaluator Evaluator, opts ...SearchOption) *Searcher {
	s := &Searcher{
		Logger:    &SilentLogger,
		evaluator: evaluator,
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		shuffle:   true,
	}
	for _, opt := range opts {
		opt.apply(s)
	}
	return s
}

type SearchOption interface {
	apply(s *Searcher)
}

type WithLogger struct {
	Logger Logger
}

func (o WithLogger) apply(s *Searcher) {
	s.Logger = o.Logger
}

type WithSeed struct {
	Seed int64
}

func (o WithSeed) apply(s *Searcher) {
	s.rand = rand.New(rand.NewSource(o.Seed))
}

// WithoutShuffle leaves candidate moves in generation order, so repeated
// searches of the same position are deterministic.
type WithoutShuffle struct {
}

func (o WithoutShuffle) apply(s *Searcher) {
	s.shuffle = false
}

// Search picks a move for role at the given depth, with open root bounds.
func (s *Searcher) Search(position *Position, depth int, role Role) SearchResult {
	result := s.Minimax(position, depth, math.Inf(-1), math.Inf(1), role)
	if result.Move.HasValue() {
		s.Logger.Println(role, "depth", depth, "->", result.Move.Value(), result.Score)
	} else {
		s.Logger.Println(role, "depth", depth, "-> no move", result.Score)
	}
	return result
}

// Minimax explores the tree below position to the given depth, pruning
// subtrees that cannot affect the result. The position is mutated while
// exploring but restored before returning on every path.
func (s *Searcher) Minimax(position *Position, depth int, alpha float64, beta float64, role Role) SearchResult {
	if depth == 0 {
		return s.evaluateLeaf(position)
	}

	moves := position.LegalMoves()
	if s.shuffle {
		s.rand.Shuffle(len(moves), func(i, j int) {
			moves[i], moves[j] = moves[j], moves[i]
		})
	}

	best := SearchResult{Score: math.Inf(-1)}
	if role == Minimizing {
		best.Score = math.Inf(1)
	}

	for _, move := range moves {
		var child SearchResult
		func() {
			position.Apply(move)
			defer position.Undo()

			child = s.Minimax(position, depth-1, alpha, beta, role.Opposite())
		}()

		if role == Maximizing {
			best.Score = math.Max(best.Score, child.Score)
			// ties resolve to the move seen last
			if child.Score == best.Score {
				best.Move = Some(move)
			}
			alpha = math.Max(alpha, best.Score)
		} else {
			best.Score = math.Min(best.Score, child.Score)
			if child.Score == best.Score {
				best.Move = Some(move)
			}
			beta = math.Min(beta, best.Score)
		}

		if beta <= alpha {
			return best
		}
	}

	return best
}

// A leaf one ply past a decisive result scores infinite for the winner.
// Otherwise the evaluator runs; it scores for the maximizing side, and the
// leaf sits just after the opponent's move, so the sign flips.
func (s *Searcher) evaluateLeaf(position *Position) SearchResult {
	s.DebugTotalEvaluations++

	switch position.Result() {
	case WhiteWon:
		return SearchResult{math.Inf(1), position.LastMove()}
	case BlackWon:
		return SearchResult{math.Inf(-1), position.LastMove()}
	}
	return SearchResult{-s.evaluator.Evaluate(position), position.LastMove()}
}
