package arena

import (
	"github.com/cricklet/chessmatch/internal/game"
	. "github.com/cricklet/chessmatch/internal/helpers"
	"github.com/cricklet/chessmatch/internal/search"
)

type Player struct {
	Name      string
	Evaluator search.Evaluator
	Depth     int
}

type Arena struct {
	Logger Logger

	maxPlies     int
	searchOpts   []search.SearchOption
	showProgress bool
	onMove       func(position *game.Position, move game.Move)
}

func NewArena(opts ...ArenaOption) *Arena {
	a := &Arena{
		Logger:   &SilentLogger,
		maxPlies: 512,
	}
	for _, opt := range opts {
		opt.apply(a)
	}
	return a
}

type ArenaOption interface {
	apply(a *Arena)
}

type WithLogger struct {
	Logger Logger
}

func (o WithLogger) apply(a *Arena) {
	a.Logger = o.Logger
}

// WithMaxPlies caps game length; a game still unresolved at the cap is
// adjudicated a draw.
type WithMaxPlies struct {
	MaxPlies int
}

func (o WithMaxPlies) apply(a *Arena) {
	a.maxPlies = o.MaxPlies
}

type WithSearchOptions struct {
	Options []search.SearchOption
}

func (o WithSearchOptions) apply(a *Arena) {
	a.searchOpts = o.Options
}

type WithProgress struct {
}

func (o WithProgress) apply(a *Arena) {
	a.showProgress = true
}

// WithMoveListener is called after each move is applied to the game
// position.
type WithMoveListener struct {
	Callback func(position *game.Position, move game.Move)
}

func (o WithMoveListener) apply(a *Arena) {
	a.onMove = o.Callback
}

// Play runs a single game on position until it reaches a terminal state,
// alternating searches between the two players. White maximizes, black
// minimizes; both searches run with open root bounds.
func (a *Arena) Play(position *game.Position, white Player, black Player) (game.Result, Error) {
	for !position.IsOver() {
		if position.PlyCount() >= a.maxPlies {
			a.Logger.Println("adjudicating draw after", position.PlyCount(), "plies")
			return game.Drawn, NilError
		}

		player, role := white, search.Maximizing
		if position.Turn() == game.Black {
			player, role = black, search.Minimizing
		}

		searcher := search.NewSearcher(player.Evaluator, a.searchOpts...)
		result := searcher.Search(position, player.Depth, role)
		if result.Move.IsEmpty() {
			// a terminal position should have been caught above
			return game.InProgress, Errorf(
				"no move for %v at %v", player.Name, position.Fen())
		}

		position.Apply(result.Move.Value())
		a.Logger.Println(player.Name, "played", result.Move.Value().String(),
			"scored", result.Score)

		if a.onMove != nil {
			a.onMove(position, result.Move.Value())
		}
	}

	return position.Result(), NilError
}
