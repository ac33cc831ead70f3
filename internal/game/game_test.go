package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/cricklet/chessmatch/internal/helpers"
)

const startFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func mustMove(t *testing.T, position *Position, uci string) Move {
	found := FindInSlice(position.LegalMoves(), func(m Move) bool {
		return m.String() == uci
	})
	assert.True(t, found.HasValue(), uci)
	return found.Value()
}

func TestStartingPosition(t *testing.T) {
	position := StartingPosition()

	assert.Equal(t, startFen, position.Fen())
	assert.Equal(t, White, position.Turn())
	assert.Equal(t, 20, len(position.LegalMoves()))
	assert.False(t, position.IsOver())
	assert.Equal(t, InProgress, position.Result())
	assert.True(t, position.LastMove().IsEmpty())
}

func TestApplyUndoRoundTrip(t *testing.T) {
	position := StartingPosition()

	move := mustMove(t, position, "e2e4")
	position.Apply(move)

	assert.Equal(t, Black, position.Turn())
	assert.Equal(t, 1, position.PlyCount())
	assert.Equal(t, "e2e4", position.LastMove().Value().String())
	assert.NotEqual(t, startFen, position.Fen())

	undone := position.Undo()
	assert.Equal(t, move, undone)
	assert.Equal(t, startFen, position.Fen())
	assert.Equal(t, 0, position.PlyCount())
	assert.True(t, position.LastMove().IsEmpty())
}

func TestUndoWithoutApplyPanics(t *testing.T) {
	position := StartingPosition()
	assert.Panics(t, func() {
		position.Undo()
	})
}

func TestFoolsMate(t *testing.T) {
	position := StartingPosition()
	for _, uci := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		assert.False(t, position.IsOver())
		position.Apply(mustMove(t, position, uci))
	}

	assert.True(t, position.IsOver())
	assert.Equal(t, BlackWon, position.Result())
	assert.Equal(t, "0-1", position.Result().String())
	assert.Equal(t, 0, len(position.LegalMoves()))
}

func TestStalemateIsDrawn(t *testing.T) {
	position, err := PositionFromFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	assert.True(t, IsNil(err), err)

	assert.True(t, position.IsOver())
	assert.Equal(t, Drawn, position.Result())
}

func TestFivefoldRepetitionIsDrawn(t *testing.T) {
	position := StartingPosition()

	for cycle := 0; cycle < 4; cycle++ {
		assert.Equal(t, InProgress, position.Result(), cycle)
		for _, uci := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
			position.Apply(mustMove(t, position, uci))
		}
	}

	// the starting position has now occurred five times
	assert.Equal(t, Drawn, position.Result())
	assert.True(t, position.IsOver())
}

func TestRepetitionCountSurvivesUndo(t *testing.T) {
	position := StartingPosition()

	for cycle := 0; cycle < 8; cycle++ {
		for _, uci := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
			position.Apply(mustMove(t, position, uci))
		}
		for i := 0; i < 4; i++ {
			position.Undo()
		}
	}

	// undone explorations never count towards repetition
	assert.Equal(t, InProgress, position.Result())
}

func TestSeventyFiveMoveRuleIsDrawn(t *testing.T) {
	position, err := PositionFromFen("k7/8/8/8/8/8/8/K6R w - - 149 110")
	assert.True(t, IsNil(err), err)
	assert.Equal(t, InProgress, position.Result())

	position.Apply(mustMove(t, position, "h1h2"))
	assert.Equal(t, Drawn, position.Result())
	assert.True(t, position.IsOver())
}

func TestCheckmateBeatsTheHalfmoveClock(t *testing.T) {
	position, err := PositionFromFen("R5k1/5ppp/8/8/8/8/8/7K b - - 150 120")
	assert.True(t, IsNil(err), err)

	assert.Equal(t, WhiteWon, position.Result())
}

func TestPositionFromBadFen(t *testing.T) {
	_, err := PositionFromFen("not a fen")
	assert.False(t, IsNil(err))
}

func TestMoveHistory(t *testing.T) {
	position := StartingPosition()
	position.Apply(mustMove(t, position, "e2e4"))
	position.Apply(mustMove(t, position, "e7e5"))

	assert.Equal(t, []string{"e2e4", "e7e5"}, position.MoveHistory())
}
