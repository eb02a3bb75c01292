package bot

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerfectStrategy_Openings(t *testing.T) {
	perfect := NewPerfect()

	t.Run("Opens in the top left corner", func(t *testing.T) {
		// Given: an empty grid
		var grid entity.Grid

		// When: moving first
		move, err := perfect.NextMove(&grid, entity.PlayerX)

		// Then: the opening is always (0, 0)
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, move)
	})

	t.Run("Replies with the center", func(t *testing.T) {
		// Given: the opponent opened on a corner
		var grid entity.Grid
		placeAll(&grid, entity.PlayerX, entity.Move{Row: 0, Col: 2})

		// When: moving second
		move, err := perfect.NextMove(&grid, entity.PlayerO)

		// Then: the reply takes the center
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 1, Col: 1}, move)
	})

	t.Run("Replies with a corner when the center opened", func(t *testing.T) {
		// Given: the opponent opened on the center
		var grid entity.Grid
		placeAll(&grid, entity.PlayerX, entity.Move{Row: 1, Col: 1})

		// When: moving second
		move, err := perfect.NextMove(&grid, entity.PlayerO)

		// Then: the reply takes the first free corner
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, move)
	})

	t.Run("Second move takes the corner opposite an unblocked edge pair", func(t *testing.T) {
		// Given: our corner opening and a far-edge reply
		var grid entity.Grid
		placeAll(&grid, entity.PlayerX, entity.Move{Row: 0, Col: 0})
		placeAll(&grid, entity.PlayerO, entity.Move{Row: 2, Col: 1})

		// When: developing the opening
		move, err := perfect.NextMove(&grid, entity.PlayerX)

		// Then: the edge pair flanking (0,0) is free, so play (2,2)
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 2, Col: 2}, move)
	})

	t.Run("Second move skips edge pairs the reply blocked", func(t *testing.T) {
		// Given: a reply on (0,1), which blocks the first two edge pairs
		var grid entity.Grid
		placeAll(&grid, entity.PlayerX, entity.Move{Row: 0, Col: 0})
		placeAll(&grid, entity.PlayerO, entity.Move{Row: 0, Col: 1})

		// When: developing the opening
		move, err := perfect.NextMove(&grid, entity.PlayerX)

		// Then: the remaining pair picks (0,2)
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, move)
	})

	t.Run("Second move mirrors the opening corner through a taken center", func(t *testing.T) {
		// Given: the opponent replied on the center
		var grid entity.Grid
		placeAll(&grid, entity.PlayerX, entity.Move{Row: 0, Col: 0})
		placeAll(&grid, entity.PlayerO, entity.Move{Row: 1, Col: 1})

		// When: developing the opening
		move, err := perfect.NextMove(&grid, entity.PlayerX)

		// Then: the mirrored corner is (2,2)
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 2, Col: 2}, move)
	})
}

func TestPerfectStrategy_Defense(t *testing.T) {
	perfect := NewPerfect()

	t.Run("Blocks an imminent win first", func(t *testing.T) {
		// Given: the opponent threatens the top row
		var grid entity.Grid
		placeAll(&grid, entity.PlayerX, entity.Move{Row: 0, Col: 0}, entity.Move{Row: 0, Col: 1})
		placeAll(&grid, entity.PlayerO, entity.Move{Row: 1, Col: 1})

		// When: defending on our second move
		move, err := perfect.NextMove(&grid, entity.PlayerO)

		// Then: the block lands on (0,2)
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, move)
	})

	t.Run("Breaks a middle row fork with a corner", func(t *testing.T) {
		// Given: the opponent holds both ends of the middle row around our center
		var grid entity.Grid
		placeAll(&grid, entity.PlayerX, entity.Move{Row: 1, Col: 0}, entity.Move{Row: 1, Col: 2})
		placeAll(&grid, entity.PlayerO, entity.Move{Row: 1, Col: 1})

		// When: defending on our second move
		move, err := perfect.NextMove(&grid, entity.PlayerO)

		// Then: a corner breaks the fork
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, move)
	})

	t.Run("Breaks a middle column fork with a corner", func(t *testing.T) {
		// Given: the opponent holds both ends of the middle column around our center
		var grid entity.Grid
		placeAll(&grid, entity.PlayerX, entity.Move{Row: 0, Col: 1}, entity.Move{Row: 2, Col: 1})
		placeAll(&grid, entity.PlayerO, entity.Move{Row: 1, Col: 1})

		// When: defending on our second move
		move, err := perfect.NextMove(&grid, entity.PlayerO)

		// Then: a corner breaks the fork
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, move)
	})

	t.Run("Falls back to an edge against a center and corner pair", func(t *testing.T) {
		// Given: the opponent holds the center and the far corner
		var grid entity.Grid
		placeAll(&grid, entity.PlayerX, entity.Move{Row: 1, Col: 1}, entity.Move{Row: 2, Col: 2})
		placeAll(&grid, entity.PlayerO, entity.Move{Row: 0, Col: 0})

		// When: defending on our second move
		move, err := perfect.NextMove(&grid, entity.PlayerO)

		// Then: the first free edge is taken
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 1}, move)
	})
}

func TestPerfectStrategy_Attack(t *testing.T) {
	perfect := NewPerfect()

	t.Run("Completes an open diagonal outright", func(t *testing.T) {
		// Given: our two corners with the diagonal still open
		var grid entity.Grid
		placeAll(&grid, entity.PlayerX, entity.Move{Row: 0, Col: 0}, entity.Move{Row: 2, Col: 2})
		placeAll(&grid, entity.PlayerO, entity.Move{Row: 0, Col: 1}, entity.Move{Row: 1, Col: 0})

		// When: attacking on our third move
		move, err := perfect.NextMove(&grid, entity.PlayerX)

		// Then: the center completes the diagonal
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 1, Col: 1}, move)
	})

	t.Run("Forks through the junction corner", func(t *testing.T) {
		// Given: our two corners on the top row, the row itself blocked
		var grid entity.Grid
		placeAll(&grid, entity.PlayerX, entity.Move{Row: 0, Col: 0}, entity.Move{Row: 0, Col: 2})
		placeAll(&grid, entity.PlayerO, entity.Move{Row: 0, Col: 1}, entity.Move{Row: 1, Col: 2})

		// When: attacking on our third move
		move, err := perfect.NextMove(&grid, entity.PlayerX)

		// Then: (2,0) opens threats on the first column and the anti diagonal
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 2, Col: 0}, move)
	})

	t.Run("Blocks when the opponent owns the center", func(t *testing.T) {
		// Given: the opponent holds the center and threatens the middle column
		var grid entity.Grid
		placeAll(&grid, entity.PlayerX, entity.Move{Row: 0, Col: 0}, entity.Move{Row: 2, Col: 2})
		placeAll(&grid, entity.PlayerO, entity.Move{Row: 1, Col: 1}, entity.Move{Row: 0, Col: 1})

		// When: attacking on our third move
		move, err := perfect.NextMove(&grid, entity.PlayerX)

		// Then: the threat on (2,1) is blocked
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 2, Col: 1}, move)
	})

	t.Run("Wins before blocking when the opponent owns the center", func(t *testing.T) {
		// Given: our open first column against the opponent's center and corner
		var grid entity.Grid
		placeAll(&grid, entity.PlayerX, entity.Move{Row: 0, Col: 0}, entity.Move{Row: 2, Col: 0})
		placeAll(&grid, entity.PlayerO, entity.Move{Row: 1, Col: 1}, entity.Move{Row: 2, Col: 2})

		// When: attacking on our third move
		move, err := perfect.NextMove(&grid, entity.PlayerX)

		// Then: the winning (1,0) beats any block
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 1, Col: 0}, move)
	})
}

func TestPerfectStrategy_Endgame(t *testing.T) {
	perfect := NewPerfect()

	t.Run("Takes the win over the block", func(t *testing.T) {
		// Given: both sides one move from a full line
		var grid entity.Grid
		placeAll(&grid, entity.PlayerO, entity.Move{Row: 0, Col: 1}, entity.Move{Row: 1, Col: 1})
		placeAll(&grid, entity.PlayerX,
			entity.Move{Row: 0, Col: 0}, entity.Move{Row: 1, Col: 0}, entity.Move{Row: 2, Col: 2},
		)

		// When: moving for O
		move, err := perfect.NextMove(&grid, entity.PlayerO)

		// Then: O completes its own column instead of blocking
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 2, Col: 1}, move)
	})

	t.Run("Blocks the opposing near win", func(t *testing.T) {
		// Given: the opponent threatens the top row, we have no win
		var grid entity.Grid
		placeAll(&grid, entity.PlayerX, entity.Move{Row: 1, Col: 0}, entity.Move{Row: 2, Col: 2})
		placeAll(&grid, entity.PlayerO,
			entity.Move{Row: 0, Col: 0}, entity.Move{Row: 0, Col: 1}, entity.Move{Row: 1, Col: 2},
		)

		// When: moving for X
		move, err := perfect.NextMove(&grid, entity.PlayerX)

		// Then: the block lands on (0,2)
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, move)
	})

	t.Run("Plays a legal move when no line is threatened", func(t *testing.T) {
		// Given: a quiet position with no near wins
		var grid entity.Grid
		placeAll(&grid, entity.PlayerX,
			entity.Move{Row: 0, Col: 0}, entity.Move{Row: 1, Col: 2}, entity.Move{Row: 2, Col: 1},
		)
		placeAll(&grid, entity.PlayerO, entity.Move{Row: 0, Col: 2}, entity.Move{Row: 1, Col: 0})

		// When: moving for O
		move, err := perfect.NextMove(&grid, entity.PlayerO)

		// Then: the move lands on one of the remaining empty cells
		require.NoError(t, err)
		cell, err := grid.Cell(move.Row, move.Col)
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, cell)
	})
}

func TestPerfectStrategy_Deterministic(t *testing.T) {
	t.Run("The same position always yields the same move", func(t *testing.T) {
		// Given: a mid-game position away from the random fallback
		var grid entity.Grid
		placeAll(&grid, entity.PlayerX, entity.Move{Row: 0, Col: 0}, entity.Move{Row: 2, Col: 2})
		placeAll(&grid, entity.PlayerO, entity.Move{Row: 1, Col: 1}, entity.Move{Row: 0, Col: 1})

		perfect := NewPerfect()

		// When: asking twice
		first, err := perfect.NextMove(&grid, entity.PlayerX)
		require.NoError(t, err)
		second, err := perfect.NextMove(&grid, entity.PlayerX)
		require.NoError(t, err)

		// Then: both calls agree and the grid is untouched
		assert.Equal(t, first, second)
		assert.Equal(t, 4, grid.CellCount())
	})
}

func TestPerfectStrategy_SelfPlay(t *testing.T) {
	t.Run("Two perfect engines always draw", func(t *testing.T) {
		for _, starting := range []entity.Mark{entity.PlayerX, entity.PlayerO} {
			// Given: one perfect engine driving both seats
			game := entity.NewGameStartingWith(starting)
			perfect := NewPerfect()

			// When: playing the game out
			for !game.IsFinished() {
				move, err := perfect.NextMove(&game.Grid, game.Turn)
				require.NoError(t, err)
				require.NoError(t, game.TryMove(move.Row, move.Col))
			}

			// Then: the grid fills with no winner
			assert.Equal(t, entity.EmptyCell, game.Winner())
			assert.True(t, game.Grid.IsFull())
			assert.Equal(t, entity.PlayerTie, game.Result())
		}
	})
}

func TestPerfectStrategy_VersusRandom(t *testing.T) {
	t.Run("Full games against a random opponent stay legal", func(t *testing.T) {
		perfect := NewPerfect()
		random := NewRandom()

		for round := 0; round < 50; round++ {
			// Given: perfect and random alternating seats between rounds
			game := entity.NewGame()
			strategies := map[entity.Mark]Strategy{entity.PlayerX: perfect, entity.PlayerO: random}
			if round%2 == 1 {
				strategies = map[entity.Mark]Strategy{entity.PlayerX: random, entity.PlayerO: perfect}
			}

			// When: playing the game out
			moves := 0
			for !game.IsFinished() {
				move, err := strategies[game.Turn].NextMove(&game.Grid, game.Turn)
				require.NoError(t, err)

				// Then: every produced move is applicable as-is
				require.NoError(t, game.TryMove(move.Row, move.Col))
				moves++
			}

			assert.LessOrEqual(t, moves, entity.GridSize*entity.GridSize)
			assert.True(t, game.IsFinished())
		}
	})
}
