package entity

// Mark - the symbol a player keeps for the whole game.
type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""
)

// PlayerTie - the winner value recorded for a game that ended without one.
const PlayerTie = "-"

// Opposite - returns the other player's mark.
func (that Mark) Opposite() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}
