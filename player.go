package bimatrix

// Player represents the identity of a player in the game.
// Player0 chooses the row, Player1 chooses the column.
type Player uint8

const (
	Player0 Player = iota
	Player1
)

var playerStr = [...]string{
	"Player0",
	"Player1",
}

func (p Player) String() string {
	return playerStr[p]
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	return 1 - p
}
