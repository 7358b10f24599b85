package game

const Size = 8

// StateHash identifies a position, board contents and player to move.
type StateHash uint64

// Evaluates the game state to a score indicating how favorable the position
// is for the player to move. Higher is better for that player.
type Evaluate func(*State) float64
