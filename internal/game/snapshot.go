package game

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Phase    Phase
	Score    int
	Coins    int
	Distance int
	Speed    float64
	PlayerX  float64
	PlayerY  float64
	Barriers []Barrier
	LiveCoin int // Uncollected coins on the board
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	live := 0
	for _, c := range g.coins {
		if !c.Collected {
			live++
		}
	}

	barriers := make([]Barrier, len(g.barriers))
	copy(barriers, g.barriers)

	return Snapshot{
		Phase:    g.state.Phase(),
		Score:    g.state.Score,
		Coins:    g.state.Coins,
		Distance: g.state.Distance,
		Speed:    g.state.Speed,
		PlayerX:  g.player.X,
		PlayerY:  g.player.Y,
		Barriers: barriers,
		LiveCoin: live,
	}
}
