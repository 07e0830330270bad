package wager

import "strings"

// draw is the sampled result of one wager before any balance change
type draw struct {
	won    bool
	result string
	reels  []string
}

// drawChoice samples a choice game once at the effective probability.
// The shown result always agrees with the outcome: a win shows the player's
// choice and a loss shows one of the other faces uniformly.
func drawChoice(g Game, choice string, rng Source) draw {
	if rng.Float64() < g.EffectiveWinProbability {
		return draw{won: true, result: choice}
	}

	others := make([]string, 0, len(g.Choices)-1)
	for _, c := range g.Choices {
		if c != choice {
			others = append(others, c)
		}
	}
	return draw{result: others[rng.IntN(len(others))]}
}

// drawSlots spins three uniform reels. A natural triple only pays after
// passing the acceptance roll; a rejected triple has its last reel moved to
// a different symbol so the display matches the loss.
func drawSlots(g Game, rng Source) draw {
	n := len(g.Symbols)
	idx := [3]int{rng.IntN(n), rng.IntN(n), rng.IntN(n)}

	won := false
	if idx[0] == idx[1] && idx[1] == idx[2] {
		if rng.Float64() < g.TripleAcceptance {
			won = true
		} else {
			idx[2] = (idx[2] + 1 + rng.IntN(n-1)) % n
		}
	}

	reels := []string{g.Symbols[idx[0]], g.Symbols[idx[1]], g.Symbols[idx[2]]}
	return draw{won: won, result: strings.Join(reels, " | "), reels: reels}
}
