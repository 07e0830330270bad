package wager

import (
	"fmt"
	"sort"
	"strings"

	"github.com/osse101/GuildPoints_Go/internal/config"
	"github.com/osse101/GuildPoints_Go/internal/domain"
)

// choiceAliases maps accepted spellings to canonical choices
var choiceAliases = map[string]string{
	"홀": "odd",
	"짝": "even",
}

// Game is one row of the wager table
type Game struct {
	config.GameConfig
}

// IsSlots reports whether the game spins reels instead of taking a choice
func (g Game) IsSlots() bool {
	return g.Key == domain.GameSlots
}

// NormalizeChoice validates choice against the game and returns its canonical form.
// Slots ignore the choice.
func (g Game) NormalizeChoice(choice string) (string, error) {
	if g.IsSlots() {
		return "", nil
	}

	c := strings.ToLower(strings.TrimSpace(choice))
	if alias, ok := choiceAliases[c]; ok {
		c = alias
	}
	for _, valid := range g.Choices {
		if c == valid {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not one of %s for %s",
		domain.ErrInvalidChoice, choice, strings.Join(g.Choices, ", "), g.Key)
}

// ValidateBet checks the bounds and unit of a bet
func (g Game) ValidateBet(amount int64) error {
	if amount < g.MinBet || amount > g.MaxBet || amount%g.BetUnit != 0 {
		return fmt.Errorf("%w: %d must be between %d and %d in steps of %d",
			domain.ErrInvalidBetAmount, amount, g.MinBet, g.MaxBet, g.BetUnit)
	}
	return nil
}

// Info returns the listing view of the game
func (g Game) Info() domain.GameInfo {
	choices := g.Choices
	if g.IsSlots() {
		choices = nil
	}
	return domain.GameInfo{
		Key:                     g.Key,
		Name:                    g.Name,
		Choices:                 choices,
		FairWinProbability:      g.FairWinProbability,
		EffectiveWinProbability: g.EffectiveWinProbability,
		PayoutMultiple:          g.PayoutMultiple,
		MinBet:                  g.MinBet,
		MaxBet:                  g.MaxBet,
		BetUnit:                 g.BetUnit,
	}
}

// Table holds every configured game by key
type Table struct {
	games map[string]Game
}

// NewTable builds a table from configuration rows
func NewTable(rows []config.GameConfig) (*Table, error) {
	t := &Table{games: make(map[string]Game, len(rows))}
	for _, row := range rows {
		if _, dup := t.games[row.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate game %q", domain.ErrInvalidInput, row.Key)
		}
		if row.BetUnit <= 0 {
			return nil, fmt.Errorf("%w: game %q has no bet unit", domain.ErrInvalidInput, row.Key)
		}
		t.games[row.Key] = Game{GameConfig: row}
	}
	return t, nil
}

// Lookup returns the game for key
func (t *Table) Lookup(key string) (Game, error) {
	g, ok := t.games[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Game{}, fmt.Errorf("%w: %q", domain.ErrUnknownGame, key)
	}
	return g, nil
}

// Infos lists the games sorted by key
func (t *Table) Infos() []domain.GameInfo {
	infos := make([]domain.GameInfo, 0, len(t.games))
	for _, g := range t.games {
		infos = append(infos, g.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos
}
