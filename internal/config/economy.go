package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/validation"
)

// Economy holds the static tables of the point economy
type Economy struct {
	DailyEarnLimit    int64             `yaml:"daily_earn_limit"`
	WeeklyBonusAmount int64             `yaml:"weekly_bonus_amount"`
	Attendance        AttendanceConfig  `yaml:"attendance"`
	Games             []GameConfig      `yaml:"games"`
	Coupons           []domain.Coupon   `yaml:"coupons"`
	Catalog           []domain.ShopItem `yaml:"catalog"`
}

// AttendanceConfig defines check-in grants
type AttendanceConfig struct {
	BasePoints    int64         `yaml:"base_points"`
	StreakBonuses []StreakBonus `yaml:"streak_bonuses"`
}

// StreakBonus grants Points whenever the streak is a multiple of Every
type StreakBonus struct {
	Every  int   `yaml:"every"`
	Points int64 `yaml:"points"`
}

// GameConfig is one row of the wager table
type GameConfig struct {
	Key                     string   `yaml:"key"`
	Name                    string   `yaml:"name"`
	Choices                 []string `yaml:"choices"`
	Symbols                 []string `yaml:"symbols"` // slots reels
	FairWinProbability      float64  `yaml:"fair_win_probability"`
	EffectiveWinProbability float64  `yaml:"effective_win_probability"`
	TripleAcceptance        float64  `yaml:"triple_acceptance"` // slots only
	PayoutMultiple          int64    `yaml:"payout_multiple"`
	MinBet                  int64    `yaml:"min_bet"`
	MaxBet                  int64    `yaml:"max_bet"`
	BetUnit                 int64    `yaml:"bet_unit"`
}

// Default bet bounds
const (
	DefaultMinBet  = 100
	DefaultMaxBet  = 1000
	DefaultBetUnit = 100
)

// DefaultEconomy returns the built-in tables used when no economy file exists
func DefaultEconomy() *Economy {
	econ := &Economy{
		DailyEarnLimit:    domain.DefaultDailyEarnLimit,
		WeeklyBonusAmount: domain.DefaultWeeklyBonusAmount,
		Attendance:        defaultAttendance(),
		Games:             defaultGames(),
		Coupons: []domain.Coupon{
			{Code: "WELCOME", Amount: 1000},
			{Code: "LUCKYBOX", Choices: []int64{100, 500, 1000, 3000}},
		},
		Catalog: []domain.ShopItem{
			{Name: "치킨", Price: 30000},
			{Name: "500만 메소", Price: 30000},
			{Name: "피자", Price: 45000},
			{Name: "족발", Price: 60000},
			{Name: "길드 명찰", Price: 10000},
		},
	}
	econ.applyDefaults()
	return econ
}

func defaultAttendance() AttendanceConfig {
	return AttendanceConfig{
		BasePoints: domain.DefaultAttendanceBase,
		StreakBonuses: []StreakBonus{
			{Every: 7, Points: 500},
			{Every: 30, Points: 3000},
		},
	}
}

func defaultGames() []GameConfig {
	return []GameConfig{
		{
			Key: domain.GameOddEven, Name: "홀짝", Choices: []string{"odd", "even"},
			FairWinProbability: 0.5, EffectiveWinProbability: 0.48, PayoutMultiple: 2,
		},
		{
			Key: domain.GameDice, Name: "주사위", Choices: []string{"1", "2", "3", "4", "5", "6"},
			FairWinProbability: 0.1667, EffectiveWinProbability: 0.158, PayoutMultiple: 6,
		},
		{
			Key: domain.GameHorse, Name: "경마", Choices: []string{"1", "2", "3", "4"},
			FairWinProbability: 0.25, EffectiveWinProbability: 0.2375, PayoutMultiple: 4,
		},
		{
			Key: domain.GameSlots, Name: "슬롯", Symbols: []string{"cherry", "lemon", "bell", "clover", "seven"},
			FairWinProbability: 0.04, TripleAcceptance: 0.9, PayoutMultiple: 7,
		},
	}
}

// LoadEconomy reads the economy file at path and validates it against schemaPath.
// A missing file yields DefaultEconomy.
func LoadEconomy(path, schemaPath string) (*Economy, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Economy config not found, using built-in tables", "path", path)
		econ := DefaultEconomy()
		return econ, econ.Validate()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read economy config %s: %w", path, err)
	}

	if schemaPath != "" {
		if err := validation.NewSchemaValidator().ValidateYAML(data, schemaPath); err != nil {
			return nil, fmt.Errorf("economy config %s: %w", path, err)
		}
	}

	return ParseEconomy(data)
}

// ParseEconomy decodes YAML tables, fills omitted values and checks cross-field rules
func ParseEconomy(data []byte) (*Economy, error) {
	var econ Economy
	if err := yaml.Unmarshal(data, &econ); err != nil {
		return nil, fmt.Errorf("failed to parse economy config: %w", err)
	}

	econ.applyDefaults()
	if err := econ.Validate(); err != nil {
		return nil, err
	}
	return &econ, nil
}

func (e *Economy) applyDefaults() {
	if e.DailyEarnLimit == 0 {
		e.DailyEarnLimit = domain.DefaultDailyEarnLimit
	}
	if e.WeeklyBonusAmount == 0 {
		e.WeeklyBonusAmount = domain.DefaultWeeklyBonusAmount
	}
	if e.Attendance.BasePoints == 0 && len(e.Attendance.StreakBonuses) == 0 {
		e.Attendance = defaultAttendance()
	}
	if len(e.Games) == 0 {
		e.Games = defaultGames()
	}

	for i := range e.Games {
		g := &e.Games[i]
		if g.Name == "" {
			g.Name = g.Key
		}
		if g.MinBet == 0 {
			g.MinBet = DefaultMinBet
		}
		if g.MaxBet == 0 {
			g.MaxBet = DefaultMaxBet
		}
		if g.BetUnit == 0 {
			g.BetUnit = DefaultBetUnit
		}
		if g.Key == domain.GameSlots {
			if g.FairWinProbability == 0 {
				g.FairWinProbability = g.tripleProbability()
			}
			switch {
			case g.TripleAcceptance == 0 && g.EffectiveWinProbability == 0:
				g.TripleAcceptance = 1
			case g.TripleAcceptance == 0 && g.FairWinProbability > 0:
				g.TripleAcceptance = g.EffectiveWinProbability / g.FairWinProbability
			}
			if g.EffectiveWinProbability == 0 {
				g.EffectiveWinProbability = g.FairWinProbability * g.TripleAcceptance
			}
			continue
		}
		if g.FairWinProbability == 0 && len(g.Choices) > 0 {
			g.FairWinProbability = 1 / float64(len(g.Choices))
		}
		if g.EffectiveWinProbability == 0 {
			g.EffectiveWinProbability = g.FairWinProbability
		}
	}

	for i := range e.Coupons {
		e.Coupons[i].Code = domain.NormalizeCouponCode(e.Coupons[i].Code)
	}
}

// Validate checks rules the schema cannot express
func (e *Economy) Validate() error {
	if e.DailyEarnLimit <= 0 {
		return fmt.Errorf("%w: daily_earn_limit must be positive", domain.ErrInvalidInput)
	}

	seenGames := make(map[string]bool, len(e.Games))
	for _, g := range e.Games {
		if seenGames[g.Key] {
			return fmt.Errorf("%w: duplicate game %q", domain.ErrInvalidInput, g.Key)
		}
		seenGames[g.Key] = true

		if err := g.validate(); err != nil {
			return err
		}
	}

	seenCodes := make(map[string]bool, len(e.Coupons))
	for _, c := range e.Coupons {
		if c.Code == "" {
			return fmt.Errorf("%w: coupon code must not be empty", domain.ErrInvalidInput)
		}
		if seenCodes[c.Code] {
			return fmt.Errorf("%w: duplicate coupon %q", domain.ErrInvalidInput, c.Code)
		}
		seenCodes[c.Code] = true

		if c.Amount <= 0 && len(c.Choices) == 0 {
			return fmt.Errorf("%w: coupon %q needs an amount or choices", domain.ErrInvalidInput, c.Code)
		}
		for _, v := range c.Choices {
			if v <= 0 {
				return fmt.Errorf("%w: coupon %q has a non-positive choice", domain.ErrInvalidInput, c.Code)
			}
		}
	}

	seenItems := make(map[string]bool, len(e.Catalog))
	for _, item := range e.Catalog {
		name := strings.TrimSpace(item.Name)
		if name == "" || item.Price <= 0 {
			return fmt.Errorf("%w: catalog item %q needs a name and a positive price", domain.ErrInvalidInput, item.Name)
		}
		if seenItems[name] {
			return fmt.Errorf("%w: duplicate catalog item %q", domain.ErrInvalidInput, name)
		}
		seenItems[name] = true
	}

	return nil
}

func (g GameConfig) validate() error {
	switch g.Key {
	case domain.GameOddEven, domain.GameDice, domain.GameHorse:
		if len(g.Choices) < 2 {
			return fmt.Errorf("%w: game %q needs at least two choices", domain.ErrInvalidInput, g.Key)
		}
	case domain.GameSlots:
		if len(g.Symbols) < 2 {
			return fmt.Errorf("%w: slots needs at least two symbols", domain.ErrInvalidInput)
		}
		if g.TripleAcceptance < 0 || g.TripleAcceptance > 1 {
			return fmt.Errorf("%w: slots triple_acceptance must be within [0,1]", domain.ErrInvalidInput)
		}
		if fair := g.tripleProbability(); math.Abs(g.FairWinProbability-fair) > probabilityTolerance {
			return fmt.Errorf("%w: slots fair_win_probability %g does not match %d symbols (%g)",
				domain.ErrInvalidInput, g.FairWinProbability, len(g.Symbols), fair)
		}
		if want := g.FairWinProbability * g.TripleAcceptance; math.Abs(g.EffectiveWinProbability-want) > probabilityTolerance {
			return fmt.Errorf("%w: slots effective_win_probability %g conflicts with triple_acceptance %g (%g)",
				domain.ErrInvalidInput, g.EffectiveWinProbability, g.TripleAcceptance, want)
		}
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownGame, g.Key)
	}

	if g.PayoutMultiple < 1 {
		return fmt.Errorf("%w: game %q payout_multiple must be at least 1", domain.ErrInvalidInput, g.Key)
	}
	if g.EffectiveWinProbability < 0 || g.EffectiveWinProbability > 1 {
		return fmt.Errorf("%w: game %q effective_win_probability must be within [0,1]", domain.ErrInvalidInput, g.Key)
	}
	if g.BetUnit <= 0 || g.MinBet <= 0 || g.MinBet > g.MaxBet {
		return fmt.Errorf("%w: game %q has invalid bet bounds", domain.ErrInvalidInput, g.Key)
	}
	if g.MinBet%g.BetUnit != 0 || g.MaxBet%g.BetUnit != 0 {
		return fmt.Errorf("%w: game %q bet bounds must be multiples of bet_unit", domain.ErrInvalidInput, g.Key)
	}
	return nil
}

// probabilityTolerance absorbs float noise in hand-written probabilities
const probabilityTolerance = 1e-6

// tripleProbability is the chance that three uniform reels land on the same symbol
func (g GameConfig) tripleProbability() float64 {
	if len(g.Symbols) == 0 {
		return 0
	}
	n := float64(len(g.Symbols))
	return 1 / (n * n)
}

// Game returns the table row for key
func (e *Economy) Game(key string) (GameConfig, bool) {
	for _, g := range e.Games {
		if g.Key == key {
			return g, true
		}
	}
	return GameConfig{}, false
}
