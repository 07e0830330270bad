package wager

import (
	"sync"
	"time"

	"github.com/osse101/GuildPoints_Go/internal/account"
	"github.com/osse101/GuildPoints_Go/internal/clock"
	"github.com/osse101/GuildPoints_Go/internal/config"
	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/event"
)

// scriptedSource replays queued values, then falls back to fixed defaults
type scriptedSource struct {
	mu           sync.Mutex
	floats       []float64
	ints         []int
	floatDefault float64
	intDefault   int
}

func (s *scriptedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.floats) == 0 {
		return s.floatDefault
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.intDefault
	if len(s.ints) > 0 {
		v = s.ints[0]
		s.ints = s.ints[1:]
	}
	return v % n
}

func alwaysWin() *scriptedSource  { return &scriptedSource{floatDefault: 0} }
func alwaysLose() *scriptedSource { return &scriptedSource{floatDefault: 0.999} }

// 2024-05-02 21:00 in UTC+9
var wagerTime = time.Date(2024, 5, 2, 21, 0, 0, 0, domain.EconomyLocation)

const wagerDay = "2024-05-02"

type resolverFixture struct {
	repo     *account.FakeRepository
	bus      *event.MemoryBus
	resolver Resolver
}

func defaultTable() *Table {
	table, err := NewTable(config.DefaultEconomy().Games)
	if err != nil {
		panic(err)
	}
	return table
}

func newResolverFixture(rng Source) *resolverFixture {
	repo := account.NewFakeRepository()
	bus := event.NewMemoryBus()
	accounts := account.NewService(repo, nil, account.DefaultCacheConfig())
	return &resolverFixture{
		repo:     repo,
		bus:      bus,
		resolver: NewResolver(accounts, defaultTable(), rng, bus, clock.NewSimulatedClock(wagerTime), domain.DefaultDailyEarnLimit),
	}
}
