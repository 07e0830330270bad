package bootstrap

import (
	"fmt"

	"github.com/osse101/GuildPoints_Go/internal/account"
	"github.com/osse101/GuildPoints_Go/internal/attendance"
	"github.com/osse101/GuildPoints_Go/internal/clock"
	"github.com/osse101/GuildPoints_Go/internal/concurrency"
	"github.com/osse101/GuildPoints_Go/internal/config"
	"github.com/osse101/GuildPoints_Go/internal/event"
	"github.com/osse101/GuildPoints_Go/internal/ledger"
	"github.com/osse101/GuildPoints_Go/internal/redemption"
	"github.com/osse101/GuildPoints_Go/internal/repository"
	"github.com/osse101/GuildPoints_Go/internal/server"
	"github.com/osse101/GuildPoints_Go/internal/wager"
	"github.com/osse101/GuildPoints_Go/internal/worker"
)

// ServiceDependencies are the inputs shared by every economy service
type ServiceDependencies struct {
	Store   repository.Account
	Economy *config.Economy
	Cache   account.CacheConfig
	Bus     event.Bus
	Clock   clock.Clock
	Random  wager.Source
	Pool    *worker.Pool
}

// Services bundles the wired economy services and the daily reset worker
type Services struct {
	server.Services
	DailyResetWorker *worker.DailyResetWorker
}

// InitializeServices builds the account adapter and every service on top of it
func InitializeServices(deps ServiceDependencies) (*Services, error) {
	econ := deps.Economy
	if econ == nil {
		econ = config.DefaultEconomy()
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	rng := deps.Random
	if rng == nil {
		rng = wager.NewSource()
	}

	table, err := wager.NewTable(econ.Games)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedBuildGames, err)
	}
	coupons, err := redemption.NewCouponBook(econ.Coupons)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedBuildCoupons, err)
	}
	catalog, err := redemption.NewCatalog(econ.Catalog)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedBuildCatalog, err)
	}

	accounts := account.NewService(deps.Store, concurrency.NewLockManager(), deps.Cache)
	attendanceSvc := attendance.NewService(accounts, deps.Bus, clk, econ.Attendance)
	resetWorker := worker.NewDailyResetWorker(accounts, attendanceSvc, deps.Pool, deps.Bus, clk)

	return &Services{
		Services: server.Services{
			Accounts:   accounts,
			Ledger:     ledger.NewService(accounts, deps.Bus, clk, econ.DailyEarnLimit),
			Attendance: attendanceSvc,
			Wagers:     wager.NewResolver(accounts, table, rng, deps.Bus, clk, econ.DailyEarnLimit),
			Redemption: redemption.NewService(accounts, coupons, catalog, rng, deps.Bus, clk),
			DailyReset: resetWorker,
		},
		DailyResetWorker: resetWorker,
	}, nil
}
