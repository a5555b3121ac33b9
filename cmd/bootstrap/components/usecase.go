package components

import (
	"routine-checkout/internal/pkg/clock"
	"routine-checkout/internal/pkg/config"
	"routine-checkout/internal/usecase/commands"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewCheckoutCommands,
	),
)

func NewCheckoutCommands(
	affiliateRepo commands.AffiliateRepository,
	routineRepo commands.RoutineRepository,
	reservationRepo commands.ReservationRepository,
	statsRepo commands.StatsRepository,
	gateway commands.CartGateway,
	clk clock.Clock,
	cfg config.Config,
) commands.CheckoutCommands {
	return commands.NewCheckoutUseCase(
		affiliateRepo,
		routineRepo,
		reservationRepo,
		statsRepo,
		gateway,
		clk,
		cfg.Checkout.StaleLockWindow,
	)
}
