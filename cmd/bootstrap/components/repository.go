package components

import (
	"routine-checkout/internal/infra"
	"routine-checkout/internal/infra/readstore"
	"routine-checkout/internal/infra/writerepo"
	"routine-checkout/internal/usecase/commands"
	"routine-checkout/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			readstore.NewAffiliateReadStore,
			fx.As(new(commands.AffiliateRepository)),
		),
		fx.Annotate(
			readstore.NewRoutineReadStore,
			fx.As(new(commands.RoutineRepository)),
		),
		fx.Annotate(
			writerepo.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
		),
		fx.Annotate(
			writerepo.NewStatsRepository,
			fx.As(new(commands.StatsRepository)),
		),
		// Read-side store for queries
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.CheckoutQueries)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) infra.DBTX {
	return pool
}
