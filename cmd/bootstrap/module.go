package bootstrap

import (
	"routine-checkout/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	LinkTokenModule,
	CommerceModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
