package bootstrap

import (
	"routine-checkout/internal/infra/commerce"
	"routine-checkout/internal/pkg/config"
	"routine-checkout/internal/usecase/commands"

	"go.uber.org/fx"
)

var CommerceModule = fx.Module("commerce",
	fx.Provide(
		NewCommerceClient,
		fx.Annotate(
			NewCommerceGateway,
			fx.As(new(commands.CartGateway)),
		),
	),
)

func NewCommerceClient(cfg config.Config) *commerce.Client {
	return commerce.NewClient(cfg.Commerce)
}

func NewCommerceGateway(client *commerce.Client, cfg config.Config) *commerce.Gateway {
	return commerce.NewGateway(client, cfg.Commerce)
}
