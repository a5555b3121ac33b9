package bootstrap

import (
	"routine-checkout/internal/pkg/config"
	"routine-checkout/internal/pkg/token"

	"go.uber.org/fx"
)

var LinkTokenModule = fx.Module("linktoken",
	fx.Provide(
		NewLinkTokenService,
	),
)

func NewLinkTokenService(cfg config.Config) *token.Service {
	return token.NewService(cfg.LinkToken.Secret, cfg.LinkToken.Duration)
}
