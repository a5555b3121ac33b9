package components

import (
	"routine-checkout/internal/handler"
	"routine-checkout/internal/handler/api"
	"routine-checkout/internal/handler/middleware"
	"routine-checkout/internal/pkg/clock"
	"routine-checkout/internal/pkg/config"
	"routine-checkout/internal/pkg/ratelimit"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCheckoutHandler,
		middleware.NewAttributionMiddleware,
		middleware.NewRateLimitMiddleware,
		fx.Annotate(
			NewKeyedLimiter,
			fx.As(new(ratelimit.Limiter)),
		),
	),
	fx.Invoke(handler.NewRouter),
)

func NewKeyedLimiter(cfg config.Config, clk clock.Clock) *ratelimit.KeyedLimiter {
	return ratelimit.NewKeyedLimiter(cfg.RateLimit, clk)
}
