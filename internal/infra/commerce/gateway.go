package commerce

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"routine-checkout/internal/pkg/config"
	"routine-checkout/internal/usecase/commands"

	"github.com/sony/gobreaker/v2"
)

// Gateway adapts the storefront client to the checkout use case and protects
// it with a circuit breaker. When the breaker is open, calls fail fast with a
// CircuitOpenError instead of attempting the network call.
type Gateway struct {
	client   *Client
	breaker  *gobreaker.CircuitBreaker[any]
	cooldown time.Duration
}

func NewGateway(client *Client, cfg config.CommerceConfig) *Gateway {
	settings := gobreaker.Settings{
		Name:    "storefront",
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			// Upstream input rejections are healthy responses, not outages.
			if err == nil {
				return true
			}
			var userErr *commands.UpstreamUserError
			return errors.As(err, &userErr)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String())
		},
	}

	return &Gateway{
		client:   client,
		breaker:  gobreaker.NewCircuitBreaker[any](settings),
		cooldown: cfg.BreakerCooldown,
	}
}

func (g *Gateway) CreateCart(ctx context.Context, in commands.CartInput) (*commands.CartSnapshot, error) {
	result, err := g.breaker.Execute(func() (any, error) {
		return g.client.CreateCart(ctx, in.VariantIDs, in.Attributes, in.Note, in.DiscountCodes)
	})
	if err != nil {
		return nil, g.classify(err)
	}

	cart, ok := result.(*cartPayload)
	if !ok || cart == nil {
		return nil, &commands.UpstreamUnknownError{Reason: "success response without cart"}
	}

	return &commands.CartSnapshot{ID: cart.ID, CheckoutURL: cart.CheckoutURL}, nil
}

func (g *Gateway) ValidateVariants(ctx context.Context, variantIDs []int64) error {
	_, err := g.breaker.Execute(func() (any, error) {
		return nil, g.client.ValidateVariants(ctx, variantIDs)
	})
	if err != nil {
		return g.classify(err)
	}
	return nil
}

func (g *Gateway) classify(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &commands.CircuitOpenError{RetryAfter: g.cooldown}
	}
	return err
}
