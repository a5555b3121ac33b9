package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"routine-checkout/internal/pkg/config"
	"routine-checkout/internal/usecase/commands"
)

// Client is a thin HTTP client for the storefront cart API. Error
// classification lives here; resilience policy lives in the Gateway.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewClient(cfg config.CommerceConfig) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

type cartLine struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

type createCartRequest struct {
	Lines         []cartLine        `json:"lines"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	Note          string            `json:"note,omitempty"`
	DiscountCodes []string          `json:"discount_codes,omitempty"`
}

type cartPayload struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkout_url"`
}

type createCartResponse struct {
	Cart       *cartPayload                  `json:"cart"`
	UserErrors []commands.UpstreamFieldError `json:"user_errors"`
}

type validateVariantsRequest struct {
	VariantIDs []int64 `json:"variant_ids"`
}

type validateVariantsResponse struct {
	Missing []int64 `json:"missing"`
}

// CreateCart creates a cart with one line per variant id.
// A success response with neither cart nor user errors is an upstream
// invariant violation and is never surfaced as success.
func (c *Client) CreateCart(ctx context.Context, variantIDs []int64, attributes map[string]string, note string, discountCodes []string) (*cartPayload, error) {
	lines := make([]cartLine, 0, len(variantIDs))
	for _, id := range variantIDs {
		lines = append(lines, cartLine{VariantID: id, Quantity: 1})
	}

	var resp createCartResponse
	if err := c.post(ctx, "/api/storefront/carts", createCartRequest{
		Lines:         lines,
		Attributes:    attributes,
		Note:          note,
		DiscountCodes: discountCodes,
	}, &resp); err != nil {
		return nil, err
	}

	if len(resp.UserErrors) > 0 {
		return nil, &commands.UpstreamUserError{Errors: resp.UserErrors}
	}
	if resp.Cart == nil || resp.Cart.CheckoutURL == "" {
		return nil, &commands.UpstreamUnknownError{Reason: "success response without cart"}
	}

	return resp.Cart, nil
}

// ValidateVariants checks variant ids against the upstream catalog so stale
// or removed items fail before a cart-creation attempt is consumed.
func (c *Client) ValidateVariants(ctx context.Context, variantIDs []int64) error {
	var resp validateVariantsResponse
	if err := c.post(ctx, "/api/storefront/variants/validate", validateVariantsRequest{VariantIDs: variantIDs}, &resp); err != nil {
		return err
	}

	if len(resp.Missing) > 0 {
		fieldErrors := make([]commands.UpstreamFieldError, 0, len(resp.Missing))
		for _, id := range resp.Missing {
			fieldErrors = append(fieldErrors, commands.UpstreamFieldError{
				Field:   "variant_ids",
				Message: fmt.Sprintf("variant %d not found in catalog", id),
			})
		}
		return &commands.UpstreamUserError{Errors: fieldErrors}
	}

	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return &commands.UpstreamUnknownError{Reason: "failed to encode request: " + err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return &commands.UpstreamUnknownError{Reason: "failed to build request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Storefront-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeoutError(err) {
			return commands.ErrGatewayTimeout
		}
		return &commands.UpstreamUnknownError{Reason: err.Error()}
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &commands.UpstreamUnknownError{Reason: "failed to decode response: " + err.Error()}
		}
		return nil

	case resp.StatusCode == http.StatusUnprocessableEntity:
		var failure createCartResponse
		if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil && len(failure.UserErrors) > 0 {
			return &commands.UpstreamUserError{Errors: failure.UserErrors}
		}
		return &commands.UpstreamUserError{Errors: []commands.UpstreamFieldError{{Field: "request", Message: "rejected by storefront"}}}

	default:
		return &commands.UpstreamUnknownError{Reason: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}
}

func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
