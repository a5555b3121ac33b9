//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

// FakeStorefront stands in for the upstream cart API. Behavior is mutable per
// test: mark variants missing, force failures, or slow nothing down.
type FakeStorefront struct {
	mu            sync.Mutex
	server        *httptest.Server
	missing       map[int64]bool
	failRemaining int
	cartCounter   int
	cartRequests  []map[string]any
}

func NewFakeStorefront() *FakeStorefront {
	f := &FakeStorefront{missing: map[int64]bool{}}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/storefront/carts", f.handleCreateCart)
	mux.HandleFunc("/api/storefront/variants/validate", f.handleValidate)
	f.server = httptest.NewServer(mux)
	return f
}

func (f *FakeStorefront) URL() string {
	return f.server.URL
}

func (f *FakeStorefront) Close() {
	f.server.Close()
}

// Reset restores default behavior (every variant exists, requests succeed).
func (f *FakeStorefront) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.missing = map[int64]bool{}
	f.failRemaining = 0
	f.cartRequests = nil
}

func (f *FakeStorefront) MarkVariantMissing(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.missing[id] = true
}

// FailNext makes the next n requests return HTTP 500.
func (f *FakeStorefront) FailNext(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failRemaining = n
}

func (f *FakeStorefront) CartRequestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cartRequests)
}

func (f *FakeStorefront) takeFailure() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRemaining > 0 {
		f.failRemaining--
		return true
	}
	return false
}

func (f *FakeStorefront) handleCreateCart(w http.ResponseWriter, r *http.Request) {
	if f.takeFailure() {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.cartRequests = append(f.cartRequests, body)
	f.cartCounter++
	cartID := fmt.Sprintf("fake-cart-%d", f.cartCounter)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"cart": map[string]any{
			"id":           cartID,
			"checkout_url": "https://fake.shop/checkout/" + cartID,
		},
	})
}

func (f *FakeStorefront) handleValidate(w http.ResponseWriter, r *http.Request) {
	if f.takeFailure() {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	var req struct {
		VariantIDs []int64 `json:"variant_ids"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	missing := []int64{}
	for _, id := range req.VariantIDs {
		if f.missing[id] {
			missing = append(missing, id)
		}
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"missing": missing})
}
