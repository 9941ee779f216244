package payrail

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

func newTestStripeRail(t *testing.T, handler http.HandlerFunc) *StripeRail {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
	})
	return NewStripeRailWithClient(client.New("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend}))
}

func TestStripeRail_Transfer(t *testing.T) {
	var form url.Values
	var idem string
	rail := newTestStripeRail(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/transfers"))
		body, _ := io.ReadAll(r.Body)
		form, _ = url.ParseQuery(string(body))
		idem = r.Header.Get("Idempotency-Key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"tr_123","object":"transfer","amount":5220,"currency":"usd"}`))
	})

	res, err := rail.Transfer(context.Background(), TransferRequest{
		Amount:         decimal.RequireFromString("52.20"),
		Currency:       "USD",
		Destination:    "acct_florist",
		IdempotencyKey: "payout_o1_florist",
		TransferGroup:  "order_o1",
		Metadata:       map[string]string{"order_id": "o1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "tr_123", res.TransferID)
	assert.Equal(t, "5220", form.Get("amount"))
	assert.Equal(t, "usd", form.Get("currency"))
	assert.Equal(t, "acct_florist", form.Get("destination"))
	assert.Equal(t, "order_o1", form.Get("transfer_group"))
	assert.Equal(t, "o1", form.Get("metadata[order_id]"))
	assert.Equal(t, "payout_o1_florist", idem)
}

func TestStripeRail_TransferRejected(t *testing.T) {
	rail := newTestStripeRail(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"No such destination: acct_x"}}`))
	})

	_, err := rail.Transfer(context.Background(), TransferRequest{
		Amount:      decimal.RequireFromString("10.00"),
		Currency:    "usd",
		Destination: "acct_x",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No such destination")
}

func TestStripeRail_RejectsNonPositiveAmount(t *testing.T) {
	called := false
	rail := newTestStripeRail(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := rail.Transfer(context.Background(), TransferRequest{Amount: decimal.RequireFromString("0.004"), Destination: "acct"})
	assert.Error(t, err)
	assert.False(t, called)
}

func TestSimulatedRail_DeterministicIDs(t *testing.T) {
	rail := SimulatedRail{}
	a, err := rail.Transfer(context.Background(), TransferRequest{IdempotencyKey: "payout_o1_florist"})
	require.NoError(t, err)
	b, _ := rail.Transfer(context.Background(), TransferRequest{IdempotencyKey: "payout_o1_florist"})
	c, _ := rail.Transfer(context.Background(), TransferRequest{IdempotencyKey: "payout_o1_organization"})

	assert.True(t, strings.HasPrefix(a.TransferID, "sim_"))
	assert.Equal(t, a.TransferID, b.TransferID)
	assert.NotEqual(t, a.TransferID, c.TransferID)
}

func TestSimulatedRail_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := SimulatedRail{}.Transfer(ctx, TransferRequest{IdempotencyKey: "k"})
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingObserver struct {
	outcomes []bool
	rails    []string
}

func (r *recordingObserver) Observe(ctx context.Context, rail string, success bool) error {
	r.rails = append(r.rails, rail)
	r.outcomes = append(r.outcomes, success)
	return nil
}

func TestObservedRail_ReportsOutcomes(t *testing.T) {
	obs := &recordingObserver{}
	rail := ObservedRail{Rail: SimulatedRail{}, Observer: obs}

	_, err := rail.Transfer(context.Background(), TransferRequest{IdempotencyKey: "k"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = rail.Transfer(ctx, TransferRequest{IdempotencyKey: "k"})
	require.Error(t, err)

	assert.Equal(t, []bool{true, false}, obs.outcomes)
	assert.Equal(t, []string{"simulated", "simulated"}, obs.rails)
	assert.Equal(t, "simulated", rail.Name())
}
