package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	g := NewGame(reg)

	g.OnDealt("EQUAL", 1000)
	g.OnDealt("EQUAL", 500)
	g.OnOpened("EQUAL")

	assert.Equal(t, 2.0, testutil.ToFloat64(g.RoundsDealt.WithLabelValues("EQUAL")))
	assert.Equal(t, 1500.0, testutil.ToFloat64(g.AmountDealt.WithLabelValues("EQUAL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(g.EnvelopesOpened.WithLabelValues("EQUAL")))
	assert.Equal(t, 0.0, testutil.ToFloat64(g.RoundsDealt.WithLabelValues("WEIGHTED_RANDOM")))
}

func TestHandlerServesMetricsAndHealth(t *testing.T) {
	reg := prometheus.NewRegistry()
	g := NewGame(reg)
	g.OnDealt("DENOMINATION_RANDOM", 700000)

	srv := httptest.NewServer(Handler(reg, nil))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", string(body))

	res, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), `envelope_rounds_dealt_total{policy="DENOMINATION_RANDOM"} 1`)
}

func TestHandlerReportsUnhealthy(t *testing.T) {
	h := Handler(prometheus.NewRegistry(), func(ctx context.Context) error {
		return errors.New("stuck")
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy: stuck", rec.Body.String())
}
