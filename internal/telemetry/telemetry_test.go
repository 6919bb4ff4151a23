package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	t.Setenv(envEndpoint, "")
	t.Setenv(envTracesEndpoint, "")

	shutdown, err := Setup(context.Background(), "  ")
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected a shutdown func")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("no-op shutdown returned error: %v", err)
	}
}

func TestTracerStartsSpans(t *testing.T) {
	_, span := Tracer("test").Start(context.Background(), "op")
	defer span.End()
	if span == nil {
		t.Fatal("expected a span from the global provider")
	}
}

// collector accepts OTLP/HTTP trace exports and counts them.
type collector struct {
	srv  *httptest.Server
	hits atomic.Int32
}

func newCollector(t *testing.T) *collector {
	t.Helper()
	c := &collector{}
	c.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == tracesPath {
			c.hits.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(c.srv.Close)
	return c
}

func keepGlobalProvider(t *testing.T) {
	t.Helper()
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
}

func TestSetupExportsSpans(t *testing.T) {
	cases := []struct {
		name     string
		endpoint func(c *collector) string
		env      func(c *collector) (string, string)
	}{
		{
			name:     "env base url",
			endpoint: func(*collector) string { return "" },
			env:      func(c *collector) (string, string) { return c.srv.URL, "" },
		},
		{
			name:     "env traces url",
			endpoint: func(*collector) string { return "" },
			env:      func(c *collector) (string, string) { return "", c.srv.URL + tracesPath },
		},
		{
			name:     "config url",
			endpoint: func(c *collector) string { return c.srv.URL },
			env:      func(*collector) (string, string) { return "", "" },
		},
		{
			name:     "config url with path",
			endpoint: func(c *collector) string { return c.srv.URL + tracesPath },
			env:      func(*collector) (string, string) { return "", "" },
		},
		{
			name:     "config host port",
			endpoint: func(c *collector) string { return c.srv.Listener.Addr().String() },
			env:      func(*collector) (string, string) { return "", "" },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			keepGlobalProvider(t)
			c := newCollector(t)
			base, traces := tc.env(c)
			t.Setenv(envEndpoint, base)
			t.Setenv(envTracesEndpoint, traces)

			ctx := context.Background()
			shutdown, err := Setup(ctx, tc.endpoint(c))
			require.NoError(t, err)

			_, span := Tracer("test").Start(ctx, "create-goal")
			span.End()

			require.NoError(t, shutdown(ctx))
			assert.GreaterOrEqual(t, c.hits.Load(), int32(1), "collector saw no trace export")
		})
	}
}

func TestSetupRejectsURLWithoutHost(t *testing.T) {
	keepGlobalProvider(t)
	_, err := Setup(context.Background(), "http://")
	assert.Error(t, err)
}
