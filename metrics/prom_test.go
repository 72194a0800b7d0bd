package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func gaugeValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		m := mf.GetMetric()
		require.Len(t, m, 1)
		if g := m[0].GetGauge(); g != nil {
			return g.GetValue()
		}
		if c := m[0].GetCounter(); c != nil {
			return c.GetValue()
		}
	}
	t.Fatalf("metric %q not found", name)
	return 0
}

func TestPromProvider_Counter(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	p := NewPromProvider(reg)

	c := p.Counter("dispatch_tasks_total", WithDescription("Tasks admitted."))
	c.Add(3)
	// Same name must reuse the registered collector instead of panicking.
	p.Counter("dispatch_tasks_total").Add(1)

	require.InDelta(t, 4, gaugeValue(t, reg, "dispatch_tasks_total"), 1e-9)
}

func TestPromProvider_UpDownCounter(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	p := NewPromProvider(reg)

	g := p.UpDownCounter("dispatch_inflight")
	g.Add(2)
	g.Add(-1)

	require.InDelta(t, 1, gaugeValue(t, reg, "dispatch_inflight"), 1e-9)
}

func TestPromProvider_Histogram(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	p := NewPromProvider(reg)

	h := p.Histogram("dispatch_task_seconds", WithUnit("seconds"))
	h.Record(0.25)
	h.Record(0.75)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 1)
	hist := mfs[0].GetMetric()[0].GetHistogram()
	require.EqualValues(t, 2, hist.GetSampleCount())
	require.InDelta(t, 1.0, hist.GetSampleSum(), 1e-9)
}
