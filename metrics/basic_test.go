package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasicProvider_InstrumentsReusedByName(t *testing.T) {
	t.Parallel()

	p := NewBasicProvider()
	c1 := p.Counter("tasks")
	c2 := p.Counter("tasks")
	require.Same(t, c1, c2)

	c1.Add(2)
	c2.Add(3)
	require.EqualValues(t, 5, p.CounterValue("tasks"))
}

func TestBasicProvider_UpDown(t *testing.T) {
	t.Parallel()

	p := NewBasicProvider()
	u := p.UpDownCounter("inflight")
	u.Add(3)
	u.Add(-2)
	require.EqualValues(t, 1, p.UpDownValue("inflight"))
}

func TestBasicProvider_MissingInstrumentsReadZero(t *testing.T) {
	t.Parallel()

	p := NewBasicProvider()
	require.Zero(t, p.CounterValue("absent"))
	require.Zero(t, p.UpDownValue("absent"))
}

func TestBasicHistogram_Snapshot(t *testing.T) {
	t.Parallel()

	h := &BasicHistogram{}
	for _, v := range []float64{0.5, 0.1, 0.9} {
		h.Record(v)
	}

	s := h.Snapshot()
	require.EqualValues(t, 3, s.Count)
	require.InDelta(t, 1.5, s.Sum, 1e-9)
	require.InDelta(t, 0.1, s.Min, 1e-9)
	require.InDelta(t, 0.9, s.Max, 1e-9)
}

func TestBasicProvider_ConcurrentUse(t *testing.T) {
	t.Parallel()

	p := NewBasicProvider()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Counter("n").Add(1)
			p.Histogram("d").Record(1)
		}()
	}
	wg.Wait()
	require.EqualValues(t, 50, p.CounterValue("n"))
}
