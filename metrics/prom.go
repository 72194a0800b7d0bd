package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PromProvider implements Provider on top of a prometheus.Registerer.
// Counters map to Prometheus counters, up/down counters to gauges, and
// histograms to Prometheus histograms with default buckets. Instruments are
// registered once per name and reused.
type PromProvider struct {
	reg prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]prometheus.Counter
	gauges     map[string]prometheus.Gauge
	histograms map[string]prometheus.Histogram
}

// NewPromProvider constructs a PromProvider registering instruments on reg.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewPromProvider(reg prometheus.Registerer) *PromProvider {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &PromProvider{
		reg:        reg,
		counters:   make(map[string]prometheus.Counter),
		gauges:     make(map[string]prometheus.Gauge),
		histograms: make(map[string]prometheus.Histogram),
	}
}

func (p *PromProvider) Counter(name string, opts ...InstrumentOption) Counter {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.counters[name]
	if !ok {
		cfg := applyOptions(opts)
		c = prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: cfg.Description})
		p.reg.MustRegister(c)
		p.counters[name] = c
	}
	return promCounter{c}
}

func (p *PromProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.gauges[name]
	if !ok {
		cfg := applyOptions(opts)
		g = prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: cfg.Description})
		p.reg.MustRegister(g)
		p.gauges[name] = g
	}
	return promGauge{g}
}

func (p *PromProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	p.mu.Lock()
	defer p.mu.Unlock()
	h, ok := p.histograms[name]
	if !ok {
		cfg := applyOptions(opts)
		h = prometheus.NewHistogram(prometheus.HistogramOpts{Name: name, Help: cfg.Description})
		p.reg.MustRegister(h)
		p.histograms[name] = h
	}
	return promHistogram{h}
}

type promCounter struct{ c prometheus.Counter }

func (p promCounter) Add(n int64) { p.c.Add(float64(n)) }

type promGauge struct{ g prometheus.Gauge }

func (p promGauge) Add(n int64) { p.g.Add(float64(n)) }

type promHistogram struct{ h prometheus.Histogram }

func (p promHistogram) Record(v float64) { p.h.Observe(v) }
