package metrics

// NoopProvider returns instruments that discard every measurement. It is
// the default provider for a Dispatcher without WithMetrics.
type NoopProvider struct{}

// NewNoopProvider constructs a Provider that discards all metrics.
func NewNoopProvider() NoopProvider { return NoopProvider{} }

func (NoopProvider) Counter(string, ...InstrumentOption) Counter {
	return noopInstrument{}
}

func (NoopProvider) UpDownCounter(string, ...InstrumentOption) UpDownCounter {
	return noopInstrument{}
}

func (NoopProvider) Histogram(string, ...InstrumentOption) Histogram {
	return noopInstrument{}
}

type noopInstrument struct{}

func (noopInstrument) Add(int64)      {}
func (noopInstrument) Record(float64) {}
