package status

import "sync/atomic"

// Registry is the central metrics facade
// Components cache pointers at construction; tick code writes the atomics directly
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Count returns total metrics across all kinds
func (r *Registry) Count() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}
