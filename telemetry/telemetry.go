// Package telemetry exposes status registry atomics as OpenTelemetry observable gauges
package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lixenwraith/arsenal/status"
)

const instrumentationName = "github.com/lixenwraith/arsenal/telemetry"

// KeyAttribute names the registry key on every observation
const KeyAttribute = "key"

// Binding owns the callback registration of one registry
type Binding struct {
	reg    *status.Registry
	ints   metric.Int64ObservableGauge
	floats metric.Float64ObservableGauge
	bools  metric.Int64ObservableGauge
	cb     metric.Registration
}

// Bind registers gauges reading reg on every collection
// A nil meter uses the global provider, which is a no-op until one is installed
func Bind(reg *status.Registry, m metric.Meter) (*Binding, error) {
	if m == nil {
		m = otel.Meter(instrumentationName)
	}
	b := &Binding{reg: reg}

	var err error
	b.ints, err = m.Int64ObservableGauge(
		"arsenal.status.int",
		metric.WithDescription("Integer status counters"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating int gauge: %w", err)
	}
	b.floats, err = m.Float64ObservableGauge(
		"arsenal.status.float",
		metric.WithDescription("Float status values"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating float gauge: %w", err)
	}
	b.bools, err = m.Int64ObservableGauge(
		"arsenal.status.flag",
		metric.WithDescription("Boolean status flags as 0 or 1"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating flag gauge: %w", err)
	}

	b.cb, err = m.RegisterCallback(b.observe, b.ints, b.floats, b.bools)
	if err != nil {
		return nil, fmt.Errorf("registering status callback: %w", err)
	}
	return b, nil
}

func (b *Binding) observe(_ context.Context, o metric.Observer) error {
	b.reg.Ints.Range(func(k string, p *atomic.Int64) {
		o.ObserveInt64(b.ints, p.Load(), keyed(k))
	})
	b.reg.Floats.Range(func(k string, p *status.AtomicFloat) {
		o.ObserveFloat64(b.floats, p.Get(), keyed(k))
	})
	b.reg.Bools.Range(func(k string, p *atomic.Bool) {
		var v int64
		if p.Load() {
			v = 1
		}
		o.ObserveInt64(b.bools, v, keyed(k))
	})
	return nil
}

func keyed(k string) metric.ObserveOption {
	return metric.WithAttributes(attribute.String(KeyAttribute, k))
}

// Close unregisters the callback
func (b *Binding) Close() error {
	if b == nil || b.cb == nil {
		return nil
	}
	err := b.cb.Unregister()
	b.cb = nil
	return err
}

// Service binds the registry on Start and unbinds on Stop, so the hub owns its lifetime
type Service struct {
	reg     *status.Registry
	meter   metric.Meter
	binding *Binding
}

func NewService(reg *status.Registry, m metric.Meter) *Service {
	return &Service{reg: reg, meter: m}
}

func (s *Service) Name() string           { return "telemetry" }
func (s *Service) Dependencies() []string { return nil }
func (s *Service) Init(...any) error      { return nil }

func (s *Service) Start() error {
	if s.binding != nil {
		return nil
	}
	b, err := Bind(s.reg, s.meter)
	if err != nil {
		return err
	}
	s.binding = b
	return nil
}

func (s *Service) Stop() error {
	err := s.binding.Close()
	s.binding = nil
	return err
}

// Bound reports whether gauges are currently registered
func (s *Service) Bound() bool {
	return s.binding != nil
}
