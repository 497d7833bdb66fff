package service

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrDuplicate  = errors.New("service already registered")
	ErrMissingDep = errors.New("missing service dependency")
	ErrCycle      = errors.New("service dependency cycle")
)

// Hub owns the long-lived services of a process: audio output, metric exporters
// Services init and start with their dependencies first and stop in reverse
type Hub struct {
	mu      sync.RWMutex
	byName  map[string]Service
	added   []string // Registration order, breaks ties in the resolved order
	order   []string // Resolved on InitAll, cleared by Register
	running []string // Started services, newest last
}

func NewHub() *Hub {
	return &Hub{byName: make(map[string]Service)}
}

// Register adds svc; names must be unique
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, dup := h.byName[name]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	h.byName[name] = svc
	h.added = append(h.added, name)
	h.order = nil
	return nil
}

// Get looks up a service by name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	svc, ok := h.byName[name]
	return svc, ok
}

// MustGet returns the named service as T, panicking when absent or of another type
func MustGet[T any](h *Hub, name string) T {
	svc, ok := h.Get(name)
	if !ok {
		panic(fmt.Sprintf("service %q not registered", name))
	}
	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("service %q is %T", name, svc))
	}
	return typed
}

// InitAll resolves the order and passes args to every Init
// A failing Init stops the services initialized before it, newest first
func (h *Hub) InitAll(args ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.order == nil {
		order, err := h.resolve()
		if err != nil {
			return err
		}
		h.order = order
	}

	for i, name := range h.order {
		if err := h.byName[name].Init(args...); err != nil {
			h.stopReverse(h.order[:i])
			return fmt.Errorf("init %s: %w", name, err)
		}
	}
	return nil
}

// StartAll starts services in resolved order, rolling back on the first failure
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.running = h.running[:0]
	for _, name := range h.order {
		if err := h.byName[name].Start(); err != nil {
			h.stopReverse(h.running)
			h.running = nil
			return fmt.Errorf("start %s: %w", name, err)
		}
		h.running = append(h.running, name)
	}
	return nil
}

// StopAll stops started services newest first and joins their errors
func (h *Hub) StopAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	err := h.stopReverse(h.running)
	h.running = nil
	return err
}

func (h *Hub) stopReverse(names []string) error {
	var errs []error
	for i := len(names) - 1; i >= 0; i-- {
		if err := h.byName[names[i]].Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", names[i], err))
		}
	}
	return errors.Join(errs...)
}

// Order returns the resolved init order; empty before InitAll
func (h *Hub) Order() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.order...)
}

// resolve walks dependencies depth first in registration order
func (h *Hub) resolve() ([]string, error) {
	const (
		unseen = iota
		visiting
		done
	)
	state := make(map[string]int, len(h.byName))
	order := make([]string, 0, len(h.byName))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w at %s", ErrCycle, name)
		}
		state[name] = visiting
		for _, dep := range h.byName[name].Dependencies() {
			if _, ok := h.byName[dep]; !ok {
				return fmt.Errorf("%w: %s needs %s", ErrMissingDep, name, dep)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range h.added {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}
