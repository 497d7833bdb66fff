package engine

import "testing"

type counter struct {
	resets int
	value  int
}

func (c *counter) Reset() {
	c.resets++
	c.value = 0
}

func TestPoolReusesSlots(t *testing.T) {
	built := 0
	p := NewPool(func() *counter { built++; return &counter{} }, 4)

	h1, c1 := p.Spawn()
	c1.value = 7
	h2, _ := p.Spawn()
	if p.Active() != 2 || p.Capacity() != 2 || built != 2 {
		t.Fatalf("Expected 2 active slots, got active=%d capacity=%d built=%d", p.Active(), p.Capacity(), built)
	}

	if !p.Despawn(h1) {
		t.Fatal("Expected despawn of live handle to succeed")
	}
	if p.Despawn(h1) {
		t.Error("Expected repeated despawn to be rejected")
	}

	h3, c3 := p.Spawn()
	if built != 2 {
		t.Errorf("Expected freed slot reuse, built %d values", built)
	}
	if c3 != c1 || c3.resets != 1 || c3.value != 0 {
		t.Errorf("Expected reused value to be reset, got %+v", c3)
	}
	if h3.Index != h1.Index || h3.Generation == h1.Generation {
		t.Errorf("Expected same slot with a new generation, got %+v after %+v", h3, h1)
	}
	if _, ok := p.Get(h1); ok {
		t.Error("Expected stale handle not to resolve")
	}
	if v, ok := p.Get(h2); !ok || v == nil {
		t.Error("Expected live handle to resolve")
	}
	if _, ok := p.Get(Handle{Index: 99, Generation: 1}); ok {
		t.Error("Expected out-of-range handle not to resolve")
	}
}

func TestPoolEachAllowsDespawn(t *testing.T) {
	p := NewPool(func() *counter { return &counter{} }, 0)
	for range 3 {
		p.Spawn()
	}
	visited := 0
	p.Each(func(h Handle, _ *counter) {
		visited++
		p.Despawn(h)
	})
	if visited != 3 || p.Active() != 0 {
		t.Errorf("Expected 3 visits and an empty pool, got %d visits, %d active", visited, p.Active())
	}
	if (Handle{}).IsZero() != true {
		t.Error("Expected zero handle to report IsZero")
	}
}
