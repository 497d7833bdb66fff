package combat

import (
	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/engine"
)

// Capabilities resolves what a scene entity can do, keyed by entity
// Hit boxes register under their own entity; callers resolve the owner first
type Capabilities struct {
	receivers *engine.Store[DamageReceiver]
	blockers  *engine.Store[struct{}]
}

// NewCapabilities creates an empty registry
func NewCapabilities() *Capabilities {
	return &Capabilities{
		receivers: engine.NewStore[DamageReceiver](),
		blockers:  engine.NewStore[struct{}](),
	}
}

// SetReceiver registers a damage receiver for e
func (c *Capabilities) SetReceiver(e core.Entity, r DamageReceiver) {
	if r == nil {
		c.receivers.RemoveEntity(e)
		return
	}
	c.receivers.SetComponent(e, r)
}

// Receiver returns the damage receiver registered for e
func (c *Capabilities) Receiver(e core.Entity) (DamageReceiver, bool) {
	return c.receivers.GetComponent(e)
}

// SetBlocker marks e as blocking melee attacks along a ray
func (c *Capabilities) SetBlocker(e core.Entity, blocks bool) {
	if blocks {
		c.blockers.SetComponent(e, struct{}{})
		return
	}
	c.blockers.RemoveEntity(e)
}

// IsBlocker reports the block capability
func (c *Capabilities) IsBlocker(e core.Entity) bool {
	return c.blockers.HasEntity(e)
}

// Forget drops every capability of e
func (c *Capabilities) Forget(e core.Entity) {
	c.receivers.RemoveEntity(e)
	c.blockers.RemoveEntity(e)
}

// Receivers returns the number of registered receivers
func (c *Capabilities) Receivers() int {
	return c.receivers.CountEntities()
}
