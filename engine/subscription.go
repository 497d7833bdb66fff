package engine

// Subscription is a disposable registration: tick task, event handler or timer
// Dispose must be safe to call any number of times
type Subscription interface {
	Dispose()
}

type funcSubscription struct {
	fn       func()
	disposed bool
}

// NewSubscription wraps fn so it runs at most once
func NewSubscription(fn func()) Subscription {
	return &funcSubscription{fn: fn}
}

func (s *funcSubscription) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	if s.fn != nil {
		s.fn()
	}
}

type nopSubscription struct{}

func (nopSubscription) Dispose() {}

// NopSubscription is returned where nothing was registered
var NopSubscription Subscription = nopSubscription{}

// Composite disposes a group of subscriptions together
type Composite struct {
	subs []Subscription
}

// Add appends a subscription; nil entries are ignored
func (c *Composite) Add(subs ...Subscription) {
	for _, s := range subs {
		if s != nil {
			c.subs = append(c.subs, s)
		}
	}
}

// Dispose releases all held subscriptions in reverse order and empties the group
func (c *Composite) Dispose() {
	subs := c.subs
	c.subs = nil
	for i := len(subs) - 1; i >= 0; i-- {
		subs[i].Dispose()
	}
}

// Len returns the number of held subscriptions
func (c *Composite) Len() int {
	return len(c.subs)
}

// DisposeAndNil disposes *s when set and clears the reference
func DisposeAndNil(s *Subscription) {
	if s == nil || *s == nil {
		return
	}
	(*s).Dispose()
	*s = nil
}
