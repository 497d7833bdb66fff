package weapon

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/event"
	"github.com/lixenwraith/arsenal/status"
)

// Catalog resolves authored weapon stats by name
type Catalog interface {
	Weapon(name string) (*combat.WeaponStats, bool)
}

// RadiusSensor is a carrier whose detection radius follows the installed weapon
type RadiusSensor interface {
	ChangeRadius(r float64)
}

// ShieldBearer is a carrier that can raise a shield when the weapon carries one
type ShieldBearer interface {
	SetShield(active bool)
}

// Installer swaps weapons on one carrier and relays their shot events to the shared bus
type Installer struct {
	env     Env
	catalog Catalog
	carrier combat.Carrier
	logger  zerolog.Logger

	current *Weapon
	relay   engine.Composite
	view    engine.Composite

	// Recharge view, linked when the stats request it
	viewVisible  *atomic.Bool
	viewDuration *status.AtomicFloat
}

// NewInstaller creates an installer for carrier
func NewInstaller(env Env, catalog Catalog, carrier combat.Carrier) (*Installer, error) {
	if carrier == nil {
		return nil, ErrNoCarrier
	}
	env.withDefaults()
	prefix := fmt.Sprintf("carrier.%d.", carrier.Entity())
	return &Installer{
		env:          env,
		catalog:      catalog,
		carrier:      carrier,
		logger:       env.Logger.With().Str("component", "installer").Uint64("carrier", uint64(carrier.Entity())).Logger(),
		viewVisible:  env.Registry.Bools.Get(prefix + "recharge_view"),
		viewDuration: env.Registry.Floats.Get(prefix + "recharge_seconds"),
	}, nil
}

// Install replaces the current weapon with a fresh copy of the named catalog entry
func (in *Installer) Install(name string) (*Weapon, error) {
	stats, ok := in.catalog.Weapon(name)
	if !ok {
		in.logger.Error().Str("weapon", name).Msg("install failed")
		return nil, fmt.Errorf("%w: %q", ErrUnknownWeapon, name)
	}
	in.Clear()

	w := New(in.env, stats).Initialize(in.carrier, in.carrier.EnemyTags())
	in.current = w

	if sb, ok := in.carrier.(ShieldBearer); ok {
		sb.SetShield(w.stats.ContainsShield)
	}
	in.relay.Add(
		w.events.Subscribe(event.EventShootStarted, in.forward),
		w.events.Subscribe(event.EventShootFinished, in.forward),
	)
	if rs, ok := in.carrier.(RadiusSensor); ok && w.stats.TriggerRadius > 0 {
		rs.ChangeRadius(w.stats.TriggerRadius)
	}
	if w.stats.LinkRechargeView {
		in.linkRechargeView(w)
	}

	in.env.Bus.Publish(event.EventWeaponChanged, w.payload())
	in.logger.Debug().Str("weapon", w.stats.Name).Str("type", w.kind.String()).Msg("weapon installed")
	return w, nil
}

// Clear destroys the current weapon and drops its relays
func (in *Installer) Clear() {
	in.UnlinkRechargeView()
	in.relay.Dispose()
	if in.current != nil {
		in.current.Destroy()
		in.current = nil
	}
}

// Weapon returns the installed weapon or nil
func (in *Installer) Weapon() *Weapon {
	return in.current
}

// UnlinkRechargeView stops mirroring recharge progress and hides the view
func (in *Installer) UnlinkRechargeView() {
	in.view.Dispose()
	in.viewVisible.Store(false)
	in.viewDuration.Set(0)
}

// RechargeViewVisible reports the linked view state
func (in *Installer) RechargeViewVisible() bool {
	return in.viewVisible.Load()
}

func (in *Installer) linkRechargeView(w *Weapon) {
	in.view.Dispose()
	in.view.Add(
		w.events.Subscribe(event.EventRechargeStarted, func(ev event.GameEvent) {
			if p, ok := ev.Payload.(*event.RampPayload); ok {
				in.viewDuration.Set(p.Duration.Seconds())
			}
			in.viewVisible.Store(true)
		}),
		w.events.Subscribe(event.EventRechargeFinished, func(event.GameEvent) {
			in.viewVisible.Store(false)
		}),
	)
}

func (in *Installer) forward(ev event.GameEvent) {
	in.env.Bus.Publish(ev.Type, ev.Payload)
}
