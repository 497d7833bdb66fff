package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/arsenal/arena"
	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/event"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/vmath"
)

// Enemy loadouts cycled by wave slot
var roster = []string{"pistol", "shotgun", "sword", "automatic_rifle", "sword_and_shield", "chakram"}

const (
	waveRadius = 12.0
	stepSize   = 1.0
	logLines   = 4
	rageScale  = 2.0
)

// Listener receives the player position for distance attenuation
type Listener interface {
	SetListener(pos vmath.Vec3F)
	ToggleMute() bool
}

type sandbox struct {
	screen tcell.Screen
	arena  *arena.Arena
	sound  Listener
	logger zerolog.Logger

	player   *arena.Actor
	weapons  []string
	selected int
	paused   bool
	raging   bool
	quit     bool
	feed     []string
}

func newSandbox(screen tcell.Screen, a *arena.Arena, sound Listener, logger zerolog.Logger) (*sandbox, error) {
	sb := &sandbox{
		screen:  screen,
		arena:   a,
		sound:   sound,
		logger:  logger.With().Str("component", "sandbox").Logger(),
		weapons: a.Catalog().Names(),
	}
	if len(sb.weapons) == 0 {
		return nil, fmt.Errorf("catalog has no weapons")
	}

	p, err := a.Spawn(arena.ActorSpec{Name: "player", Player: true, Weapon: sb.weapons[0]})
	if err != nil {
		return nil, err
	}
	sb.player = p

	a.AddObstacle(vmath.Vec3F{X: -5, Y: 1, Z: 5}, vmath.Vec3F{X: 1.5, Y: 1, Z: 0.5})
	a.AddObstacle(vmath.Vec3F{X: 6, Y: 1, Z: -3}, vmath.Vec3F{X: 0.5, Y: 1, Z: 2})

	a.Bus().Subscribe(event.EventDamageDealt, func(ev event.GameEvent) {
		if d, ok := ev.Payload.(*event.DamagePayload); ok {
			if act, ok := a.Actor(d.Target); ok {
				sb.note(fmt.Sprintf("%s hits %s for %d", d.Sender, act.Name(), d.Amount))
			}
		}
	})
	a.Bus().Subscribe(event.EventExploded, func(ev event.GameEvent) {
		if e, ok := ev.Payload.(*event.ExplodedPayload); ok {
			sb.note(fmt.Sprintf("blast r=%.1f caught %d", e.Radius, e.Victims))
		}
	})
	a.Bus().Subscribe(event.EventActorKilled, func(ev event.GameEvent) {
		k, ok := ev.Payload.(*event.KilledPayload)
		if !ok {
			return
		}
		if k.Player {
			sb.note("you died")
			return
		}
		if a.Hostiles() == 0 {
			sb.note("wave cleared, n for the next one")
		}
	})
	a.Bus().Subscribe(event.EventWeaponImproved, func(ev event.GameEvent) {
		if im, ok := ev.Payload.(*event.ImprovementPayload); ok {
			sb.note(fmt.Sprintf("%s %s +%d", im.Weapon, im.Kind, im.Value))
		}
	})

	if err := sb.spawnWave(); err != nil {
		return nil, err
	}
	return sb, nil
}

// watch logs every event of the named types at debug level
func (sb *sandbox) watch(names []string) error {
	for _, name := range names {
		et, ok := event.GetEventType(name)
		if !ok {
			return fmt.Errorf("unknown event %q", name)
		}
		sb.arena.Bus().Subscribe(et, func(ev event.GameEvent) {
			sb.logger.Debug().Stringer("event", ev.Type).Int64("frame", ev.Frame).Interface("payload", ev.Payload).Msg("event")
		})
	}
	return nil
}

// spawnWave rings the player with level+3 enemies
func (sb *sandbox) spawnWave() error {
	n := sb.arena.Level() + 3
	center := sb.player.Position()
	for i := range n {
		angle := 360.0 * float64(i) / float64(n)
		at := vmath.V3FAdd(center, vmath.V3FRotateY(vmath.Vec3F{Z: waveRadius}, angle))
		_, err := sb.arena.Spawn(arena.ActorSpec{
			Name:     fmt.Sprintf("%s-%d", roster[i%len(roster)], i+1),
			Position: at,
			Weapon:   roster[i%len(roster)],
		})
		if err != nil {
			return fmt.Errorf("wave slot %d: %w", i, err)
		}
	}
	sb.logger.Info().Int("level", sb.arena.Level()).Int("enemies", n).Msg("wave spawned")
	return nil
}

func (sb *sandbox) note(line string) {
	sb.feed = append(sb.feed, line)
	if len(sb.feed) > logLines {
		sb.feed = sb.feed[len(sb.feed)-logLines:]
	}
}

func (sb *sandbox) run() {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := sb.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	timer := engine.NewFrameTimer(engine.NewTimeProvider(), parameter.MaxFrameDelta)
	for !sb.quit {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				sb.handleKey(ev.Key(), ev.Rune())
			case *tcell.EventResize:
				sb.screen.Sync()
			}
		case <-ticker.C:
			sb.update(timer.Tick())
			sb.draw()
		}
	}
}

// handleKey applies one key press
func (sb *sandbox) handleKey(key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		sb.quit = true
		return
	case tcell.KeyUp:
		sb.move(0, stepSize)
	case tcell.KeyDown:
		sb.move(0, -stepSize)
	case tcell.KeyLeft:
		sb.move(-stepSize, 0)
	case tcell.KeyRight:
		sb.move(stepSize, 0)
	case tcell.KeyTab:
		sb.equip((sb.selected + 1) % len(sb.weapons))
	case tcell.KeyRune:
		sb.handleRune(r)
	}
}

func (sb *sandbox) handleRune(r rune) {
	switch {
	case r == 'q':
		sb.quit = true
	case r == ' ' || r == 'f':
		sb.fire()
	case r >= '1' && r <= '9':
		if i := int(r - '1'); i < len(sb.weapons) {
			sb.equip(i)
		}
	case r == 'u':
		sb.improve(combat.ImproveShotUpgrade)
	case r == 'r':
		sb.improve(combat.ImproveRicochetUpgrade)
	case r == 'b':
		sb.toggleRage()
	case r == 'n':
		sb.nextLevel()
	case r == 'p':
		sb.paused = !sb.paused
	case r == 'm':
		if sb.sound != nil {
			if sb.sound.ToggleMute() {
				sb.note("audio muted")
			} else {
				sb.note("audio on")
			}
		}
	}
}

func (sb *sandbox) move(dx, dz float64) {
	if !sb.player.IsAlive() {
		return
	}
	p := sb.player.Position()
	sb.player.MoveTo(vmath.Vec3F{X: p.X + dx, Z: p.Z + dz})
	if sb.sound != nil {
		sb.sound.SetListener(sb.player.Position())
	}
}

func (sb *sandbox) fire() {
	target, ok := sb.arena.NearestEnemy(sb.player)
	if !ok {
		sb.note("no target in range")
		return
	}
	sb.arena.Attack(sb.player, target)
}

func (sb *sandbox) equip(i int) {
	if !sb.player.IsAlive() {
		return
	}
	if _, err := sb.player.Installer().Install(sb.weapons[i]); err != nil {
		sb.note(err.Error())
		return
	}
	sb.selected = i
	sb.applyRage()
	sb.note("equipped " + sb.weapons[i])
}

// toggleRage doubles the player's authored weapon damage until toggled off
func (sb *sandbox) toggleRage() {
	sb.raging = !sb.raging
	sb.applyRage()
	if sb.raging {
		sb.note("rage on")
	} else {
		sb.note("rage off")
	}
}

func (sb *sandbox) applyRage() {
	w := sb.player.Weapon()
	if w == nil {
		return
	}
	scale := 1.0
	if st, ok := sb.arena.Catalog().Weapon(w.Name()); ok {
		scale = st.DamageScaler
	}
	if sb.raging {
		scale *= rageScale
	}
	w.ApplyExternalDamageScaler(scale)
}

func (sb *sandbox) improve(kind combat.ImproveType) {
	if err := sb.arena.Improve(sb.player, kind); err != nil {
		sb.note(err.Error())
	}
}

func (sb *sandbox) nextLevel() {
	sb.arena.ClearLevel()
	if !sb.player.IsAlive() {
		p, err := sb.arena.Spawn(arena.ActorSpec{Name: "player", Player: true, Weapon: sb.weapons[sb.selected]})
		if err != nil {
			sb.note(err.Error())
			return
		}
		sb.player = p
		sb.applyRage()
	}
	if err := sb.spawnWave(); err != nil {
		sb.logger.Error().Err(err).Msg("wave spawn failed")
		sb.note(err.Error())
	}
}

// update advances the arena and lets alerted or nearby enemies fight back
func (sb *sandbox) update(dt time.Duration) {
	if sb.paused {
		return
	}
	if sb.player.IsAlive() {
		for _, act := range sb.arena.Actors() {
			if act == sb.player || !act.IsAlive() || act.IsPlayer() {
				continue
			}
			w := act.Weapon()
			if w == nil || !w.Available() {
				continue
			}
			d := vmath.V3FDist(act.Position(), sb.player.Position())
			inRange := act.Radius() > 0 && d <= act.Radius()
			if inRange || (act.Alerted() && w.Type() != combat.WeaponMelee) {
				sb.arena.Attack(act, sb.player)
			}
		}
	}
	sb.arena.Advance(dt)
}
