package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/arsenal/arena"
	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/projectile"
	"github.com/lixenwraith/arsenal/vmath"
)

// One world unit spans two columns and one row; +Z points up the screen
const columnsPerUnit = 2

var (
	styleBase     = tcell.StyleDefault
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleEnemy    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleAlerted  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleDead     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWall     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleShield   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleFlight   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBlast    = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleFx       = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleFeed     = tcell.StyleDefault.Foreground(tcell.ColorLightGray)
	styleWarnings = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// project maps a world point to a cell, centered on the player
func (sb *sandbox) project(p vmath.Vec3F) (int, int) {
	w, h := sb.screen.Size()
	c := sb.player.Position()
	x := w/2 + int(math.Round((p.X-c.X)*columnsPerUnit))
	y := h/2 - int(math.Round(p.Z-c.Z))
	return x, y
}

func (sb *sandbox) put(p vmath.Vec3F, r rune, style tcell.Style) {
	x, y := sb.project(p)
	w, h := sb.screen.Size()
	// Rows 0 and the last few hold the HUD
	if x < 0 || x >= w || y < 1 || y >= h-logLines-1 {
		return
	}
	sb.screen.SetContent(x, y, r, nil, style)
}

func (sb *sandbox) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		sb.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (sb *sandbox) draw() {
	sb.screen.Clear()

	for _, o := range sb.arena.Obstacles() {
		b := o.Bounds()
		for z := b.Min.Z; z <= b.Max.Z; z += 0.5 {
			for x := b.Min.X; x <= b.Max.X; x += 0.5 {
				sb.put(vmath.Vec3F{X: x, Z: z}, '#', styleWall)
			}
		}
	}

	sb.arena.Effects().Each(sb.drawEffect)

	for _, act := range sb.arena.Actors() {
		sb.drawActor(act)
	}

	sb.arena.Launcher().Each(func(p *projectile.Projectile) {
		if p.Active() {
			sb.put(p.Position(), flightGlyph(p.Kind()), styleFlight)
		}
	})

	sb.drawHUD()
	sb.screen.Show()
}

func (sb *sandbox) drawActor(act *arena.Actor) {
	switch {
	case !act.IsAlive():
		sb.put(act.Position(), 'x', styleDead)
		return
	case act.IsPlayer():
		sb.put(act.Position(), '@', stylePlayer)
	case act.Alerted():
		sb.put(act.Position(), 'E', styleAlerted)
	default:
		sb.put(act.Position(), 'e', styleEnemy)
	}
	if act.Shielded() {
		fwd := vmath.V3FRotateY(vmath.Vec3F{Z: 1}, act.Facing())
		sb.put(vmath.V3FAdd(act.Position(), fwd), ']', styleShield)
	}
}

func (sb *sandbox) drawEffect(fx arena.Effect) {
	switch fx.Type {
	case core.EffectExplosion, core.EffectExplosionZone:
		r := fx.Scale
		if r <= 0 {
			r = 1
		}
		glyph := '*'
		if fx.Type == core.EffectExplosionZone {
			glyph = '.'
		}
		for deg := 0.0; deg < 360; deg += 15 {
			edge := vmath.V3FRotateY(vmath.Vec3F{Z: r}, deg)
			sb.put(vmath.V3FAdd(fx.At, edge), glyph, styleBlast)
		}
	case core.EffectImpact:
		sb.put(fx.At, '+', styleFx)
	case core.EffectSlash:
		sb.put(fx.At, '/', styleFx)
	case core.EffectMuzzle:
		sb.put(fx.At, '\'', styleFlight)
	case core.EffectShell:
		sb.put(fx.At, ',', styleFeed)
	case core.EffectTrail:
		sb.put(fx.At, '~', styleFx)
	}
}

func flightGlyph(k combat.ProjectileKind) rune {
	switch k {
	case combat.ProjectileRicochet:
		return 'o'
	case combat.ProjectileGrenade:
		return 'g'
	case combat.ProjectileRocket:
		return '>'
	default:
		return '*'
	}
}

func (sb *sandbox) drawHUD() {
	w, h := sb.screen.Size()
	for x := 0; x < w; x++ {
		sb.screen.SetContent(x, 0, ' ', nil, styleHUD)
	}
	sb.text(0, 0, sb.statusLine(), styleHUD)

	for i, line := range sb.feed {
		sb.text(1, h-logLines-1+i, line, styleFeed)
	}

	help := "arrows move  space fire  tab/1-9 weapon  u/r upgrade  b rage  n next  m mute  p pause  q quit"
	if !sb.player.IsAlive() {
		sb.text(1, h-1, "you died: n to restart the wave, q to quit", styleWarnings)
		return
	}
	sb.text(1, h-1, help, styleBase)
}

// statusLine summarizes the player's weapon and the arena counters
func (sb *sandbox) statusLine() string {
	reg := sb.arena.Registry()
	line := fmt.Sprintf(" L%d  HP %d/%d", sb.arena.Level(), sb.player.Health(), sb.player.MaxHealth())
	if w := sb.player.Weapon(); w != nil {
		state := "ready"
		switch {
		case w.ReloadProgress() < 1:
			state = fmt.Sprintf("reload %3.0f%%", w.ReloadProgress()*100)
		case w.RechargeProgress() < 1:
			state = fmt.Sprintf("recharge %3.0f%%", w.RechargeProgress()*100)
		}
		line += fmt.Sprintf("  %s ammo %d  %s", w.Name(), w.Ammo(), state)
	}
	line += fmt.Sprintf("  flights %d  kills %d",
		sb.arena.Launcher().Active(), reg.Ints.Get("arena.kills").Load())
	if sb.paused {
		line += "  [paused]"
	}
	return line
}
