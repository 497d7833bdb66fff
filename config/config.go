// Package config loads the weapon catalog, improvement table and engine overrides
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/tag"
)

//go:embed catalog.toml
var defaultCatalog []byte

// EnvPrefix prefixes environment overrides, e.g. ARSENAL_ENGINE_FIXED_TICK
const EnvPrefix = "ARSENAL"

// ConfigName is the file searched for when Load is given a directory
const ConfigName = "arsenal"

// ErrCatalog wraps every catalog read or decode failure
var ErrCatalog = errors.New("weapon catalog")

// Engine carries scheduler and physics overrides
type Engine struct {
	FixedTick   time.Duration
	SettleSpeed float64
	LogLevel    string
}

// Audio carries playback settings; Volumes is keyed by sound
type Audio struct {
	Enabled      bool
	MasterVolume float64
	SampleRate   int
	MaxDistance  float64
	Volumes      map[core.SoundType]float64
}

// Catalog is a decoded, validated weapon catalog
type Catalog struct {
	Engine       Engine
	Audio        Audio
	Improvements *combat.ImprovementTable

	weapons map[string]*combat.WeaponStats
	names   []string
}

// rawWeapon mirrors one [[weapons]] table
type rawWeapon struct {
	Name       string `mapstructure:"name"`
	Type       string `mapstructure:"type"`
	Projectile string `mapstructure:"projectile"`

	Damage       int64   `mapstructure:"damage"`
	DamageScaler float64 `mapstructure:"damage_scaler"`
	PushForce    float64 `mapstructure:"push_force"`

	ProjectileSpeed   float64       `mapstructure:"projectile_speed"`
	ProjectilesByShot int           `mapstructure:"projectiles_by_shot"`
	ShotDelay         time.Duration `mapstructure:"shot_delay"`
	ShotAngle         float64       `mapstructure:"shot_angle"`
	ShotCountLevel    int           `mapstructure:"shot_count_level"`

	Recharge     time.Duration `mapstructure:"recharge"`
	Reload       time.Duration `mapstructure:"reload"`
	AmmoCapacity int           `mapstructure:"ammo_capacity"`
	AmmoPolicy   string        `mapstructure:"ammo_policy"`

	RicochetTags   []string `mapstructure:"ricochet_tags"`
	RicochetCount  int      `mapstructure:"ricochet_count"`
	RicochetRadius float64  `mapstructure:"ricochet_radius"`

	ThrowHeight     float64 `mapstructure:"throw_height"`
	YAxisMultiplier bool    `mapstructure:"y_axis_multiplier"`
	HasRotation     bool    `mapstructure:"has_rotation"`
	RotationSpeed   float64 `mapstructure:"rotation_speed"`

	InstantExplosion bool          `mapstructure:"instant_explosion"`
	ExplosionRadius  float64       `mapstructure:"explosion_radius"`
	ExplosionForce   float64       `mapstructure:"explosion_force"`
	FuseDelay        time.Duration `mapstructure:"fuse_delay"`

	TriggerRadius    float64 `mapstructure:"trigger_radius"`
	ContainsShield   bool    `mapstructure:"contains_shield"`
	LinkRechargeView bool    `mapstructure:"link_recharge_view"`

	ShotSound            string `mapstructure:"shot_sound"`
	ImpactSound          string `mapstructure:"impact_sound"`
	ImpactEffect         string `mapstructure:"impact_effect"`
	EffectOnTargetCenter bool   `mapstructure:"effect_on_target_center"`
	ConstantTrail        bool   `mapstructure:"constant_trail"`
	ShellEffect          bool   `mapstructure:"shell_effect"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("engine.fixed_tick", parameter.FixedTick)
	v.SetDefault("engine.settle_speed", parameter.SettleSpeedThreshold)
	v.SetDefault("engine.log_level", "info")
	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.master_volume", 0.5)
	v.SetDefault("audio.sample_rate", parameter.AudioSampleRate)
	v.SetDefault("audio.max_distance", parameter.AudioMaxDistance)
	v.SetDefault("improvements.shot_upgrade", parameter.DefaultShotUpgrade)
	v.SetDefault("improvements.ricochet_upgrade", parameter.DefaultRicochetUpgrade)

	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDefault decodes the embedded catalog
func LoadDefault() (*Catalog, error) {
	return Load("")
}

// Load reads the embedded catalog and merges the file at path over it
// A directory path is searched for arsenal.toml; an empty path loads defaults only
// A [[weapons]] list in the file replaces the embedded list
func Load(path string) (*Catalog, error) {
	v := newViper()
	if err := v.ReadConfig(bytes.NewReader(defaultCatalog)); err != nil {
		return nil, fmt.Errorf("%w: error reading embedded catalog: %v", ErrCatalog, err)
	}

	if path != "" {
		if fi, err := os.Stat(path); err == nil && fi.IsDir() {
			v.SetConfigName(ConfigName)
			v.AddConfigPath(path)
		} else {
			v.SetConfigFile(path)
		}
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("%w: error reading config file: %v", ErrCatalog, err)
		}
	}

	return decode(v)
}

// Parse decodes a catalog from TOML bytes without the embedded defaults
func Parse(data []byte) (*Catalog, error) {
	v := newViper()
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: error reading catalog: %v", ErrCatalog, err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Catalog, error) {
	c := &Catalog{
		Engine: Engine{
			FixedTick:   v.GetDuration("engine.fixed_tick"),
			SettleSpeed: v.GetFloat64("engine.settle_speed"),
			LogLevel:    v.GetString("engine.log_level"),
		},
		weapons: make(map[string]*combat.WeaponStats),
	}
	if c.Engine.FixedTick <= 0 {
		return nil, fmt.Errorf("%w: engine.fixed_tick must be positive, got %s", ErrCatalog, c.Engine.FixedTick)
	}
	if c.Engine.SettleSpeed <= 0 {
		return nil, fmt.Errorf("%w: engine.settle_speed must be positive", ErrCatalog)
	}

	var raws []rawWeapon
	if err := v.UnmarshalKey("weapons", &raws); err != nil {
		return nil, fmt.Errorf("%w: decode weapons: %v", ErrCatalog, err)
	}
	for i := range raws {
		s, err := raws[i].stats()
		if err != nil {
			return nil, fmt.Errorf("%w: weapon %d: %w", ErrCatalog, i, err)
		}
		if _, dup := c.weapons[s.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate weapon %q", ErrCatalog, s.Name)
		}
		c.weapons[s.Name] = s
		c.names = append(c.names, s.Name)
	}

	audio, err := audioSettings(v)
	if err != nil {
		return nil, err
	}
	c.Audio = audio

	table, err := improvements(v)
	if err != nil {
		return nil, err
	}
	c.Improvements = table
	return c, nil
}

// improvements builds the table from [improvements] and its per_weapon.<name> subtables
// Viper lowercases keys, so overrides only match lower case weapon names
func improvements(v *viper.Viper) (*combat.ImprovementTable, error) {
	t := combat.NewImprovementTable(nil)
	for _, key := range v.AllKeys() {
		rest, ok := strings.CutPrefix(key, "improvements.")
		if !ok {
			continue
		}
		parts := strings.Split(rest, ".")
		switch {
		case len(parts) == 1:
			kind, err := improveKind(parts[0])
			if err != nil {
				return nil, err
			}
			t.Default[kind] = v.GetInt(key)
		case len(parts) == 3 && parts[0] == "per_weapon":
			kind, err := improveKind(parts[2])
			if err != nil {
				return nil, err
			}
			t.Override(parts[1], kind, v.GetInt(key))
		default:
			return nil, fmt.Errorf("%w: unexpected improvement key %q", ErrCatalog, key)
		}
	}
	return t, nil
}

func audioSettings(v *viper.Viper) (Audio, error) {
	a := Audio{
		Enabled:      v.GetBool("audio.enabled"),
		MasterVolume: v.GetFloat64("audio.master_volume"),
		SampleRate:   v.GetInt("audio.sample_rate"),
		MaxDistance:  v.GetFloat64("audio.max_distance"),
		Volumes:      make(map[core.SoundType]float64),
	}
	if a.SampleRate <= 0 {
		return a, fmt.Errorf("%w: audio.sample_rate must be positive", ErrCatalog)
	}
	for _, key := range v.AllKeys() {
		name, ok := strings.CutPrefix(key, "audio.volumes.")
		if !ok {
			continue
		}
		st, err := sound(name)
		if err != nil {
			return a, fmt.Errorf("%w: audio volume: %w", ErrCatalog, err)
		}
		a.Volumes[st] = v.GetFloat64(key)
	}
	return a, nil
}

func improveKind(name string) (combat.ImproveType, error) {
	kind, ok := combat.ParseImproveType(name)
	if !ok || kind == combat.ImproveNone {
		return combat.ImproveNone, fmt.Errorf("%w: unknown improvement %q", ErrCatalog, name)
	}
	return kind, nil
}

func (r *rawWeapon) stats() (*combat.WeaponStats, error) {
	wt, ok := combat.ParseWeaponType(r.Type)
	if !ok {
		return nil, fmt.Errorf("%s: unknown type %q", r.Name, r.Type)
	}
	pk, ok := combat.ParseProjectileKind(r.Projectile)
	if !ok {
		return nil, fmt.Errorf("%s: unknown projectile %q", r.Name, r.Projectile)
	}
	policy, ok := combat.ParseAmmoPolicy(r.AmmoPolicy)
	if !ok {
		return nil, fmt.Errorf("%s: unknown ammo policy %q", r.Name, r.AmmoPolicy)
	}
	tags := make([]tag.Tag, 0, len(r.RicochetTags))
	for _, n := range r.RicochetTags {
		t, ok := tag.Parse(n)
		if !ok {
			return nil, fmt.Errorf("%s: unknown tag %q", r.Name, n)
		}
		tags = append(tags, t)
	}
	shot, err := sound(r.ShotSound)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Name, err)
	}
	impact, err := sound(r.ImpactSound)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Name, err)
	}
	fx, err := effect(r.ImpactEffect)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Name, err)
	}

	s := &combat.WeaponStats{
		Name:                 r.Name,
		Type:                 wt,
		Projectile:           pk,
		Damage:               r.Damage,
		DamageScaler:         r.DamageScaler,
		PushForce:            r.PushForce,
		ProjectileSpeed:      r.ProjectileSpeed,
		ProjectilesByShot:    r.ProjectilesByShot,
		ShotDelay:            r.ShotDelay,
		ShotAngle:            r.ShotAngle,
		ShotCountLevel:       r.ShotCountLevel,
		Recharge:             r.Recharge,
		Reload:               r.Reload,
		AmmoCapacity:         r.AmmoCapacity,
		AmmoPolicy:           policy,
		RicochetTags:         tag.Of(tags...),
		RicochetCount:        r.RicochetCount,
		RicochetRadius:       r.RicochetRadius,
		ThrowHeight:          r.ThrowHeight,
		YAxisMultiplier:      r.YAxisMultiplier,
		HasRotation:          r.HasRotation,
		RotationSpeed:        r.RotationSpeed,
		InstantExplosion:     r.InstantExplosion,
		ExplosionRadius:      r.ExplosionRadius,
		ExplosionForce:       r.ExplosionForce,
		FuseDelay:            r.FuseDelay,
		TriggerRadius:        r.TriggerRadius,
		ContainsShield:       r.ContainsShield,
		LinkRechargeView:     r.LinkRechargeView,
		ShotSound:            shot,
		ImpactSound:          impact,
		ImpactEffect:         fx,
		EffectOnTargetCenter: r.EffectOnTargetCenter,
		ConstantTrail:        r.ConstantTrail,
		ShellEffect:          r.ShellEffect,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func sound(name string) (core.SoundType, error) {
	if name == "" {
		return core.SoundNone, nil
	}
	s, ok := core.ParseSoundType(strings.ToLower(name))
	if !ok {
		return core.SoundNone, fmt.Errorf("unknown sound %q", name)
	}
	return s, nil
}

func effect(name string) (core.EffectType, error) {
	if name == "" {
		return core.EffectNone, nil
	}
	e, ok := core.ParseEffectType(strings.ToLower(name))
	if !ok {
		return core.EffectNone, fmt.Errorf("unknown effect %q", name)
	}
	return e, nil
}

// Weapon returns an independent copy of the named entry
func (c *Catalog) Weapon(name string) (*combat.WeaponStats, bool) {
	s, ok := c.weapons[name]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

// Names lists weapons in catalog order
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len is the weapon count
func (c *Catalog) Len() int {
	return len(c.names)
}
