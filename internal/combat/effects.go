package combat

import "github.com/samdwyer/questforge/internal/gamedata"

// EffectKind tags a TemporaryEffect.
type EffectKind int

const (
	EffectBuff EffectKind = iota
	EffectDebuff
	EffectDoT
	EffectHoT
	EffectSummon // marks a summon's remaining lifetime
)

// String returns a human-readable effect kind.
func (k EffectKind) String() string {
	switch k {
	case EffectBuff:
		return "buff"
	case EffectDebuff:
		return "debuff"
	case EffectDoT:
		return "dot"
	case EffectHoT:
		return "hot"
	case EffectSummon:
		return "summon"
	default:
		return "unknown"
	}
}

// Ticks reports whether the effect has a per-round payload.
func (k EffectKind) Ticks() bool { return k == EffectDoT || k == EffectHoT }

// Effect is an active temporary effect on a combatant. Remaining strictly
// decreases at each round end; the effect is removed when it reaches 0.
type Effect struct {
	ID        string // spell, skill or item id; "defend" for the defend action
	Kind      EffectKind
	SourceID  string // combatant that applied it
	Remaining int

	Stats       gamedata.StatMap
	Multipliers gamedata.Multipliers
	Offense     gamedata.ElementMap
	Resistance  gamedata.ElementMap

	PerTick int // DoT damage or HoT healing
}

// AddEffect attaches an effect. Reapplying the same effect id from the
// same source refreshes its duration and replaces its magnitude; effects
// from different sources coexist.
func (c *Combatant) AddEffect(effect Effect) {
	for i, existing := range c.Effects {
		if existing.ID == effect.ID && existing.SourceID == effect.SourceID && existing.Kind == effect.Kind {
			c.Effects[i] = effect
			return
		}
	}
	c.Effects = append(c.Effects, effect)
}

// EffectTick records one round-end step of an effect.
type EffectTick struct {
	Effect Effect
	Amount int  // damage taken or healing received
	Ended  bool // true if the effect expired
}

// TickEffects processes the effects selected by match: ticking effects
// apply their payload once, then every matched effect loses one round and
// is removed at 0.
func (c *Combatant) TickEffects(match func(EffectKind) bool) []EffectTick {
	var ticks []EffectTick
	remaining := c.Effects[:0:0]

	for _, effect := range c.Effects {
		if !match(effect.Kind) {
			remaining = append(remaining, effect)
			continue
		}

		tick := EffectTick{Effect: effect}
		switch effect.Kind {
		case EffectDoT:
			if c.IsAlive() {
				tick.Amount = c.TakeDamage(effect.PerTick)
			}
		case EffectHoT:
			if c.IsAlive() {
				tick.Amount = c.Heal(effect.PerTick)
			}
		}

		effect.Remaining--
		tick.Effect.Remaining = effect.Remaining
		if effect.Remaining <= 0 {
			tick.Ended = true
		} else {
			remaining = append(remaining, effect)
		}
		ticks = append(ticks, tick)
	}

	c.Effects = remaining
	return ticks
}

// SummonRemaining returns the lifetime left on a summon marker, or -1 if
// the combatant has none.
func (c *Combatant) SummonRemaining() int {
	for _, e := range c.Effects {
		if e.Kind == EffectSummon {
			return e.Remaining
		}
	}
	return -1
}
