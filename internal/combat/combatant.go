// Package combat provides the turn-based battle engine: combatant
// snapshots, the damage pipeline, the action resolver, the turn scheduler
// and round-end processing.
package combat

import (
	"github.com/samdwyer/questforge/internal/gamedata"
	"github.com/samdwyer/questforge/internal/rules"
)

// Side partitions the roster.
type Side int

const (
	SidePlayer Side = iota // the player and their summons
	SideEnemy              // monsters, villains and their summons
)

// String returns a human-readable side name.
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// Kind says where a combatant came from.
type Kind string

const (
	KindPlayer  Kind = "player"
	KindMonster Kind = "monster"
	KindVillain Kind = "villain"
	KindSummon  Kind = "summon"
)

// Combatant is the battle-scoped snapshot of one actor. It is owned by the
// Battle for one encounter and discarded afterwards.
type Combatant struct {
	ID         string
	Name       string
	Side       Side
	Kind       Kind
	TemplateID string // player, monster or villain id
	SummonerID string

	// Base is the aggregated snapshot taken at battle start.
	Base rules.Snapshot

	HP, MaxHP int
	MP, MaxMP int

	Effects   []Effect
	Cooldowns map[string]int // action key -> rounds remaining

	// JoinRound is the first round the combatant acts in.
	JoinRound int
	// Removed combatants (expired or dismissed summons) have left the roster.
	Removed bool
}

// NewCombatant creates a combatant from an aggregated snapshot.
func NewCombatant(id, name string, side Side, kind Kind, snap rules.Snapshot) *Combatant {
	return &Combatant{
		ID:        id,
		Name:      name,
		Side:      side,
		Kind:      kind,
		Base:      snap,
		HP:        snap.HP,
		MaxHP:     snap.MaxHP,
		MP:        snap.MP,
		MaxMP:     snap.MaxMP,
		Cooldowns: make(map[string]int),
		JoinRound: 1,
	}
}

// IsAlive returns true if the combatant has HP remaining.
func (c *Combatant) IsAlive() bool { return c.HP > 0 }

// Active reports whether the combatant can act or be targeted.
func (c *Combatant) Active() bool { return c.HP > 0 && !c.Removed }

// TakeDamage reduces HP and returns actual damage taken.
func (c *Combatant) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, c.HP)
	c.HP -= actual
	return actual
}

// Heal restores HP and returns actual amount healed.
func (c *Combatant) Heal(amount int) int {
	if amount <= 0 || c.HP >= c.MaxHP {
		return 0
	}
	actual := min(amount, c.MaxHP-c.HP)
	c.HP += actual
	return actual
}

// SpendMP reduces MP and returns false if insufficient.
func (c *Combatant) SpendMP(amount int) bool {
	if c.MP < amount {
		return false
	}
	c.MP -= amount
	return true
}

// RestoreMP restores MP and returns actual amount restored.
func (c *Combatant) RestoreMP(amount int) int {
	if amount <= 0 || c.MP >= c.MaxMP {
		return 0
	}
	actual := min(amount, c.MaxMP-c.MP)
	c.MP += actual
	return actual
}

// SpendHP pays an HP cost. A cost may not be lethal.
func (c *Combatant) SpendHP(amount int) bool {
	if amount > 0 && c.HP <= amount {
		return false
	}
	c.HP -= max(amount, 0)
	return true
}

// Stats returns base stats plus active effect deltas.
func (c *Combatant) Stats() gamedata.StatBlock {
	stats := c.Base.Stats
	for i := range c.Effects {
		stats = stats.PlusMap(c.Effects[i].Stats)
	}
	return stats
}

// Offense returns the unclamped offense map including effects.
func (c *Combatant) Offense() gamedata.ElementMap {
	m := c.Base.Offense
	for i := range c.Effects {
		if len(c.Effects[i].Offense) > 0 {
			m = m.Plus(c.Effects[i].Offense)
		}
	}
	return m
}

// Resistance returns the unclamped resistance map including effects.
func (c *Combatant) Resistance() gamedata.ElementMap {
	m := c.Base.Resistance
	for i := range c.Effects {
		if len(c.Effects[i].Resistance) > 0 {
			m = m.Plus(c.Effects[i].Resistance)
		}
	}
	return m
}

// Multipliers returns dealt/taken percentages and armor including effects.
func (c *Combatant) Multipliers() gamedata.Multipliers {
	m := c.Base.Multipliers
	for i := range c.Effects {
		m = m.Plus(c.Effects[i].Multipliers)
	}
	return m
}

// KnowsSpell reports whether the spell is in the combatant's repertoire.
func (c *Combatant) KnowsSpell(id string) bool { return contains(c.Base.Spells, id) }

// KnowsSkill reports whether the skill is in the combatant's repertoire.
func (c *Combatant) KnowsSkill(id string) bool { return contains(c.Base.Skills, id) }

// Cooldown returns the rounds remaining before an action can be reused.
func (c *Combatant) Cooldown(key string) int { return c.Cooldowns[key] }

func (c *Combatant) startCooldown(key string, rounds int) {
	if rounds > 0 {
		c.Cooldowns[key] = rounds
	}
}

// tickCooldowns decrements every cooldown and drops those that reach 0.
func (c *Combatant) tickCooldowns() {
	for key, n := range c.Cooldowns {
		if n <= 1 {
			delete(c.Cooldowns, key)
		} else {
			c.Cooldowns[key] = n - 1
		}
	}
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
