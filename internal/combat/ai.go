package combat

import "github.com/samdwyer/questforge/internal/gamedata"

// Policy chooses an action for a combatant whose turn it is.
type Policy interface {
	Choose(b *Battle, self *Combatant) Action
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(b *Battle, self *Combatant) Action

// Choose calls f.
func (f PolicyFunc) Choose(b *Battle, self *Combatant) Action { return f(b, self) }

// Player autopilot thresholds, in percent of max HP.
const (
	HealThreshold   = 40
	EscapeThreshold = 25
)

// AutoPolicy plays the player's side: heal when low, flee when low with
// no way to heal, otherwise use the strongest affordable attack.
type AutoPolicy struct{}

// Choose implements Policy.
func (AutoPolicy) Choose(b *Battle, self *Combatant) Action {
	hpPct := 100
	if self.MaxHP > 0 {
		hpPct = self.HP * 100 / self.MaxHP
	}

	if hpPct <= HealThreshold {
		if a, ok := bestHeal(b, self); ok {
			return a
		}
		if self.Kind == KindPlayer && hpPct <= EscapeThreshold {
			return Action{ActorID: self.ID, Kind: ActionEscape}
		}
	}

	if a, ok := summonIfAlone(b, self); ok {
		return a
	}
	if a, ok := bestDamage(b, self); ok {
		return a
	}
	return basicAttack(b, self)
}

// RandomPolicy drives monsters, villains and summons: a random usable
// action from the repertoire, falling back to a basic attack.
type RandomPolicy struct{}

// Choose implements Policy.
func (RandomPolicy) Choose(b *Battle, self *Combatant) Action {
	options := repertoire(b, self)
	for _, idx := range b.Rand().Perm(len(options)) {
		opt := options[idx]
		if !usable(b, self, opt) {
			continue
		}
		if a, ok := aim(b, self, opt); ok {
			return a
		}
	}
	return basicAttack(b, self)
}

// option is one spell or skill a combatant may use.
type option struct {
	kind   ActionKind
	def    *gamedata.ActionDef
	summon *gamedata.Summon
	raw    float64
}

// repertoire lists known spells then skills, skipping unknown ids.
func repertoire(b *Battle, c *Combatant) []option {
	stats := c.Stats()
	var out []option
	for _, id := range c.Base.Spells {
		if s := b.content.Spell(id); s != nil {
			out = append(out, option{
				kind:   ActionSpell,
				def:    &s.ActionDef,
				summon: s.Summon,
				raw:    RawMagnitude(s.Scaling, stats.Int, s.Scaling.IntMultiplier),
			})
		}
	}
	for _, id := range c.Base.Skills {
		if s := b.content.Skill(id); s != nil {
			out = append(out, option{
				kind: ActionSkill,
				def:  &s.ActionDef,
				raw:  RawMagnitude(s.Scaling, stats.Str, s.Scaling.StrMultiplier),
			})
		}
	}
	return out
}

func usable(b *Battle, c *Combatant, opt option) bool {
	return c.Cooldown(cooldownKey(opt.kind, opt.def.ID)) == 0 && b.checkCost(c, opt.def.Cost) == nil
}

// aim picks targets for an option: the weakest opponent for offensive
// actions, the weakest ally for heals and buffs.
func aim(b *Battle, self *Combatant, opt option) (Action, bool) {
	a := Action{ActorID: self.ID, Kind: opt.kind, RefID: opt.def.ID}
	if opt.def.Type == gamedata.ActionSummon {
		a.Kind = ActionSummon
		return a, opt.summon != nil
	}
	if opt.def.Targeting == gamedata.TargetSelf {
		a.TargetIDs = []string{self.ID}
		return a, true
	}

	side := self.Side
	if opt.def.IsOffensive() {
		side = side.Opponent()
	}
	target := lowestHP(b.Living(side))
	if target == nil {
		return a, false
	}
	a.TargetIDs = []string{target.ID}
	return a, true
}

func bestHeal(b *Battle, self *Combatant) (Action, bool) {
	var best Action
	bestRaw := 0.0
	for _, opt := range repertoire(b, self) {
		if opt.def.Type != gamedata.ActionHeal || !usable(b, self, opt) {
			continue
		}
		if opt.def.Targeting == gamedata.TargetAoE {
			continue
		}
		if opt.raw > bestRaw {
			best = Action{ActorID: self.ID, Kind: opt.kind, RefID: opt.def.ID, TargetIDs: []string{self.ID}}
			bestRaw = opt.raw
		}
	}
	if bestRaw > 0 {
		return best, true
	}

	if self.Side != SidePlayer {
		return Action{}, false
	}
	for _, entry := range b.Inventory {
		item := b.content.Item(entry.ItemID)
		if item == nil || item.Potion == nil || entry.Qty < 1 {
			continue
		}
		if item.Potion.EffectKind != gamedata.PotionHeal && item.Potion.EffectKind != gamedata.PotionRegenBuff {
			continue
		}
		if self.Cooldown(cooldownKey(ActionItem, item.ID)) > 0 {
			continue
		}
		return Action{ActorID: self.ID, Kind: ActionItem, RefID: item.ID, TargetIDs: []string{self.ID}}, true
	}
	return Action{}, false
}

// summonIfAlone casts the first usable summon when the caster has no
// summon of its own on the field.
func summonIfAlone(b *Battle, self *Combatant) (Action, bool) {
	for _, c := range b.Combatants {
		if c.Kind == KindSummon && c.SummonerID == self.ID && c.Active() {
			return Action{}, false
		}
	}
	for _, opt := range repertoire(b, self) {
		if opt.def.Type == gamedata.ActionSummon && opt.summon != nil && usable(b, self, opt) {
			return Action{ActorID: self.ID, Kind: ActionSummon, RefID: opt.def.ID}, true
		}
	}
	return Action{}, false
}

// bestDamage scores each usable damaging action by raw magnitude times
// the number of targets it reaches.
func bestDamage(b *Battle, self *Combatant) (Action, bool) {
	enemies := b.Living(self.Side.Opponent())
	target := lowestHP(enemies)
	if target == nil {
		return Action{}, false
	}

	var best Action
	bestScore := 0.0
	for _, opt := range repertoire(b, self) {
		if opt.def.Type != gamedata.ActionDamage && opt.def.Type != gamedata.ActionMixed {
			continue
		}
		if !usable(b, self, opt) {
			continue
		}
		score := opt.raw
		if opt.def.Targeting == gamedata.TargetAoE {
			score *= float64(len(enemies))
		}
		if score > bestScore {
			best = Action{ActorID: self.ID, Kind: opt.kind, RefID: opt.def.ID, TargetIDs: []string{target.ID}}
			bestScore = score
		}
	}
	if bestScore <= float64(self.Stats().Str) {
		return Action{}, false
	}
	return best, true
}

func basicAttack(b *Battle, self *Combatant) Action {
	a := Action{ActorID: self.ID, Kind: ActionAttack}
	if target := lowestHP(b.Living(self.Side.Opponent())); target != nil {
		a.TargetIDs = []string{target.ID}
	}
	return a
}

// lowestHP returns the combatant with the least HP, first in roster order
// on ties.
func lowestHP(cs []*Combatant) *Combatant {
	var lowest *Combatant
	for _, c := range cs {
		if lowest == nil || c.HP < lowest.HP {
			lowest = c
		}
	}
	return lowest
}
