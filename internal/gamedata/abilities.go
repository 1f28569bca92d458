package gamedata

// =============================================================================
// ACTION & ABILITY SYSTEM DESIGN
// =============================================================================
//
// Overview:
// ---------
// Content is authored in an admin panel and stored as JSON tables. The battle
// engine reads these tables once per battle and never re-fetches mid-fight.
//
// Core Concepts:
// --------------
//
// 1. Ability - a passive effect (race innate, learned, or granted by gear):
//    - stats: flat stat bonuses
//    - regen: extra HP/MP per round end
//    - multipliers: physical/magical dealt and taken %, flat armor
//    - elemental: offense and defense % per element
//    - crit / escape: base % and per-disparity scaling
//
// 2. Spell - magical action scaling on INT:
//    raw = scaling.base + INT * scaling.intMultiplier
//
// 3. Skill - physical action scaling on STR:
//    raw = scaling.base + STR * scaling.strMultiplier
//
// 4. ActionType - what a spell or skill does:
//    - damage, heal, summon (spells only), buff, debuff, mixed
//
// 5. Targeting:
//    - single: one living combatant named by the action
//    - aoe: every living member of the affected side, with optional falloff
//    - self: the caster only
//
// JSON Schema (spell):
// --------------------
// {
//   "id": "spl_fireball",
//   "name": "Fireball",
//   "type": "damage",
//   "targeting": "single",
//   "scaling": { "base": 6, "intMultiplier": 1.5 },
//   "elements": [{ "key": "fire", "mult": 10 }],
//   "cost": { "mp": 8 },
//   "cooldown": 1
// }
//
// Damage Pipeline:
// ----------------
// 1. raw magnitude (above); basic attacks use STR x 1
// 2. per element tag: (1 + offense%/100) x (1 - resistance%/100)
// 3. dealt% / taken% multipliers, then flat armor for physical damage
// 4. crit: clamp(baseCrit + (dexA - dexD), 0, 100), x1.5
// 5. floor at 0
//
// Every % is clamped to [-100, 100] only at the point of use.

// AbilityDef defines a passive ability loaded from JSON.
type AbilityDef struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Effects       AbilityEffects `json:"effects"`
	Requirements  *Requirements  `json:"requirements,omitempty"`
	IsRaceAbility bool           `json:"isRaceAbility,omitempty"`
}

// AbilityEffects are the passive contributions of an ability.
type AbilityEffects struct {
	Stats       StatMap         `json:"stats,omitempty"`
	Regen       *Regen          `json:"regen,omitempty"`
	Multipliers *Multipliers    `json:"multipliers,omitempty"`
	Elemental   *ElementalMods  `json:"elemental,omitempty"`
	Crit        *DisparityBonus `json:"crit,omitempty"`
	Escape      *DisparityBonus `json:"escape,omitempty"`
}

// Regen is extra per-round recovery.
type Regen struct {
	HPPerTurn int `json:"hpPerTurn,omitempty"`
	MPPerTurn int `json:"mpPerTurn,omitempty"`
}

// Multipliers are additive percentage modifiers plus flat armor.
type Multipliers struct {
	PhysicalDealt int `json:"physicalDealt,omitempty"`
	MagicalDealt  int `json:"magicalDealt,omitempty"`
	PhysicalTaken int `json:"physicalTaken,omitempty"`
	MagicalTaken  int `json:"magicalTaken,omitempty"`
	Armor         int `json:"armor,omitempty"`
	ExpGain       int `json:"expGain,omitempty"`
}

// Plus returns the field-wise sum of m and other.
func (m Multipliers) Plus(other Multipliers) Multipliers {
	return Multipliers{
		PhysicalDealt: m.PhysicalDealt + other.PhysicalDealt,
		MagicalDealt:  m.MagicalDealt + other.MagicalDealt,
		PhysicalTaken: m.PhysicalTaken + other.PhysicalTaken,
		MagicalTaken:  m.MagicalTaken + other.MagicalTaken,
		Armor:         m.Armor + other.Armor,
		ExpGain:       m.ExpGain + other.ExpGain,
	}
}

// ElementalMods adds offense and defense percentages.
type ElementalMods struct {
	Offense ElementMap `json:"offense,omitempty"`
	Defense ElementMap `json:"defense,omitempty"`
}

// DisparityBonus tunes crit or escape chance.
type DisparityBonus struct {
	Base         int `json:"base,omitempty"`
	PerDisparity int `json:"perDisparity,omitempty"`
}

// AbilitiesFile represents the structure of abilities.json.
type AbilitiesFile struct {
	Abilities []AbilityDef `json:"abilities"`
}
