package gamedata

// ActionType represents what a spell or skill does.
type ActionType string

const (
	ActionDamage ActionType = "damage"
	ActionHeal   ActionType = "heal"
	ActionSummon ActionType = "summon"
	ActionBuff   ActionType = "buff"
	ActionDebuff ActionType = "debuff"
	ActionMixed  ActionType = "mixed"
)

// Targeting represents who an action affects.
type Targeting string

const (
	TargetSingle Targeting = "single"
	TargetAoE    Targeting = "aoe"
	TargetSelf   Targeting = "self"
)

// DamageType selects the dealt/taken multipliers used by the pipeline.
type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamageMagical  DamageType = "magical"
)

// Scaling is the raw-magnitude formula of an action. StrMultiplier is used by
// skills and IntMultiplier by spells.
type Scaling struct {
	Base          int     `json:"base"`
	StrMultiplier float64 `json:"strMultiplier,omitempty"`
	IntMultiplier float64 `json:"intMultiplier,omitempty"`
}

// ElementTag attaches an element to an action. Fixed adds flat damage, Mult
// adds to the attacker's offense % for that element.
type ElementTag struct {
	Key   ElementKey `json:"key"`
	Fixed int        `json:"fixed,omitempty"`
	Mult  int        `json:"mult,omitempty"`
}

// Aoe describes area falloff. Falloff in [0,1] multiplies the magnitude once
// per position away from the primary target.
type Aoe struct {
	Radius  int     `json:"radius,omitempty"`
	Falloff float64 `json:"falloff,omitempty"`
}

// Dot is a recurring tick attached by an action.
type Dot struct {
	Ticks         int  `json:"ticks"`
	AmountPerTick int  `json:"amountPerTick,omitempty"`
	UsesScaling   bool `json:"usesScaling,omitempty"`
}

// Summon adds a monster to the caster's side.
type Summon struct {
	MonsterID        string `json:"monsterId"`
	DurationTurns    int    `json:"durationTurns,omitempty"`
	ReplacesExisting bool   `json:"replacesExisting,omitempty"`
}

// Cost is paid when an action resolves.
type Cost struct {
	MP     int    `json:"mp,omitempty"`
	HP     int    `json:"hp,omitempty"`
	ItemID string `json:"itemId,omitempty"`
}

// EffectDef is the payload of a buff or debuff.
type EffectDef struct {
	Stats         StatMap      `json:"stats,omitempty"`
	Multipliers   *Multipliers `json:"multipliers,omitempty"`
	Offense       ElementMap   `json:"offense,omitempty"`
	Resistance    ElementMap   `json:"resistance,omitempty"`
	DurationTurns int          `json:"durationTurns"`
}

// ActionDef is the shared shape of spells and skills.
type ActionDef struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Type         ActionType    `json:"type"`
	Targeting    Targeting     `json:"targeting"`
	Scaling      Scaling       `json:"scaling"`
	Elements     []ElementTag  `json:"elements,omitempty"`
	Aoe          *Aoe          `json:"aoe,omitempty"`
	Dot          *Dot          `json:"dot,omitempty"`
	Effect       *EffectDef   `json:"effect,omitempty"`
	Cost         *Cost         `json:"cost,omitempty"`
	Cooldown     int           `json:"cooldown,omitempty"`
	CanCrit      *bool         `json:"canCrit,omitempty"` // heals only crit when explicitly true
	Requirements *Requirements `json:"requirements,omitempty"`
}

// SpellDef is a magical action.
type SpellDef struct {
	ActionDef
	Summon *Summon `json:"summon,omitempty"`
}

// SkillDef is a physical action.
type SkillDef struct {
	ActionDef
}

// IsOffensive returns true if the action is aimed at the opposing side.
func (a *ActionDef) IsOffensive() bool {
	switch a.Type {
	case ActionDamage, ActionDebuff, ActionMixed:
		return true
	default:
		return false
	}
}

// Crits reports whether the action rolls for critical hits.
func (a *ActionDef) Crits() bool {
	if a.CanCrit != nil {
		return *a.CanCrit
	}
	return a.Type == ActionDamage || a.Type == ActionMixed
}

// SpellsFile represents the structure of spells.json.
type SpellsFile struct {
	Spells []SpellDef `json:"spells"`
}

// SkillsFile represents the structure of skills.json.
type SkillsFile struct {
	Skills []SkillDef `json:"skills"`
}
