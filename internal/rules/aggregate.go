package rules

import (
	"github.com/samdwyer/questforge/internal/entity"
	"github.com/samdwyer/questforge/internal/gamedata"
)

// Derived-value constants.
const (
	HPPerEnd         = 10
	MPPerWis         = 10
	BaseCritChance   = 5
	BaseEscapeChance = 25
	DefaultDisparity = 1
)

// Content is the read-only lookup aggregation needs. *gamedata.Catalog
// satisfies it.
type Content interface {
	Race(id string) *gamedata.RaceDef
	Class(id string) *gamedata.ClassDef
	Item(id string) *gamedata.ItemDef
	Ability(id string) *gamedata.AbilityDef
}

// Source is everything aggregation folds together for one actor.
type Source struct {
	Stats     gamedata.StatBlock
	Elements  gamedata.ElementsBundle
	RaceID    string
	ClassID   string
	Equipped  []string // item ids
	Abilities []string // learned or innate ability ids
	Spells    []string
	Skills    []string

	// HP and MP carry current values across re-aggregation. Nil starts full.
	HP *int
	MP *int
}

// Snapshot is an actor's effective state after aggregation. Element maps
// are stored unclamped.
type Snapshot struct {
	Stats       gamedata.StatBlock
	Offense     gamedata.ElementMap
	Resistance  gamedata.ElementMap
	Multipliers gamedata.Multipliers
	Regen       gamedata.Regen

	CritBase     int
	CritPerDex   int
	EscapeBase   int
	EscapePerAgi int

	MaxHP int
	MaxMP int
	HP    int
	MP    int

	Abilities []string // applied ability ids, deduplicated
	Spells    []string // learned plus gear-granted
	Skills    []string

	// Missing lists references that could not be resolved, as "kind:id".
	Missing []string
}

// PlayerSource builds the aggregation input for a player. A player that
// was never aggregated (zero max HP) starts full.
func PlayerSource(p *entity.Player) Source {
	src := Source{
		Stats:     p.Stats,
		Elements:  p.Elements,
		RaceID:    p.RaceID,
		ClassID:   p.ClassID,
		Equipped:  p.EquippedItemIDs(),
		Abilities: p.Abilities,
		Spells:    p.Spells,
		Skills:    p.Skills,
	}
	if p.MaxHP > 0 {
		hp, mp := p.HP, p.MP
		src.HP, src.MP = &hp, &mp
	}
	return src
}

// MonsterSource builds the aggregation input for a monster or summon.
func MonsterSource(m *gamedata.MonsterDef) Source {
	return Source{
		Stats:     m.BaseStats,
		Elements:  m.Elements,
		Abilities: m.Abilities,
		Spells:    m.Spells,
		Skills:    m.Skills,
	}
}

// VillainSource builds the aggregation input for a villain. Villains
// aggregate their equipment exactly like players.
func VillainSource(v *gamedata.VillainDef) Source {
	src := MonsterSource(&v.MonsterDef)
	p := entity.Player{Equipped: v.Equipped}
	src.Equipped = p.EquippedItemIDs()
	return src
}

// Aggregate folds race, class, equipment and ability contributions into
// the source's base values. It never fails: unknown references are
// skipped and reported in Snapshot.Missing.
func Aggregate(src Source, content Content) Snapshot {
	snap := Snapshot{
		Stats:      src.Stats,
		Offense:    src.Elements.Damage.Clone(),
		Resistance: src.Elements.Resistance.Clone(),
		CritBase:   BaseCritChance,
		EscapeBase: BaseEscapeChance,
	}
	abilities := newIDSet(src.Abilities...)
	spells := newIDSet(src.Spells...)
	skills := newIDSet(src.Skills...)

	if src.RaceID != "" {
		if race := content.Race(src.RaceID); race != nil {
			snap.addBase(race.BaseStats, race.Elements)
			if race.RaceAbilityID != "" {
				abilities.add(race.RaceAbilityID)
			}
		} else {
			snap.Missing = append(snap.Missing, "race:"+src.RaceID)
		}
	}

	if src.ClassID != "" {
		if class := content.Class(src.ClassID); class != nil {
			snap.addBase(class.BaseStats, class.Elements)
		} else {
			snap.Missing = append(snap.Missing, "class:"+src.ClassID)
		}
	}

	for _, id := range src.Equipped {
		item := content.Item(id)
		if item == nil {
			snap.Missing = append(snap.Missing, "item:"+id)
			continue
		}
		if b := item.Bonuses; b != nil {
			snap.Stats = snap.Stats.PlusMap(b.Stats)
			snap.Offense = snap.Offense.Plus(b.Offense)
			snap.Resistance = snap.Resistance.Plus(b.Resistance)
			snap.Multipliers.Armor += b.Armor
			snap.Multipliers.PhysicalTaken += b.PhysicalTaken
			snap.Multipliers.MagicalTaken += b.MagicalTaken
		}
		if e := item.Embedded; e != nil {
			abilities.add(e.Abilities...)
			spells.add(e.Spells...)
			skills.add(e.Skills...)
		}
	}

	for _, id := range abilities.ids {
		ability := content.Ability(id)
		if ability == nil {
			snap.Missing = append(snap.Missing, "ability:"+id)
			continue
		}
		snap.addAbility(&ability.Effects)
		snap.Abilities = append(snap.Abilities, id)
	}

	if snap.CritPerDex == 0 {
		snap.CritPerDex = DefaultDisparity
	}
	if snap.EscapePerAgi == 0 {
		snap.EscapePerAgi = DefaultDisparity
	}

	snap.Spells = spells.ids
	snap.Skills = skills.ids
	snap.MaxHP = max(0, snap.Stats.End*HPPerEnd)
	snap.MaxMP = max(0, snap.Stats.Wis*MPPerWis)
	snap.HP = carry(src.HP, snap.MaxHP)
	snap.MP = carry(src.MP, snap.MaxMP)
	return snap
}

func (s *Snapshot) addBase(stats gamedata.StatBlock, elems gamedata.ElementsBundle) {
	s.Stats = s.Stats.Plus(stats)
	s.Offense = s.Offense.Plus(elems.Damage)
	s.Resistance = s.Resistance.Plus(elems.Resistance)
}

func (s *Snapshot) addAbility(e *gamedata.AbilityEffects) {
	s.Stats = s.Stats.PlusMap(e.Stats)
	if e.Regen != nil {
		s.Regen.HPPerTurn += e.Regen.HPPerTurn
		s.Regen.MPPerTurn += e.Regen.MPPerTurn
	}
	if e.Multipliers != nil {
		s.Multipliers = s.Multipliers.Plus(*e.Multipliers)
	}
	if e.Elemental != nil {
		s.Offense = s.Offense.Plus(e.Elemental.Offense)
		s.Resistance = s.Resistance.Plus(e.Elemental.Defense)
	}
	if e.Crit != nil {
		s.CritBase += e.Crit.Base
		s.CritPerDex = max(s.CritPerDex, e.Crit.PerDisparity)
	}
	if e.Escape != nil {
		s.EscapeBase += e.Escape.Base
		s.EscapePerAgi = max(s.EscapePerAgi, e.Escape.PerDisparity)
	}
}

func carry(current *int, maxValue int) int {
	if current == nil {
		return maxValue
	}
	return min(max(*current, 0), maxValue)
}

// idSet keeps first-seen order.
type idSet struct {
	ids  []string
	seen map[string]bool
}

func newIDSet(ids ...string) *idSet {
	s := &idSet{seen: make(map[string]bool)}
	s.add(ids...)
	return s
}

func (s *idSet) add(ids ...string) {
	for _, id := range ids {
		if id == "" || s.seen[id] {
			continue
		}
		s.seen[id] = true
		s.ids = append(s.ids, id)
	}
}
