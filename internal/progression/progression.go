// Package progression handles experience and level-ups.
package progression

import (
	"github.com/samdwyer/questforge/internal/entity"
	"github.com/samdwyer/questforge/internal/gamedata"
	"github.com/samdwyer/questforge/internal/rules"
)

// Grant intervals, in levels.
const (
	SpellEvery = 5
	SkillEvery = 20
)

// Content is the catalog lookup level-ups need.
type Content interface {
	rules.Content
	Spell(id string) *gamedata.SpellDef
	Skill(id string) *gamedata.SkillDef
}

// LevelUp records one level gained.
type LevelUp struct {
	Level int              `json:"level"`
	Stats gamedata.StatMap `json:"stats"`
	Spell string           `json:"spell,omitempty"`
	Skill string           `json:"skill,omitempty"`
}

// NeededXP is the experience required to advance from level:
// fibonacci(level+1) x 100.
func NeededXP(level int) int {
	a, b := 0, 1
	for i := 0; i < level+1; i++ {
		a, b = b, a+b
	}
	return a * 100
}

// Apply levels the player up while its XP meets the threshold. Leftover XP
// carries into the next level. Max HP and MP are recomputed from the
// aggregated stats and current HP/MP grow by the same amount.
func Apply(p *entity.Player, content Content) []LevelUp {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.NeededXP <= 0 {
		p.NeededXP = NeededXP(p.Level)
	}

	var ups []LevelUp
	for p.CurrentXP >= p.NeededXP {
		p.CurrentXP -= p.NeededXP
		p.Level++
		p.NeededXP = NeededXP(p.Level)

		up := LevelUp{Level: p.Level, Stats: growth(content.Class(p.ClassID))}
		p.Stats = p.Stats.PlusMap(up.Stats)

		if p.Level%SpellEvery == 0 {
			up.Spell = nextSpell(p, content)
		}
		if p.Level%SkillEvery == 0 {
			up.Skill = nextSkill(p, content)
		}
		ups = append(ups, up)
	}

	if len(ups) > 0 {
		refreshMax(p, content)
	}
	return ups
}

// growth returns the class's per-level stat growth; +1 to every stat when
// the class defines none.
func growth(class *gamedata.ClassDef) gamedata.StatMap {
	if class != nil && len(class.StatGrowth) > 0 {
		return class.StatGrowth
	}
	m := make(gamedata.StatMap, len(gamedata.StatKeys))
	for _, key := range gamedata.StatKeys {
		m[key] = 1
	}
	return m
}

// nextSpell learns the first spell from the class then race pools that is
// not yet known and whose requirements are met.
func nextSpell(p *entity.Player, content Content) string {
	var pool []string
	if class := content.Class(p.ClassID); class != nil {
		pool = append(pool, class.SpellPool...)
	}
	if race := content.Race(p.RaceID); race != nil {
		pool = append(pool, race.SpellPool...)
	}
	for _, id := range pool {
		spell := content.Spell(id)
		if spell == nil || p.KnowsSpell(id) || !rules.Meets(p, spell.Requirements) {
			continue
		}
		p.LearnSpell(id)
		return id
	}
	return ""
}

func nextSkill(p *entity.Player, content Content) string {
	class := content.Class(p.ClassID)
	if class == nil {
		return ""
	}
	for _, id := range class.SkillPool {
		skill := content.Skill(id)
		if skill == nil || p.KnowsSkill(id) || !rules.Meets(p, skill.Requirements) {
			continue
		}
		p.LearnSkill(id)
		return id
	}
	return ""
}

func refreshMax(p *entity.Player, content Content) {
	snap := rules.Aggregate(rules.PlayerSource(p), content)
	p.HP = clamp(p.HP+snap.MaxHP-p.MaxHP, 0, snap.MaxHP)
	p.MP = clamp(p.MP+snap.MaxMP-p.MaxMP, 0, snap.MaxMP)
	p.MaxHP, p.MaxMP = snap.MaxHP, snap.MaxMP
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
