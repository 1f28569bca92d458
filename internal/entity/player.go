// Package entity provides the durable records the battle engine reads and
// writes back: the player and its inventory.
package entity

import (
	"maps"
	"slices"
	"time"

	"github.com/samdwyer/questforge/internal/gamedata"
)

// Equipment slots.
const (
	SlotHead       = "head"
	SlotBody       = "body"
	SlotLegs       = "legs"
	SlotFeet       = "feet"
	SlotMainWeapon = "mainWeapon"
	SlotOffhand    = "offhand"
	SlotRingLeft   = "ringLeft"
	SlotRingRight  = "ringRight"
	SlotNecklace   = "necklace"
	SlotAccessory  = "accessory"
)

// Player is the persisted player record. Stats are the permanent
// allocations; race and class contributions are folded in at aggregation
// time and never stored here.
type Player struct {
	ID        string `json:"id" gorm:"primaryKey"`
	Name      string `json:"name"`
	Gender    string `json:"gender,omitempty"`
	RaceID    string `json:"raceId"`
	ClassID   string `json:"classId"`
	Level     int    `json:"level"`
	CurrentXP int    `json:"currentXP"`
	NeededXP  int    `json:"neededXP"`

	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`
	MP    int `json:"mp"`
	MaxMP int `json:"maxMp"`

	Stats     gamedata.StatBlock      `json:"stats" gorm:"serializer:json"`
	Elements  gamedata.ElementsBundle `json:"elements" gorm:"serializer:json"`
	Spells    []string                `json:"spells" gorm:"serializer:json"`
	Skills    []string                `json:"skills" gorm:"serializer:json"`
	Abilities []string                `json:"abilities" gorm:"serializer:json"`
	Inventory Inventory               `json:"inventory" gorm:"serializer:json"`
	Equipped  map[string]string       `json:"equipped" gorm:"serializer:json"` // slot -> item id

	Gold               int            `json:"gold"`
	CurrentStoryNodeID string         `json:"currentStoryNodeId,omitempty"`
	QuestState         map[string]any `json:"activeQuestState" gorm:"serializer:json"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the player.
func (p *Player) Clone() *Player {
	c := *p
	c.Elements = gamedata.ElementsBundle{
		Damage:     p.Elements.Damage.Clone(),
		Resistance: p.Elements.Resistance.Clone(),
	}
	c.Spells = slices.Clone(p.Spells)
	c.Skills = slices.Clone(p.Skills)
	c.Abilities = slices.Clone(p.Abilities)
	c.Inventory = p.Inventory.Clone()
	c.Equipped = maps.Clone(p.Equipped)
	c.QuestState = maps.Clone(p.QuestState)
	return &c
}

// HasQuestFlag reports whether the named quest flag is truthy.
func (p *Player) HasQuestFlag(name string) bool {
	v, ok := p.QuestState[name]
	if !ok {
		return false
	}
	return truthy(v)
}

// SetQuestFlag marks a quest flag as set.
func (p *Player) SetQuestFlag(name string) {
	if p.QuestState == nil {
		p.QuestState = make(map[string]any)
	}
	p.QuestState[name] = true
}

// KnowsSpell reports whether the spell has been learned.
func (p *Player) KnowsSpell(id string) bool { return slices.Contains(p.Spells, id) }

// KnowsSkill reports whether the skill has been learned.
func (p *Player) KnowsSkill(id string) bool { return slices.Contains(p.Skills, id) }

// LearnSpell adds a spell, returning false if it was already known.
func (p *Player) LearnSpell(id string) bool {
	if p.KnowsSpell(id) {
		return false
	}
	p.Spells = append(p.Spells, id)
	return true
}

// LearnSkill adds a skill, returning false if it was already known.
func (p *Player) LearnSkill(id string) bool {
	if p.KnowsSkill(id) {
		return false
	}
	p.Skills = append(p.Skills, id)
	return true
}

// EquippedItemIDs returns equipped item ids in a stable slot order.
func (p *Player) EquippedItemIDs() []string {
	slots := make([]string, 0, len(p.Equipped))
	for slot := range p.Equipped {
		slots = append(slots, slot)
	}
	slices.Sort(slots)
	ids := make([]string, 0, len(slots))
	for _, slot := range slots {
		if id := p.Equipped[slot]; id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// truthy follows JSON truthiness: false, 0, "" and null are unset.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case int:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}
