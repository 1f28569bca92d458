package gamedata

// ItemType classifies an item.
type ItemType string

const (
	ItemWeapon    ItemType = "weapon"
	ItemArmorHead ItemType = "armor_head"
	ItemArmorBody ItemType = "armor_body"
	ItemArmorLeg  ItemType = "armor_leg"
	ItemArmorShoe ItemType = "armor_shoe"
	ItemOffhand   ItemType = "offhand"
	ItemRing      ItemType = "ring"
	ItemNecklace  ItemType = "necklace"
	ItemPotion    ItemType = "potion"
	ItemAccessory ItemType = "accessory"
	ItemMaterial  ItemType = "material"
)

// PotionKind is the effect of a consumable.
type PotionKind string

const (
	PotionHeal          PotionKind = "heal"
	PotionMPHeal        PotionKind = "mpHeal"
	PotionStatBuff      PotionKind = "statBuff"
	PotionStatPermanent PotionKind = "statPermanent"
	PotionElementBuff   PotionKind = "elementBuff"
	PotionRegenBuff     PotionKind = "regenBuff"
)

// ItemBonuses are contributed while an item is equipped.
type ItemBonuses struct {
	Stats         StatMap    `json:"stats,omitempty"`
	Offense       ElementMap `json:"offense,omitempty"`
	Resistance    ElementMap `json:"resistance,omitempty"`
	Armor         int        `json:"armor,omitempty"`
	PhysicalTaken int        `json:"physicalTaken,omitempty"`
	MagicalTaken  int        `json:"magicalTaken,omitempty"`
}

// Potion describes a consumable's effect.
type Potion struct {
	EffectKind    PotionKind `json:"effectKind"`
	Amount        int        `json:"amount,omitempty"`
	PerStatMap    StatMap    `json:"perStatMap,omitempty"`
	PerElementMap ElementMap `json:"perElementMap,omitempty"`
	DurationTurns int        `json:"durationTurns,omitempty"`
	Cooldown      int        `json:"cooldown,omitempty"`
}

// Embedded lists actions granted while an item is equipped.
type Embedded struct {
	Abilities []string `json:"abilities,omitempty"`
	Spells    []string `json:"spells,omitempty"`
	Skills    []string `json:"skills,omitempty"`
}

// ItemDef defines an item loaded from JSON.
type ItemDef struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Type         ItemType      `json:"type"`
	Slot         string        `json:"slot,omitempty"`
	Cost         int           `json:"cost,omitempty"`
	SellValue    int           `json:"sellValue,omitempty"`
	Stackable    bool          `json:"stackable,omitempty"`
	MaxStack     int           `json:"maxStack,omitempty"`
	Requirements *Requirements `json:"requirements,omitempty"`
	Bonuses      *ItemBonuses  `json:"bonuses,omitempty"`
	Potion       *Potion       `json:"potion,omitempty"`
	Embedded     *Embedded     `json:"embedded,omitempty"`
}

// StackLimit returns how many units fit in one inventory entry. Zero means
// unlimited.
func (i *ItemDef) StackLimit() int {
	if !i.Stackable {
		return 1
	}
	if i.MaxStack <= 0 {
		return 0
	}
	return i.MaxStack
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}
