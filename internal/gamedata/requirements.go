package gamedata

// ItemQty is an item reference with a quantity.
type ItemQty struct {
	ItemID string `json:"itemId"`
	Qty    int    `json:"qty,omitempty"`
}

// Requirements gates choices, equipment and learnable actions. Every field is
// optional; an absent field places no constraint.
type Requirements struct {
	Level      int        `json:"level,omitempty"`
	Stats      StatMap    `json:"stats,omitempty"`
	Elements   ElementMap `json:"elements,omitempty"`
	ClassIDs   []string   `json:"classIds,omitempty"`
	RaceIDs    []string   `json:"raceIds,omitempty"`
	QuestFlags []string   `json:"questFlags,omitempty"`
	Items      []ItemQty  `json:"items,omitempty"`
}

// Rewards are granted on story choices and as encounter bonuses.
type Rewards struct {
	XP         int        `json:"xp,omitempty"`
	Gold       int        `json:"gold,omitempty"`
	Items      []ItemQty  `json:"items,omitempty"`
	Stats      StatMap    `json:"stats,omitempty"`
	Elements   ElementMap `json:"elements,omitempty"`
	QuestFlags []string   `json:"questFlags,omitempty"`
}
