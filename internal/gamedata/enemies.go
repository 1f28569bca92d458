package gamedata

// LootItem is one roll on an enemy's loot table.
type LootItem struct {
	ItemID string  `json:"itemId"`
	Chance float64 `json:"chance"` // probability in [0,1]
	QtyMin int     `json:"qtyMin,omitempty"`
	QtyMax int     `json:"qtyMax,omitempty"`
}

// Loot is what an enemy yields when defeated.
type Loot struct {
	XP    int        `json:"xp"`
	Gold  [2]int     `json:"gold"` // [min, max]
	Items []LootItem `json:"items,omitempty"`
}

// MonsterDef defines a monster loaded from JSON. Monsters are also the
// templates for summons.
type MonsterDef struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	BaseStats   StatBlock      `json:"baseStats"`
	Elements    ElementsBundle `json:"elements"`
	Spells      []string       `json:"spells,omitempty"`
	Skills      []string       `json:"skills,omitempty"`
	Abilities   []string       `json:"abilities,omitempty"`
	Loot        Loot           `json:"loot"`
}

// MonstersFile represents the structure of monsters.json.
type MonstersFile struct {
	Monsters []MonsterDef `json:"monsters"`
}

// VillainDef defines a boss enemy that can equip items.
type VillainDef struct {
	MonsterDef
	Equipped map[string]string `json:"equipped,omitempty"` // slot -> item id
}

// VillainsFile represents the structure of villains.json.
type VillainsFile struct {
	Villains []VillainDef `json:"villains"`
}

// EnemyKind distinguishes monsters from villains in an encounter.
type EnemyKind string

const (
	EnemyMonster EnemyKind = "monster"
	EnemyVillain EnemyKind = "villain"
)

// EnemyRef names one enemy of an encounter.
type EnemyRef struct {
	Kind EnemyKind `json:"kind"`
	ID   string    `json:"id"`
}

// Penalty is applied to the player on a lost or fled battle.
type Penalty struct {
	GoldFlat    int `json:"goldFlat,omitempty"`
	GoldPercent int `json:"goldPercent,omitempty"`
}

// Penalties are per-outcome penalty rules of an encounter.
type Penalties struct {
	OnLose   *Penalty `json:"onLose,omitempty"`
	OnEscape *Penalty `json:"onEscape,omitempty"`
}

// BattleNodeDef defines an encounter loaded from JSON.
type BattleNodeDef struct {
	ID           string     `json:"id"`
	StoryID      string     `json:"storyId,omitempty"`
	Title        string     `json:"title,omitempty"`
	Description  string     `json:"description,omitempty"`
	Enemies      []EnemyRef `json:"enemies"`
	Environment  string     `json:"environment,omitempty"`
	Rewards      *Rewards   `json:"rewards,omitempty"` // bonus on win, on top of enemy loot
	Penalties    *Penalties `json:"penalties,omitempty"`
	NextOnWin    *string    `json:"nextOnWin,omitempty"`
	NextOnLose   *string    `json:"nextOnLose,omitempty"`
	NextOnEscape *string    `json:"nextOnEscape,omitempty"`
}

// BattleNodesFile represents the structure of battleNodes.json.
type BattleNodesFile struct {
	BattleNodes []BattleNodeDef `json:"battleNodes"`
}
