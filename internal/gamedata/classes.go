package gamedata

// ActionRef names a spell or skill.
type ActionRef struct {
	Type string `json:"type"` // "spell" or "skill"
	ID   string `json:"id"`
}

// ClassDef defines a playable class loaded from JSON.
type ClassDef struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	BaseStats      StatBlock      `json:"baseStats"`
	Elements       ElementsBundle `json:"elements"`
	Requirements   *Requirements  `json:"requirements,omitempty"`
	StartingAction *ActionRef     `json:"startingAction,omitempty"`
	StatGrowth     StatMap        `json:"statGrowth,omitempty"` // per level; nil means +1 to every stat
	SpellPool      []string       `json:"spellPool,omitempty"`  // spells granted every 5 levels
	SkillPool      []string       `json:"skillPool,omitempty"`  // skills granted every 20 levels
}

// ClassesFile represents the structure of classes.json.
type ClassesFile struct {
	Classes []ClassDef `json:"classes"`
}

// RaceDef defines a playable race loaded from JSON.
type RaceDef struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	BaseStats      StatBlock      `json:"baseStats"`
	Elements       ElementsBundle `json:"elements"`
	RaceAbilityID  string         `json:"raceAbilityId,omitempty"`
	AllowedClasses []string       `json:"allowedClasses,omitempty"`
	SpellPool      []string       `json:"spellPool,omitempty"`
}

// RacesFile represents the structure of races.json.
type RacesFile struct {
	Races []RaceDef `json:"races"`
}
