package gamedata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Catalog is an immutable snapshot of every content table. A battle reads
// one catalog for its whole lifetime.
type Catalog struct {
	Races       *Registry[RaceDef]
	Classes     *Registry[ClassDef]
	Items       *Registry[ItemDef]
	Spells      *Registry[SpellDef]
	Skills      *Registry[SkillDef]
	Abilities   *Registry[AbilityDef]
	Monsters    *Registry[MonsterDef]
	Villains    *Registry[VillainDef]
	BattleNodes *Registry[BattleNodeDef]
}

// Content file names.
const (
	RacesFileName       = "races.json"
	ClassesFileName     = "classes.json"
	ItemsFileName       = "items.json"
	SpellsFileName      = "spells.json"
	SkillsFileName      = "skills.json"
	AbilitiesFileName   = "abilities.json"
	MonstersFileName    = "monsters.json"
	VillainsFileName    = "villains.json"
	BattleNodesFileName = "battleNodes.json"
)

// LoadCatalog reads every content table from fsys and validates it.
func LoadCatalog(fsys fs.FS) (*Catalog, error) {
	races, err := LoadFS[RacesFile](fsys, RacesFileName)
	if err != nil {
		return nil, err
	}
	classes, err := LoadFS[ClassesFile](fsys, ClassesFileName)
	if err != nil {
		return nil, err
	}
	items, err := LoadFS[ItemsFile](fsys, ItemsFileName)
	if err != nil {
		return nil, err
	}
	spells, err := LoadFS[SpellsFile](fsys, SpellsFileName)
	if err != nil {
		return nil, err
	}
	skills, err := LoadFS[SkillsFile](fsys, SkillsFileName)
	if err != nil {
		return nil, err
	}
	abilities, err := LoadFS[AbilitiesFile](fsys, AbilitiesFileName)
	if err != nil {
		return nil, err
	}
	monsters, err := LoadFS[MonstersFile](fsys, MonstersFileName)
	if err != nil {
		return nil, err
	}
	villains, err := LoadFS[VillainsFile](fsys, VillainsFileName)
	if err != nil {
		return nil, err
	}
	nodes, err := LoadFS[BattleNodesFile](fsys, BattleNodesFileName)
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{
		Races:       NewRegistry(races.Races, func(d *RaceDef) string { return d.ID }),
		Classes:     NewRegistry(classes.Classes, func(d *ClassDef) string { return d.ID }),
		Items:       NewRegistry(items.Items, func(d *ItemDef) string { return d.ID }),
		Spells:      NewRegistry(spells.Spells, func(d *SpellDef) string { return d.ID }),
		Skills:      NewRegistry(skills.Skills, func(d *SkillDef) string { return d.ID }),
		Abilities:   NewRegistry(abilities.Abilities, func(d *AbilityDef) string { return d.ID }),
		Monsters:    NewRegistry(monsters.Monsters, func(d *MonsterDef) string { return d.ID }),
		Villains:    NewRegistry(villains.Villains, func(d *VillainDef) string { return d.ID }),
		BattleNodes: NewRegistry(nodes.BattleNodes, func(d *BattleNodeDef) string { return d.ID }),
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// LoadEmbeddedCatalog loads the content tables shipped with the binary.
func LoadEmbeddedCatalog() (*Catalog, error) {
	return LoadCatalog(dataFS)
}

// MustLoadEmbeddedCatalog loads the embedded catalog, panicking on error.
func MustLoadEmbeddedCatalog() *Catalog {
	catalog, err := LoadEmbeddedCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

// Race, Class, Item, Ability, Spell, Skill and Monster satisfy the lookups
// used by stat aggregation and the battle engine.

func (c *Catalog) Race(id string) *RaceDef       { return c.Races.GetByID(id) }
func (c *Catalog) Class(id string) *ClassDef     { return c.Classes.GetByID(id) }
func (c *Catalog) Item(id string) *ItemDef       { return c.Items.GetByID(id) }
func (c *Catalog) Ability(id string) *AbilityDef { return c.Abilities.GetByID(id) }
func (c *Catalog) Spell(id string) *SpellDef     { return c.Spells.GetByID(id) }
func (c *Catalog) Skill(id string) *SkillDef     { return c.Skills.GetByID(id) }
func (c *Catalog) Monster(id string) *MonsterDef { return c.Monsters.GetByID(id) }
func (c *Catalog) Villain(id string) *VillainDef { return c.Villains.GetByID(id) }

// Encounter returns the battle node with the given id, or nil.
func (c *Catalog) Encounter(id string) *BattleNodeDef { return c.BattleNodes.GetByID(id) }

// Validate rejects stat and element keys outside the fixed tables.
func (c *Catalog) Validate() error {
	var errs []error
	check := func(where string, stats StatMap, elems ...ElementMap) {
		for k := range stats {
			if !IsValidStat(k) {
				errs = append(errs, fmt.Errorf("%s: unknown stat %q", where, k))
			}
		}
		for _, m := range elems {
			for k := range m {
				if !IsValidElement(k) {
					errs = append(errs, fmt.Errorf("%s: unknown element %q", where, k))
				}
			}
		}
	}
	checkReq := func(where string, r *Requirements) {
		if r != nil {
			check(where+".requirements", r.Stats, r.Elements)
		}
	}

	for _, d := range c.Races.All() {
		check("race "+d.ID, nil, d.Elements.Damage, d.Elements.Resistance)
	}
	for _, d := range c.Classes.All() {
		check("class "+d.ID, d.StatGrowth, d.Elements.Damage, d.Elements.Resistance)
		checkReq("class "+d.ID, d.Requirements)
	}
	for _, d := range c.Items.All() {
		checkReq("item "+d.ID, d.Requirements)
		if d.Bonuses != nil {
			check("item "+d.ID+".bonuses", d.Bonuses.Stats, d.Bonuses.Offense, d.Bonuses.Resistance)
		}
		if d.Potion != nil {
			check("item "+d.ID+".potion", d.Potion.PerStatMap, d.Potion.PerElementMap)
		}
	}
	for _, d := range c.Abilities.All() {
		checkReq("ability "+d.ID, d.Requirements)
		check("ability "+d.ID, d.Effects.Stats)
		if d.Effects.Elemental != nil {
			check("ability "+d.ID+".elemental", nil, d.Effects.Elemental.Offense, d.Effects.Elemental.Defense)
		}
	}
	checkAction := func(kind string, a *ActionDef) {
		where := kind + " " + a.ID
		checkReq(where, a.Requirements)
		for _, tag := range a.Elements {
			if !IsValidElement(tag.Key) {
				errs = append(errs, fmt.Errorf("%s: unknown element %q", where, tag.Key))
			}
		}
		if a.Effect != nil {
			check(where+".effect", a.Effect.Stats, a.Effect.Offense, a.Effect.Resistance)
		}
	}
	for i := range c.Spells.All() {
		checkAction("spell", &c.Spells.All()[i].ActionDef)
	}
	for i := range c.Skills.All() {
		checkAction("skill", &c.Skills.All()[i].ActionDef)
	}
	for _, d := range c.Monsters.All() {
		check("monster "+d.ID, nil, d.Elements.Damage, d.Elements.Resistance)
	}
	for _, d := range c.Villains.All() {
		check("villain "+d.ID, nil, d.Elements.Damage, d.Elements.Resistance)
	}
	for _, d := range c.BattleNodes.All() {
		if d.Rewards != nil {
			check("battle node "+d.ID+".rewards", d.Rewards.Stats, d.Rewards.Elements)
		}
	}
	return errors.Join(errs...)
}

// StaticSource serves one catalog for every battle.
type StaticSource struct {
	catalog *Catalog
}

// NewStaticSource wraps an already loaded catalog.
func NewStaticSource(catalog *Catalog) *StaticSource {
	return &StaticSource{catalog: catalog}
}

// Catalog returns the wrapped catalog.
func (s *StaticSource) Catalog(ctx context.Context) (*Catalog, error) {
	return s.catalog, nil
}

// DirSource re-reads the content tables from a directory on every call so
// that admin edits become visible at the next battle start, never mid-battle.
type DirSource struct {
	fsys fs.FS
}

// NewDirSource reads content tables from dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{fsys: os.DirFS(dir)}
}

// Catalog loads a fresh snapshot of the directory.
func (s *DirSource) Catalog(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadCatalog(s.fsys)
}
