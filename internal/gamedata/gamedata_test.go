package gamedata

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	catalog, err := LoadEmbeddedCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	counts := map[string]int{
		"races":       catalog.Races.Count(),
		"classes":     catalog.Classes.Count(),
		"items":       catalog.Items.Count(),
		"spells":      catalog.Spells.Count(),
		"skills":      catalog.Skills.Count(),
		"abilities":   catalog.Abilities.Count(),
		"monsters":    catalog.Monsters.Count(),
		"villains":    catalog.Villains.Count(),
		"battleNodes": catalog.BattleNodes.Count(),
	}
	for table, n := range counts {
		if n == 0 {
			t.Errorf("Expected %s to be non-empty", table)
		}
	}
}

func TestCatalogLookups(t *testing.T) {
	catalog := MustLoadEmbeddedCatalog()

	goblin := catalog.Monster("mon_goblin")
	if goblin == nil {
		t.Fatal("Goblin not found by ID")
	}
	if goblin.Name != "Goblin" {
		t.Errorf("Expected name 'Goblin', got %q", goblin.Name)
	}
	if goblin.Loot.Gold != [2]int{2, 6} {
		t.Errorf("Goblin gold range = %v, want [2 6]", goblin.Loot.Gold)
	}

	king := catalog.Villain("vil_goblin_king")
	if king == nil {
		t.Fatal("Goblin King not found by ID")
	}
	if king.Equipped["head"] != "itm_crown_of_thorns" {
		t.Errorf("Goblin King head slot = %q, want itm_crown_of_thorns", king.Equipped["head"])
	}

	fireball := catalog.Spell("spl_fireball")
	if fireball == nil {
		t.Fatal("Fireball not found by ID")
	}
	if fireball.Type != ActionDamage || fireball.Scaling.IntMultiplier != 1.5 {
		t.Errorf("Fireball = %+v, want damage spell with intMultiplier 1.5", fireball.ActionDef)
	}

	summon := catalog.Spell("spl_summon_wolf")
	if summon == nil || summon.Summon == nil || summon.Summon.MonsterID != "mon_wolf" {
		t.Errorf("Expected spl_summon_wolf to summon mon_wolf, got %+v", summon)
	}

	node := catalog.Encounter("btl_imp_forge")
	if node == nil {
		t.Fatal("btl_imp_forge not found")
	}
	if node.NextOnEscape != nil {
		t.Errorf("btl_imp_forge should have no escape target, got %q", *node.NextOnEscape)
	}
	if node.NextOnWin == nil || *node.NextOnWin != "sto_forge_cooled" {
		t.Errorf("btl_imp_forge win target = %v, want sto_forge_cooled", node.NextOnWin)
	}

	if catalog.Item("does_not_exist") != nil {
		t.Error("Expected nil for unknown item")
	}
}

func TestNilRegistryIsEmpty(t *testing.T) {
	var nilRegistry *Registry[ItemDef]
	if nilRegistry.GetByID("x") != nil || nilRegistry.Count() != 0 || nilRegistry.All() != nil {
		t.Error("nil registry should behave as empty")
	}
}

func TestActionDefCrits(t *testing.T) {
	yes := true
	tests := []struct {
		name string
		def  ActionDef
		want bool
	}{
		{"damage", ActionDef{Type: ActionDamage}, true},
		{"mixed", ActionDef{Type: ActionMixed}, true},
		{"heal default", ActionDef{Type: ActionHeal}, false},
		{"heal opt-in", ActionDef{Type: ActionHeal, CanCrit: &yes}, true},
		{"buff", ActionDef{Type: ActionBuff}, false},
	}

	for _, tt := range tests {
		if got := tt.def.Crits(); got != tt.want {
			t.Errorf("%s: Crits() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestItemStackLimit(t *testing.T) {
	tests := []struct {
		item ItemDef
		want int
	}{
		{ItemDef{Stackable: false, MaxStack: 10}, 1},
		{ItemDef{Stackable: true, MaxStack: 10}, 10},
		{ItemDef{Stackable: true}, 0},
	}

	for i, tt := range tests {
		if got := tt.item.StackLimit(); got != tt.want {
			t.Errorf("case %d: StackLimit() = %d, want %d", i, got, tt.want)
		}
	}
}

func TestValidateRejectsUnknownKeys(t *testing.T) {
	fsys := minimalFS()
	fsys[AbilitiesFileName] = &fstest.MapFile{Data: []byte(`{"abilities":[
		{"id":"abl_bad","name":"Bad","effects":{"stats":{"strength":2},"elemental":{"offense":{"plasma":10}}}}
	]}`)}

	_, err := LoadCatalog(fsys)
	if err == nil {
		t.Fatal("Expected validation error for unknown keys")
	}
	msg := err.Error()
	if !strings.Contains(msg, `unknown stat "strength"`) {
		t.Errorf("Expected unknown stat error, got: %v", msg)
	}
	if !strings.Contains(msg, `unknown element "plasma"`) {
		t.Errorf("Expected unknown element error, got: %v", msg)
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	fsys := minimalFS()
	delete(fsys, SpellsFileName)

	if _, err := LoadCatalog(fsys); err == nil {
		t.Error("Expected error when spells.json is missing")
	}
}

func TestStaticSource(t *testing.T) {
	catalog := MustLoadEmbeddedCatalog()
	src := NewStaticSource(catalog)

	got, err := src.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog() error: %v", err)
	}
	if got != catalog {
		t.Error("StaticSource should return the wrapped catalog")
	}
}

func TestDirSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewDirSource(t.TempDir()).Catalog(ctx); err == nil {
		t.Error("Expected error from cancelled context")
	}
}

func TestStatBlockGetSet(t *testing.T) {
	var s StatBlock
	for i, key := range StatKeys {
		s.Set(key, i+1)
	}
	for i, key := range StatKeys {
		if got := s.Get(key); got != i+1 {
			t.Errorf("Get(%s) = %d, want %d", key, got, i+1)
		}
	}
	if s.Get("bogus") != 0 {
		t.Error("Get() of unknown key should be 0")
	}

	sum := s.PlusMap(StatMap{StatStr: 10})
	if sum.Str != 11 || s.Str != 1 {
		t.Errorf("PlusMap() = %d (orig %d), want 11 (orig 1)", sum.Str, s.Str)
	}
}

func TestClampPercent(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 0}, {55, 55}, {100, 100}, {250, 100}, {-100, -100}, {-1000, -100},
	}
	for _, tt := range tests {
		if got := ClampPercent(tt.in); got != tt.want {
			t.Errorf("ClampPercent(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestElementMapPlusDoesNotMutate(t *testing.T) {
	a := ElementMap{ElementFire: 80}
	b := ElementMap{ElementFire: 70, ElementWater: 5}

	sum := a.Plus(b)
	if sum[ElementFire] != 150 {
		t.Errorf("Plus() fire = %d, want unclamped 150", sum[ElementFire])
	}
	if a[ElementFire] != 80 {
		t.Errorf("Plus() mutated receiver: fire = %d", a[ElementFire])
	}
}

func TestElementTable(t *testing.T) {
	if len(Elements) != 12 {
		t.Fatalf("Expected 12 elements, got %d", len(Elements))
	}
	for _, key := range Elements {
		if ElementHex(key) == "" {
			t.Errorf("Element %s has no colour", key)
		}
	}
	if IsValidElement("plasma") {
		t.Error("plasma should not be a valid element")
	}
	if ElementIndex(ElementSpace) != 11 {
		t.Errorf("ElementIndex(space) = %d, want 11", ElementIndex(ElementSpace))
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#0000FF", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false}, // Too short
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestElementColor(t *testing.T) {
	r, g, b := ElementColor(ElementFire).RGB()
	if r != 0xff || g != 0x44 || b != 0x44 {
		t.Errorf("ElementColor(fire) = (%d,%d,%d), want (255,68,68)", r, g, b)
	}
}

// minimalFS returns a content directory where every table is present and empty.
func minimalFS() fstest.MapFS {
	empty := func(key string) *fstest.MapFile {
		return &fstest.MapFile{Data: []byte(`{"` + key + `":[]}`)}
	}
	return fstest.MapFS{
		RacesFileName:       empty("races"),
		ClassesFileName:     empty("classes"),
		ItemsFileName:       empty("items"),
		SpellsFileName:      empty("spells"),
		SkillsFileName:      empty("skills"),
		AbilitiesFileName:   empty("abilities"),
		MonstersFileName:    empty("monsters"),
		VillainsFileName:    empty("villains"),
		BattleNodesFileName: empty("battleNodes"),
	}
}
