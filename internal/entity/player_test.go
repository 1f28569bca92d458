package entity

import (
	"reflect"
	"testing"

	"github.com/samdwyer/questforge/internal/gamedata"
)

func TestInventoryAddStacking(t *testing.T) {
	tests := []struct {
		name  string
		start Inventory
		qty   int
		limit int
		want  Inventory
	}{
		{
			name:  "new item",
			qty:   3,
			limit: 10,
			want:  Inventory{{"potion", 3}},
		},
		{
			name:  "tops up existing stack",
			start: Inventory{{"potion", 8}},
			qty:   2,
			limit: 10,
			want:  Inventory{{"potion", 10}},
		},
		{
			name:  "overflows into new stacks",
			start: Inventory{{"potion", 8}},
			qty:   15,
			limit: 10,
			want:  Inventory{{"potion", 10}, {"potion", 10}, {"potion", 3}},
		},
		{
			name:  "non-stackable gets one entry per unit",
			start: Inventory{{"sword", 1}},
			qty:   2,
			limit: 1,
			want:  Inventory{{"sword", 1}, {"sword", 1}, {"sword", 1}},
		},
		{
			name:  "unlimited merges into first stack",
			start: Inventory{{"ore", 50}, {"gem", 1}},
			qty:   70,
			limit: 0,
			want:  Inventory{{"ore", 120}, {"gem", 1}},
		},
		{
			name:  "zero quantity is a no-op",
			start: Inventory{{"gem", 1}},
			qty:   0,
			limit: 5,
			want:  Inventory{{"gem", 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := tt.start.Clone()
			inv.Add(tt.want[0].ItemID, tt.qty, tt.limit)
			if !reflect.DeepEqual(inv, tt.want) {
				t.Errorf("Add() = %v, want %v", inv, tt.want)
			}
		})
	}
}

func TestInventoryRemove(t *testing.T) {
	inv := Inventory{{"potion", 10}, {"gem", 1}, {"potion", 3}}

	if inv.Remove("potion", 20) {
		t.Fatal("Remove() should fail when there are not enough units")
	}
	if inv.Count("potion") != 13 {
		t.Fatalf("failed Remove() changed inventory: %v", inv)
	}

	if !inv.Remove("potion", 5) {
		t.Fatal("Remove() should succeed")
	}
	want := Inventory{{"potion", 8}, {"gem", 1}}
	if !reflect.DeepEqual(inv, want) {
		t.Errorf("Remove() = %v, want %v", inv, want)
	}

	if !inv.Remove("gem", 1) {
		t.Fatal("Remove(gem) should succeed")
	}
	if inv.Count("gem") != 0 || len(inv) != 1 {
		t.Errorf("empty stacks should be dropped, got %v", inv)
	}
}

func TestPlayerHasQuestFlag(t *testing.T) {
	p := &Player{QuestState: map[string]any{
		"met_king":   true,
		"refused":    false,
		"kills":      float64(3),
		"zero":       float64(0),
		"note":       "yes",
		"empty_note": "",
		"nothing":    nil,
	}}

	tests := map[string]bool{
		"met_king":   true,
		"refused":    false,
		"kills":      true,
		"zero":       false,
		"note":       true,
		"empty_note": false,
		"nothing":    false,
		"missing":    false,
	}
	for flag, want := range tests {
		if got := p.HasQuestFlag(flag); got != want {
			t.Errorf("HasQuestFlag(%q) = %v, want %v", flag, got, want)
		}
	}

	p.SetQuestFlag("missing")
	if !p.HasQuestFlag("missing") {
		t.Error("SetQuestFlag() did not set the flag")
	}
}

func TestPlayerCloneIsDeep(t *testing.T) {
	p := &Player{
		ID:         "p1",
		Spells:     []string{"spl_fireball"},
		Inventory:  Inventory{{"potion", 2}},
		Equipped:   map[string]string{SlotHead: "helm"},
		QuestState: map[string]any{"a": true},
		Elements: gamedata.ElementsBundle{
			Damage: gamedata.ElementMap{gamedata.ElementFire: 10},
		},
	}

	c := p.Clone()
	c.Spells[0] = "changed"
	c.Inventory[0].Qty = 99
	c.Equipped[SlotHead] = "other"
	c.QuestState["a"] = false
	c.Elements.Damage[gamedata.ElementFire] = 50

	if p.Spells[0] != "spl_fireball" || p.Inventory[0].Qty != 2 || p.Equipped[SlotHead] != "helm" ||
		p.QuestState["a"] != true || p.Elements.Damage[gamedata.ElementFire] != 10 {
		t.Errorf("Clone() shares state with the original: %+v", p)
	}
}

func TestLearnSpellDedupes(t *testing.T) {
	p := &Player{}
	if !p.LearnSpell("spl_heal") {
		t.Error("first LearnSpell() should return true")
	}
	if p.LearnSpell("spl_heal") {
		t.Error("second LearnSpell() should return false")
	}
	if !p.LearnSkill("skl_cleave") || !p.KnowsSkill("skl_cleave") {
		t.Error("LearnSkill() did not add the skill")
	}
}

func TestEquippedItemIDsStableOrder(t *testing.T) {
	p := &Player{Equipped: map[string]string{
		SlotRingLeft:   "ring",
		SlotBody:       "armor",
		SlotMainWeapon: "sword",
		SlotHead:       "",
	}}

	got := p.EquippedItemIDs()
	want := []string{"armor", "sword", "ring"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EquippedItemIDs() = %v, want %v", got, want)
	}
}
