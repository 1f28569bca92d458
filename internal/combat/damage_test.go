package combat

import (
	"testing"

	"github.com/samdwyer/questforge/internal/gamedata"
)

func never(int) bool  { return false }
func always(int) bool { return true }

func TestResolveDamagePipeline(t *testing.T) {
	fire := []gamedata.ElementTag{{Key: gamedata.ElementFire}}

	tests := []struct {
		name string
		in   DamageInput
		roll func(int) bool
		want Hit
	}{
		{
			// (1 + 50%) x (1 - 20%) = 1.2
			name: "elemental multiplier",
			in: DamageInput{Raw: 20, Type: gamedata.DamageMagical, Tags: fire,
				Offense: gamedata.ElementMap{gamedata.ElementFire: 50}, Resistance: gamedata.ElementMap{gamedata.ElementFire: 20}},
			roll: never,
			want: Hit{Raw: 20, Final: 24},
		},
		{
			name: "offense clamped to 100",
			in: DamageInput{Raw: 10, Type: gamedata.DamageMagical, Tags: fire,
				Offense: gamedata.ElementMap{gamedata.ElementFire: 250}},
			roll: never,
			want: Hit{Raw: 10, Final: 20},
		},
		{
			name: "full resistance",
			in: DamageInput{Raw: 10, Type: gamedata.DamageMagical, Tags: fire,
				Resistance: gamedata.ElementMap{gamedata.ElementFire: 180}},
			roll: never,
			want: Hit{Raw: 10, Final: 0},
		},
		{
			name: "negative resistance amplifies",
			in: DamageInput{Raw: 10, Type: gamedata.DamageMagical, Tags: fire,
				Resistance: gamedata.ElementMap{gamedata.ElementFire: -500}},
			roll: never,
			want: Hit{Raw: 10, Final: 20},
		},
		{
			name: "tag bonus and fixed damage",
			in: DamageInput{Raw: 8, Type: gamedata.DamageMagical,
				Tags: []gamedata.ElementTag{{Key: gamedata.ElementFire, Fixed: 2, Mult: 10}}},
			roll: never,
			want: Hit{Raw: 10, Final: 11},
		},
		{
			name: "untagged damage ignores element maps",
			in: DamageInput{Raw: 10, Type: gamedata.DamagePhysical,
				Resistance: gamedata.ElementMap{gamedata.ElementFire: 100}},
			roll: never,
			want: Hit{Raw: 10, Final: 10},
		},
		{
			name: "armor applies to physical",
			in:   DamageInput{Raw: 10, Type: gamedata.DamagePhysical, Armor: 4},
			roll: never,
			want: Hit{Raw: 10, Final: 6},
		},
		{
			name: "armor ignored for magical",
			in:   DamageInput{Raw: 10, Type: gamedata.DamageMagical, Armor: 4},
			roll: never,
			want: Hit{Raw: 10, Final: 10},
		},
		{
			name: "floored at zero",
			in:   DamageInput{Raw: 3, Type: gamedata.DamagePhysical, Armor: 10},
			roll: never,
			want: Hit{Raw: 3, Final: 0},
		},
		{
			name: "dealt and taken",
			in:   DamageInput{Raw: 10, Type: gamedata.DamagePhysical, Dealt: 50, Taken: 20},
			roll: never,
			want: Hit{Raw: 10, Final: 18},
		},
		{
			name: "crit after armor",
			in:   DamageInput{Raw: 10, Type: gamedata.DamagePhysical, Armor: 2, CanCrit: true, CritChance: 100},
			roll: always,
			want: Hit{Raw: 10, Final: 12, Crit: true},
		},
		{
			name: "cannot crit",
			in:   DamageInput{Raw: 10, Type: gamedata.DamagePhysical, CritChance: 100},
			roll: always,
			want: Hit{Raw: 10, Final: 10},
		},
		{
			name: "falloff",
			in:   DamageInput{Raw: 40, Falloff: 0.25, Type: gamedata.DamageMagical},
			roll: never,
			want: Hit{Raw: 40, Final: 10},
		},
	}

	for _, tt := range tests {
		if got := ResolveDamage(tt.in, tt.roll); got != tt.want {
			t.Errorf("%s: ResolveDamage() = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestResolveHeal(t *testing.T) {
	if got := ResolveHeal(18, 1, false, 100, always); got.Final != 18 || got.Crit {
		t.Errorf("Heal without crit opt-in = %+v, want 18 no crit", got)
	}
	if got := ResolveHeal(18, 1, true, 100, always); got.Final != 27 || !got.Crit {
		t.Errorf("Heal with crit opt-in = %+v, want 27 crit", got)
	}
	if got := ResolveHeal(18, 0.5, false, 0, never); got.Final != 9 {
		t.Errorf("Heal with falloff = %+v, want 9", got)
	}
}

func TestCritChance(t *testing.T) {
	tests := []struct {
		name                    string
		base, perDex, dexA, dexD int
		want                    int
	}{
		{"disparity +50", 5, 1, 60, 10, 55},
		{"equal dex", 5, 1, 10, 10, 5},
		{"floored at 0", 5, 1, 0, 1000, 0},
		{"capped at 100", 5, 1, 1000, 0, 100},
		{"per-dex multiplier", 5, 3, 12, 10, 11},
	}
	for _, tt := range tests {
		if got := CritChance(tt.base, tt.perDex, tt.dexA, tt.dexD); got != tt.want {
			t.Errorf("%s: CritChance() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestEscapeChance(t *testing.T) {
	tests := []struct {
		name                     string
		base, perAgi, agi, enemy int
		want                     int
	}{
		{"disparity -40 floors at 5", 25, 1, 10, 50, 5},
		{"equal agi", 25, 1, 10, 10, 25},
		{"capped at 95", 25, 1, 1000, 0, 95},
		{"ability bonus", 35, 2, 15, 10, 45},
	}
	for _, tt := range tests {
		if got := EscapeChance(tt.base, tt.perAgi, tt.agi, tt.enemy); got != tt.want {
			t.Errorf("%s: EscapeChance() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestAoeFalloff(t *testing.T) {
	tests := []struct {
		f        float64
		distance int
		want     float64
	}{
		{0.5, 0, 1},
		{0.5, 1, 0.5},
		{0.5, 2, 0.25},
		{0, 3, 1},
		{1.5, 1, 1},
	}
	for _, tt := range tests {
		if got := AoeFalloff(tt.f, tt.distance); got != tt.want {
			t.Errorf("AoeFalloff(%v, %d) = %v, want %v", tt.f, tt.distance, got, tt.want)
		}
	}
}
