package combat

import (
	"math"

	"github.com/samdwyer/questforge/internal/gamedata"
)

// Pipeline constants.
const (
	CritMultiplier = 1.5
	MinEscape      = 5
	MaxEscape      = 95
	DefendPercent  = -50
)

// RawMagnitude is step 1: base + stat x multiplier.
func RawMagnitude(s gamedata.Scaling, stat int, multiplier float64) float64 {
	return float64(s.Base) + float64(stat)*multiplier
}

// ElementMultiplier is step 2. For each tag the attacker's offense (plus
// the tag's own bonus) and the defender's resistance are clamped to
// [-100, 100] and combined as (1 + off/100) x (1 - res/100); tags multiply.
func ElementMultiplier(offense, resistance gamedata.ElementMap, tags []gamedata.ElementTag) float64 {
	m := 1.0
	for _, tag := range tags {
		off := gamedata.ClampPercent(offense[tag.Key] + tag.Mult)
		res := gamedata.ClampPercent(resistance[tag.Key])
		m *= (1 + float64(off)/100) * (1 - float64(res)/100)
	}
	return m
}

// GeneralMultiplier is step 3: attacker dealt% and defender taken%, each
// clamped to [-100, 100].
func GeneralMultiplier(dealt, taken int) float64 {
	return (1 + float64(gamedata.ClampPercent(dealt))/100) * (1 + float64(gamedata.ClampPercent(taken))/100)
}

// CritChance is clamp(base + perDex x (dexA - dexD), 0, 100).
func CritChance(base, perDex, attackerDex, defenderDex int) int {
	return clamp(base+perDex*(attackerDex-defenderDex), 0, 100)
}

// EscapeChance is clamp(base + perAgi x (agi - strongest enemy agi), 5, 95).
func EscapeChance(base, perAgi, agi, maxEnemyAgi int) int {
	return clamp(base+perAgi*(agi-maxEnemyAgi), MinEscape, MaxEscape)
}

// DamageInput is everything the pipeline needs for one target.
type DamageInput struct {
	Raw        float64 // step 1 result, before falloff
	Falloff    float64 // AoE multiplier; 1 for the primary target
	Type       gamedata.DamageType
	Tags       []gamedata.ElementTag
	Offense    gamedata.ElementMap // attacker
	Resistance gamedata.ElementMap // defender
	Dealt      int                 // attacker physicalDealt or magicalDealt
	Taken      int                 // defender physicalTaken or magicalTaken
	Armor      int                 // defender flat armor, physical only
	CanCrit    bool
	CritChance int
}

// Hit is the pipeline result for one target.
type Hit struct {
	Raw   int
	Final int
	Crit  bool
}

// ResolveDamage runs the damage pipeline in its fixed order: raw magnitude
// plus fixed element damage, falloff, elements, dealt/taken, armor, crit,
// then rounding and the floor at 0. roll decides the crit.
func ResolveDamage(in DamageInput, roll func(chance int) bool) Hit {
	amount := in.Raw
	for _, tag := range in.Tags {
		amount += float64(tag.Fixed)
	}
	hit := Hit{Raw: roundNonNegative(amount)}

	amount *= falloff(in.Falloff)
	amount *= ElementMultiplier(in.Offense, in.Resistance, in.Tags)
	amount *= GeneralMultiplier(in.Dealt, in.Taken)
	if in.Type == gamedata.DamagePhysical {
		amount -= float64(in.Armor)
	}
	if in.CanCrit && roll(in.CritChance) {
		amount *= CritMultiplier
		hit.Crit = true
	}

	hit.Final = roundNonNegative(amount)
	return hit
}

// ResolveHeal computes a heal. Heals skip elements and taken% and only
// crit when the action opts in.
func ResolveHeal(raw, falloffMult float64, canCrit bool, critChance int, roll func(chance int) bool) Hit {
	hit := Hit{Raw: roundNonNegative(raw)}
	amount := raw * falloff(falloffMult)
	if canCrit && roll(critChance) {
		amount *= CritMultiplier
		hit.Crit = true
	}
	hit.Final = roundNonNegative(amount)
	return hit
}

// AoeFalloff returns falloff^distance for a secondary target. A falloff
// outside (0, 1] disables falloff.
func AoeFalloff(f float64, distance int) float64 {
	if f <= 0 || f > 1 || distance <= 0 {
		return 1
	}
	return math.Pow(f, float64(distance))
}

func falloff(f float64) float64 {
	if f <= 0 {
		return 1
	}
	return f
}

func roundNonNegative(v float64) int {
	return max(int(math.Round(v)), 0)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
