package gamedata

// ElementKey names one of the twelve elements.
type ElementKey string

const (
	ElementFire     ElementKey = "fire"
	ElementWater    ElementKey = "water"
	ElementEarth    ElementKey = "earth"
	ElementAir      ElementKey = "air"
	ElementWood     ElementKey = "wood"
	ElementMetal    ElementKey = "metal"
	ElementLight    ElementKey = "light"
	ElementDarkness ElementKey = "darkness"
	ElementLife     ElementKey = "life"
	ElementDeath    ElementKey = "death"
	ElementTime     ElementKey = "time"
	ElementSpace    ElementKey = "space"
)

// Elements lists every element in table order.
var Elements = []ElementKey{
	ElementFire, ElementWater, ElementEarth, ElementAir, ElementWood, ElementMetal,
	ElementLight, ElementDarkness, ElementLife, ElementDeath, ElementTime, ElementSpace,
}

// ElementIndex returns the table position of key, or -1.
func ElementIndex(key ElementKey) int {
	for i, k := range Elements {
		if k == key {
			return i
		}
	}
	return -1
}

// IsValidElement reports whether key is one of the twelve elements.
func IsValidElement(key ElementKey) bool {
	return ElementIndex(key) >= 0
}

// ElementMap maps elements to signed percentages. Values are stored
// unclamped; callers clamp to [-100, 100] at the point of use.
type ElementMap map[ElementKey]int

// Plus returns a new map holding the per-key sum of m and other.
func (m ElementMap) Plus(other ElementMap) ElementMap {
	out := make(ElementMap, len(m)+len(other))
	for k, v := range m {
		out[k] += v
	}
	for k, v := range other {
		out[k] += v
	}
	return out
}

// Clone returns a copy of m that is never nil.
func (m ElementMap) Clone() ElementMap {
	out := make(ElementMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ElementsBundle pairs an offense map with a resistance map.
type ElementsBundle struct {
	Damage     ElementMap `json:"damage,omitempty"`
	Resistance ElementMap `json:"resistance,omitempty"`
}

// ClampPercent bounds a percentage to [-100, 100].
func ClampPercent(v int) int {
	if v < -100 {
		return -100
	}
	if v > 100 {
		return 100
	}
	return v
}
