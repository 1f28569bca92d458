package gamedata

// StatKey names one of the eight character stats.
type StatKey string

const (
	StatStr  StatKey = "str"
	StatInt  StatKey = "int"
	StatWis  StatKey = "wis"
	StatEnd  StatKey = "end"
	StatDex  StatKey = "dex"
	StatAgi  StatKey = "agi"
	StatLuck StatKey = "luck"
	StatChar StatKey = "char"
)

// StatKeys lists every stat in display order.
var StatKeys = []StatKey{StatStr, StatInt, StatWis, StatEnd, StatDex, StatAgi, StatLuck, StatChar}

// IsValidStat reports whether key is one of the eight stats.
func IsValidStat(key StatKey) bool {
	for _, k := range StatKeys {
		if k == key {
			return true
		}
	}
	return false
}

// StatBlock holds a full set of stats.
type StatBlock struct {
	Str  int `json:"str"`
	Int  int `json:"int"`
	Wis  int `json:"wis"`
	End  int `json:"end"`
	Dex  int `json:"dex"`
	Agi  int `json:"agi"`
	Luck int `json:"luck"`
	Char int `json:"char"`
}

// Get returns the value for key, or 0 for an unknown key.
func (s StatBlock) Get(key StatKey) int {
	switch key {
	case StatStr:
		return s.Str
	case StatInt:
		return s.Int
	case StatWis:
		return s.Wis
	case StatEnd:
		return s.End
	case StatDex:
		return s.Dex
	case StatAgi:
		return s.Agi
	case StatLuck:
		return s.Luck
	case StatChar:
		return s.Char
	default:
		return 0
	}
}

// Set assigns value to key. Unknown keys are ignored.
func (s *StatBlock) Set(key StatKey, value int) {
	switch key {
	case StatStr:
		s.Str = value
	case StatInt:
		s.Int = value
	case StatWis:
		s.Wis = value
	case StatEnd:
		s.End = value
	case StatDex:
		s.Dex = value
	case StatAgi:
		s.Agi = value
	case StatLuck:
		s.Luck = value
	case StatChar:
		s.Char = value
	}
}

// Plus returns the field-wise sum of s and other.
func (s StatBlock) Plus(other StatBlock) StatBlock {
	return StatBlock{
		Str:  s.Str + other.Str,
		Int:  s.Int + other.Int,
		Wis:  s.Wis + other.Wis,
		End:  s.End + other.End,
		Dex:  s.Dex + other.Dex,
		Agi:  s.Agi + other.Agi,
		Luck: s.Luck + other.Luck,
		Char: s.Char + other.Char,
	}
}

// PlusMap returns s with every entry of m added to the matching stat.
func (s StatBlock) PlusMap(m StatMap) StatBlock {
	for k, v := range m {
		s.Set(k, s.Get(k)+v)
	}
	return s
}

// StatMap is a partial stat block, used for bonuses and thresholds where only
// the listed keys matter.
type StatMap map[StatKey]int
