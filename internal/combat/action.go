package combat

// ActionKind is what a combatant does on its turn.
type ActionKind string

const (
	ActionAttack ActionKind = "attack"
	ActionSpell  ActionKind = "spell"
	ActionSkill  ActionKind = "skill"
	ActionItem   ActionKind = "item"
	ActionSummon ActionKind = "summon" // a spell whose type is summon
	ActionDefend ActionKind = "defend"
	ActionEscape ActionKind = "escape"
)

// Action is a request to resolve one combatant's turn. It is consumed
// immediately by Resolve and never stored.
type Action struct {
	ActorID   string     `json:"actorId"`
	Kind      ActionKind `json:"kind"`
	RefID     string     `json:"refId,omitempty"`     // spell, skill or item id
	TargetIDs []string   `json:"targetIds,omitempty"` // first entry is the primary target
}

// Target returns the primary target id, or "".
func (a Action) Target() string {
	if len(a.TargetIDs) == 0 {
		return ""
	}
	return a.TargetIDs[0]
}

// cooldownKey namespaces cooldowns so a spell and a skill may share an id.
func cooldownKey(kind ActionKind, id string) string {
	return string(kind) + ":" + id
}
