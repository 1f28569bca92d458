package combat

import "github.com/samdwyer/questforge/internal/gamedata"

// EventAction names what an event records.
type EventAction string

const (
	EventStart   EventAction = "start"
	EventAttack  EventAction = "attack"
	EventSpell   EventAction = "spell"
	EventSkill   EventAction = "skill"
	EventItem    EventAction = "item"
	EventSummon  EventAction = "summon"
	EventDismiss EventAction = "dismiss"
	EventDefend  EventAction = "defend"
	EventEscape  EventAction = "escape"
	EventRegen   EventAction = "regen"
	EventTick    EventAction = "tick"
	EventExpire  EventAction = "expire"
	EventDefeat  EventAction = "defeated"
	EventTimeout EventAction = "timeout"
	EventOutcome EventAction = "outcome"
)

// Event is one append-only log record. Amounts line up with TargetIDs.
type Event struct {
	Round       int                   `json:"round"`
	ActorID     string                `json:"actorId"`
	Action      EventAction           `json:"action"`
	RefID       string                `json:"refId,omitempty"` // spell, skill, item or effect id
	TargetIDs   []string              `json:"targetIds"`
	Amounts     []int                 `json:"amounts"`
	Raw         []int                 `json:"raw,omitempty"`
	MPAmounts   []int                 `json:"mpAmounts,omitempty"`
	ElementTags []gamedata.ElementKey `json:"elementTags"`
	Crit        bool                  `json:"crit"`
	Failed      bool                  `json:"failed,omitempty"`
	ErrorCode   string                `json:"errorCode,omitempty"`
	Message     string                `json:"message"`
}

// TotalAmount sums the event's amounts.
func (e *Event) TotalAmount() int {
	total := 0
	for _, a := range e.Amounts {
		total += a
	}
	return total
}
