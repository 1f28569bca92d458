package combat

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/samdwyer/questforge/internal/entity"
	"github.com/samdwyer/questforge/internal/gamedata"
	"github.com/samdwyer/questforge/internal/rules"
)

// Phase is the scheduler state.
type Phase int

const (
	PhaseRoundStart Phase = iota
	PhaseActorTurn
	PhaseRoundEnd
	PhaseTerminal
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRoundStart:
		return "round_start"
	case PhaseActorTurn:
		return "actor_turn"
	case PhaseRoundEnd:
		return "round_end"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Outcome is the battle result.
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeWin        Outcome = "win"
	OutcomeLose       Outcome = "lose"
	OutcomeEscape     Outcome = "escape"
)

// Terminal reports whether the outcome ends the battle.
func (o Outcome) Terminal() bool {
	return o == OutcomeWin || o == OutcomeLose || o == OutcomeEscape
}

// Content is the read-only catalog a battle reads. *gamedata.Catalog
// satisfies it.
type Content interface {
	rules.Content
	Spell(id string) *gamedata.SpellDef
	Skill(id string) *gamedata.SkillDef
	Monster(id string) *gamedata.MonsterDef
}

// Battle holds all state for one encounter.
type Battle struct {
	Round      int
	Phase      Phase
	Combatants []*Combatant // insertion order; also the turn-order tie-break
	Log        []Event
	Outcome    Outcome

	// Inventory is the player's battle-scoped inventory. Items used in
	// battle are drawn from it and counted in ItemsUsed.
	Inventory entity.Inventory
	ItemsUsed map[string]int

	content   Content
	rng       *rand.Rand
	summonSeq map[string]int
}

// NewBattle creates an empty battle. All randomness is drawn from a single
// source seeded with seed.
func NewBattle(content Content, seed int64) *Battle {
	return &Battle{
		Round:     1,
		Phase:     PhaseRoundStart,
		Outcome:   OutcomeInProgress,
		ItemsUsed: make(map[string]int),
		content:   content,
		rng:       rand.New(rand.NewSource(seed)),
		summonSeq: make(map[string]int),
	}
}

// Content returns the catalog the battle was created with.
func (b *Battle) Content() Content { return b.content }

// Rand returns the battle's random source.
func (b *Battle) Rand() *rand.Rand { return b.rng }

// AddCombatant appends a combatant to the roster.
func (b *Battle) AddCombatant(c *Combatant) {
	b.Combatants = append(b.Combatants, c)
}

// Combatant returns the combatant with the given id, or nil.
func (b *Battle) Combatant(id string) *Combatant {
	for _, c := range b.Combatants {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Living returns the active combatants of a side in roster order.
func (b *Battle) Living(side Side) []*Combatant {
	var out []*Combatant
	for _, c := range b.Combatants {
		if c.Side == side && c.Active() {
			out = append(out, c)
		}
	}
	return out
}

// Player returns the player's combatant, or nil.
func (b *Battle) Player() *Combatant {
	for _, c := range b.Combatants {
		if c.Kind == KindPlayer {
			return c
		}
	}
	return nil
}

// TurnOrder returns the combatants acting this round: every active
// combatant that has joined, by effective agility descending, ties in
// roster order.
func (b *Battle) TurnOrder() []*Combatant {
	var order []*Combatant
	for _, c := range b.Combatants {
		if c.Active() && c.JoinRound <= b.Round {
			order = append(order, c)
		}
	}
	slices.SortStableFunc(order, func(x, y *Combatant) int {
		return y.Stats().Agi - x.Stats().Agi
	})
	return order
}

// CheckOutcome sets a win or loss once a side is wiped out. Enemies are
// checked first, so a mutual wipe is a win. It returns true if the battle
// is over.
func (b *Battle) CheckOutcome() bool {
	if b.Outcome.Terminal() {
		return true
	}
	switch {
	case len(b.Living(SideEnemy)) == 0:
		b.finish(OutcomeWin, "All enemies have been defeated!")
	case len(b.Living(SidePlayer)) == 0:
		b.finish(OutcomeLose, "You have been defeated!")
	default:
		return false
	}
	return true
}

func (b *Battle) finish(outcome Outcome, message string) {
	b.Outcome = outcome
	b.Phase = PhaseTerminal
	b.emit(Event{Action: EventOutcome, RefID: string(outcome), Message: message})
}

// emit appends an event stamped with the current round.
func (b *Battle) emit(ev Event) {
	ev.Round = b.Round
	if ev.TargetIDs == nil {
		ev.TargetIDs = []string{}
	}
	if ev.Amounts == nil {
		ev.Amounts = []int{}
	}
	if ev.ElementTags == nil {
		ev.ElementTags = []gamedata.ElementKey{}
	}
	b.Log = append(b.Log, ev)
}

// nextSummonID returns a deterministic id for a new summon.
func (b *Battle) nextSummonID(monsterID string) string {
	b.summonSeq[monsterID]++
	return fmt.Sprintf("summon:%s#%d", monsterID, b.summonSeq[monsterID])
}

// roll returns true with the given percent chance.
func (b *Battle) roll(chance int) bool {
	return b.rng.Intn(100) < chance
}
