// Package rewards turns a finished battle into reward and penalty deltas
// on the player record and picks the next story node.
package rewards

import (
	"fmt"
	"math/rand"

	"github.com/samdwyer/questforge/internal/combat"
	"github.com/samdwyer/questforge/internal/entity"
	apperrors "github.com/samdwyer/questforge/internal/errors"
	"github.com/samdwyer/questforge/internal/gamedata"
)

// Bundle is the reward or penalty of one battle.
type Bundle struct {
	XP       int                `json:"xp"`
	Gold     int                `json:"gold"`
	Items    []gamedata.ItemQty `json:"items"`
	GoldLost int                `json:"goldLost,omitempty"`

	// Permanent bonuses and quest flags from the encounter's bonus block.
	Stats      gamedata.StatMap    `json:"stats,omitempty"`
	Elements   gamedata.ElementMap `json:"elements,omitempty"`
	QuestFlags []string            `json:"questFlags,omitempty"`
}

// ItemLookup resolves item definitions for stacking.
type ItemLookup interface {
	Item(id string) *gamedata.ItemDef
}

// Compute sums the loot of every defeated enemy and adds the encounter's
// bonus. Gold is sampled uniformly within each enemy's range and each loot
// entry is rolled independently, all from rng.
func Compute(defeated []gamedata.Loot, bonus *gamedata.Rewards, rng *rand.Rand) Bundle {
	bundle := Bundle{Items: []gamedata.ItemQty{}}
	for _, loot := range defeated {
		bundle.XP += loot.XP
		bundle.Gold += sampleGold(loot.Gold, rng)
		for _, entry := range loot.Items {
			if rng.Float64() >= entry.Chance {
				continue
			}
			bundle.Items = append(bundle.Items, gamedata.ItemQty{
				ItemID: entry.ItemID,
				Qty:    sampleQty(entry.QtyMin, entry.QtyMax, rng),
			})
		}
	}

	if bonus != nil {
		bundle.XP += bonus.XP
		bundle.Gold += bonus.Gold
		for _, it := range bonus.Items {
			bundle.Items = append(bundle.Items, gamedata.ItemQty{ItemID: it.ItemID, Qty: max(it.Qty, 1)})
		}
		bundle.Stats = bonus.Stats
		bundle.Elements = bonus.Elements
		bundle.QuestFlags = bonus.QuestFlags
	}
	return bundle
}

func sampleGold(r [2]int, rng *rand.Rand) int {
	lo, hi := r[0], r[1]
	if hi <= lo {
		return max(lo, 0)
	}
	return lo + rng.Intn(hi-lo+1)
}

func sampleQty(lo, hi int, rng *rand.Rand) int {
	lo = max(lo, 1)
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// Apply merges a reward bundle into the player. Items stack with existing
// entries up to each item's stack limit and overflow into new entries. XP
// is added as-is; level-up processing is the caller's job.
func Apply(p *entity.Player, b Bundle, items ItemLookup) error {
	for _, it := range b.Items {
		def := items.Item(it.ItemID)
		if def == nil {
			return apperrors.WithMetadata(apperrors.CodeUnknownReference,
				fmt.Sprintf("reward references unknown item %q", it.ItemID),
				map[string]string{"kind": "item", "id": it.ItemID})
		}
		p.Inventory.Add(it.ItemID, it.Qty, def.StackLimit())
	}

	p.Gold += b.Gold
	p.CurrentXP += b.XP
	p.Stats = p.Stats.PlusMap(b.Stats)
	if len(b.Elements) > 0 {
		p.Elements.Damage = p.Elements.Damage.Plus(b.Elements)
	}
	for _, flag := range b.QuestFlags {
		p.SetQuestFlag(flag)
	}
	return nil
}

// ApplyPenalty deducts a gold penalty and returns the amount lost. The
// loss is a flat amount plus a percentage of current gold, capped at the
// gold the player has.
func ApplyPenalty(p *entity.Player, penalty *gamedata.Penalty) int {
	if penalty == nil || p.Gold <= 0 {
		return 0
	}
	loss := penalty.GoldFlat + p.Gold*penalty.GoldPercent/100
	loss = min(max(loss, 0), p.Gold)
	p.Gold -= loss
	return loss
}

// PenaltyFor returns the encounter's penalty for an outcome, or nil.
func PenaltyFor(node *gamedata.BattleNodeDef, outcome combat.Outcome) *gamedata.Penalty {
	if node.Penalties == nil {
		return nil
	}
	switch outcome {
	case combat.OutcomeLose:
		return node.Penalties.OnLose
	case combat.OutcomeEscape:
		return node.Penalties.OnEscape
	default:
		return nil
	}
}

// NextNode returns the story node the encounter leads to for an outcome.
// A missing target is a content error.
func NextNode(node *gamedata.BattleNodeDef, outcome combat.Outcome) (string, error) {
	var target *string
	var field string
	switch outcome {
	case combat.OutcomeWin:
		target, field = node.NextOnWin, "nextOnWin"
	case combat.OutcomeLose:
		target, field = node.NextOnLose, "nextOnLose"
	case combat.OutcomeEscape:
		target, field = node.NextOnEscape, "nextOnEscape"
	default:
		return "", apperrors.New(apperrors.CodeInvalidRequest, fmt.Sprintf("battle is not over: %s", outcome))
	}

	if target == nil || *target == "" {
		return "", apperrors.WithMetadata(apperrors.CodeMissingNextNode,
			fmt.Sprintf("battle node %q has no %s", node.ID, field),
			map[string]string{"battleNodeId": node.ID, "field": field})
	}
	return *target, nil
}
