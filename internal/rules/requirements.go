// Package rules holds the pure game rules shared by the battle engine and
// the API: requirement gating and stat aggregation.
package rules

import (
	"slices"

	"github.com/samdwyer/questforge/internal/entity"
	"github.com/samdwyer/questforge/internal/gamedata"
)

// Meets reports whether the player satisfies every constraint in req.
// Absent fields place no constraint, so a nil req is always met.
func Meets(p *entity.Player, req *gamedata.Requirements) bool {
	if req == nil {
		return true
	}
	if p == nil {
		return false
	}

	if req.Level > 0 && p.Level < req.Level {
		return false
	}
	for key, threshold := range req.Stats {
		if p.Stats.Get(key) < threshold {
			return false
		}
	}
	for key, threshold := range req.Elements {
		if p.Elements.Damage[key] < threshold {
			return false
		}
	}
	if len(req.ClassIDs) > 0 && !slices.Contains(req.ClassIDs, p.ClassID) {
		return false
	}
	if len(req.RaceIDs) > 0 && !slices.Contains(req.RaceIDs, p.RaceID) {
		return false
	}
	for _, flag := range req.QuestFlags {
		if !p.HasQuestFlag(flag) {
			return false
		}
	}
	for _, item := range req.Items {
		qty := item.Qty
		if qty <= 0 {
			qty = 1
		}
		if p.Inventory.Count(item.ItemID) < qty {
			return false
		}
	}
	return true
}

// Unmet lists the requirement fields the player fails, for display.
func Unmet(p *entity.Player, req *gamedata.Requirements) []string {
	if req == nil {
		return nil
	}
	if p == nil {
		return []string{"player"}
	}

	var failed []string
	check := func(field string, sub gamedata.Requirements) {
		if !Meets(p, &sub) {
			failed = append(failed, field)
		}
	}
	check("level", gamedata.Requirements{Level: req.Level})
	check("stats", gamedata.Requirements{Stats: req.Stats})
	check("elements", gamedata.Requirements{Elements: req.Elements})
	check("classIds", gamedata.Requirements{ClassIDs: req.ClassIDs})
	check("raceIds", gamedata.Requirements{RaceIDs: req.RaceIDs})
	check("questFlags", gamedata.Requirements{QuestFlags: req.QuestFlags})
	check("items", gamedata.Requirements{Items: req.Items})
	return failed
}
