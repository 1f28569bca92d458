package combat

import "fmt"

// ProcessRoundEnd runs the round-end phase: regeneration, DoT/HoT ticks,
// duration and cooldown decrements, then summon expiry. It runs only
// while the battle is in progress.
func (b *Battle) ProcessRoundEnd() {
	if b.Outcome.Terminal() {
		return
	}
	b.Phase = PhaseRoundEnd

	for _, c := range b.Combatants {
		if c.Active() {
			b.regenerate(c)
		}
	}

	for _, c := range b.Combatants {
		if !c.Active() {
			continue
		}
		for _, tick := range c.TickEffects(EffectKind.Ticks) {
			b.logTick(c, tick)
		}
		b.noteDefeat(c)
	}

	for _, c := range b.Combatants {
		if !c.Active() {
			continue
		}
		for _, tick := range c.TickEffects(func(k EffectKind) bool { return k == EffectBuff || k == EffectDebuff }) {
			if tick.Ended {
				b.emit(Event{
					ActorID:   tick.Effect.SourceID,
					Action:    EventExpire,
					RefID:     tick.Effect.ID,
					TargetIDs: []string{c.ID},
					Message:   fmt.Sprintf("%s wears off %s", tick.Effect.ID, c.Name),
				})
			}
		}
		c.tickCooldowns()
	}

	for _, c := range b.Combatants {
		if !c.Active() || c.JoinRound > b.Round {
			continue
		}
		for _, tick := range c.TickEffects(func(k EffectKind) bool { return k == EffectSummon }) {
			if tick.Ended {
				c.Removed = true
				b.emit(Event{
					ActorID:   c.SummonerID,
					Action:    EventDismiss,
					RefID:     tick.Effect.ID,
					TargetIDs: []string{c.ID},
					Message:   c.Name + " fades away",
				})
			}
		}
	}
}

// regenerate applies base regen (END HP, WIS MP) plus ability regen.
func (b *Battle) regenerate(c *Combatant) {
	stats := c.Stats()
	hp := c.Heal(stats.End + c.Base.Regen.HPPerTurn)
	mp := c.RestoreMP(stats.Wis + c.Base.Regen.MPPerTurn)
	if hp == 0 && mp == 0 {
		return
	}
	b.emit(Event{
		ActorID:   c.ID,
		Action:    EventRegen,
		TargetIDs: []string{c.ID},
		Amounts:   []int{hp},
		MPAmounts: []int{mp},
		Message:   fmt.Sprintf("%s regenerates %d HP and %d MP", c.Name, hp, mp),
	})
}

func (b *Battle) logTick(c *Combatant, tick EffectTick) {
	verb := "takes"
	noun := "damage"
	if tick.Effect.Kind == EffectHoT {
		verb, noun = "recovers", "HP"
	}
	b.emit(Event{
		ActorID:   tick.Effect.SourceID,
		Action:    EventTick,
		RefID:     tick.Effect.ID,
		TargetIDs: []string{c.ID},
		Amounts:   []int{tick.Amount},
		Message:   fmt.Sprintf("%s %s %d %s from %s", c.Name, verb, tick.Amount, noun, tick.Effect.ID),
	})
	if tick.Ended {
		b.emit(Event{
			ActorID:   tick.Effect.SourceID,
			Action:    EventExpire,
			RefID:     tick.Effect.ID,
			TargetIDs: []string{c.ID},
			Message:   fmt.Sprintf("%s wears off %s", tick.Effect.ID, c.Name),
		})
	}
}
