package combat

import (
	"fmt"

	apperrors "github.com/samdwyer/questforge/internal/errors"
	"github.com/samdwyer/questforge/internal/gamedata"
	"github.com/samdwyer/questforge/internal/rules"
)

// Resolve applies one action to the battle and appends its log entries.
//
// Invalid targets, unaffordable costs, cooldowns and malformed requests
// are not errors: the turn is consumed with a failed log entry and no
// other state change. The returned error is reserved for content that
// references ids missing from the catalog, which aborts the battle.
func (b *Battle) Resolve(a Action) error {
	actor := b.Combatant(a.ActorID)
	if actor == nil || !actor.Active() {
		b.fail(a.ActorID, a, EventAction(a.Kind), apperrors.New(apperrors.CodeInvalidRequest, "actor cannot act"))
		return nil
	}

	switch a.Kind {
	case ActionAttack:
		b.resolveAttack(actor, a)
		return nil
	case ActionSpell, ActionSummon:
		spell := b.content.Spell(a.RefID)
		if spell == nil {
			return unknownReference("spell", a.RefID)
		}
		if !actor.KnowsSpell(spell.ID) {
			b.fail(actor.ID, a, EventSpell, apperrors.New(apperrors.CodeInvalidRequest, actor.Name+" does not know "+spell.Name))
			return nil
		}
		stats := actor.Stats()
		return b.resolveAction(actor, a, ActionSpell, &spell.ActionDef, spell.Summon,
			gamedata.DamageMagical, RawMagnitude(spell.Scaling, stats.Int, spell.Scaling.IntMultiplier))
	case ActionSkill:
		skill := b.content.Skill(a.RefID)
		if skill == nil {
			return unknownReference("skill", a.RefID)
		}
		if !actor.KnowsSkill(skill.ID) {
			b.fail(actor.ID, a, EventSkill, apperrors.New(apperrors.CodeInvalidRequest, actor.Name+" does not know "+skill.Name))
			return nil
		}
		stats := actor.Stats()
		return b.resolveAction(actor, a, ActionSkill, &skill.ActionDef, nil,
			gamedata.DamagePhysical, RawMagnitude(skill.Scaling, stats.Str, skill.Scaling.StrMultiplier))
	case ActionItem:
		return b.resolveItem(actor, a)
	case ActionDefend:
		b.resolveDefend(actor)
		return nil
	case ActionEscape:
		b.resolveEscape(actor, a)
		return nil
	default:
		b.fail(actor.ID, a, EventAction(a.Kind), apperrors.New(apperrors.CodeInvalidRequest, fmt.Sprintf("unknown action %q", a.Kind)))
		return nil
	}
}

// resolveAttack handles the basic attack: STR x 1, physical, can crit.
func (b *Battle) resolveAttack(actor *Combatant, a Action) {
	target := b.singleTarget(actor.Side.Opponent(), a.Target())
	if target == nil {
		b.fail(actor.ID, a, EventAttack, invalidTarget(a.Target()))
		return
	}

	raw := RawMagnitude(gamedata.Scaling{}, actor.Stats().Str, 1)
	hit := ResolveDamage(b.damageInput(actor, target, raw, gamedata.DamagePhysical, nil, true, 1), b.roll)
	target.TakeDamage(hit.Final)

	b.emit(Event{
		ActorID:   actor.ID,
		Action:    EventAttack,
		TargetIDs: []string{target.ID},
		Amounts:   []int{hit.Final},
		Raw:       []int{hit.Raw},
		Crit:      hit.Crit,
		Message:   fmt.Sprintf("%s attacks %s for %d damage%s", actor.Name, target.Name, hit.Final, critSuffix(hit.Crit)),
	})
	b.noteDefeat(target)
}

// resolveAction handles spells and skills of every type.
func (b *Battle) resolveAction(actor *Combatant, a Action, kind ActionKind, def *gamedata.ActionDef, summon *gamedata.Summon, dtype gamedata.DamageType, raw float64) error {
	evAction := EventAction(kind)
	if def.Type == gamedata.ActionSummon {
		evAction = EventSummon
		if summon == nil {
			return apperrors.WithMetadata(apperrors.CodeUnknownReference,
				fmt.Sprintf("summon spell %q has no summon definition", def.ID),
				map[string]string{"spellId": def.ID, "field": "summon"})
		}
		if b.content.Monster(summon.MonsterID) == nil {
			return unknownReference("monster", summon.MonsterID)
		}
	}
	if def.Cost != nil && def.Cost.ItemID != "" && b.content.Item(def.Cost.ItemID) == nil {
		return unknownReference("item", def.Cost.ItemID)
	}

	key := cooldownKey(kind, def.ID)
	if n := actor.Cooldown(key); n > 0 {
		b.fail(actor.ID, a, evAction, apperrors.New(apperrors.CodeActionOnCooldown,
			fmt.Sprintf("%s is on cooldown for %d more rounds", def.Name, n)))
		return nil
	}

	targets, primary := b.targets(actor, def, a)
	if len(targets) == 0 {
		b.fail(actor.ID, a, evAction, invalidTarget(a.Target()))
		return nil
	}

	if err := b.payCost(actor, def.Cost); err != nil {
		b.fail(actor.ID, a, evAction, err)
		return nil
	}
	actor.startCooldown(key, def.Cooldown)

	switch def.Type {
	case gamedata.ActionDamage, gamedata.ActionMixed:
		b.applyDamage(actor, def, evAction, targets, primary, dtype, raw)
		b.attachTicking(actor, def, targets, EffectDoT, raw)
		if def.Effect != nil {
			b.attachEffect(actor, def, evAction, targets, EffectDebuff, false)
		}
	case gamedata.ActionHeal:
		b.applyHeal(actor, def, evAction, targets, primary, raw)
		b.attachTicking(actor, def, targets, EffectHoT, raw)
	case gamedata.ActionBuff:
		b.attachEffect(actor, def, evAction, targets, EffectBuff, true)
	case gamedata.ActionDebuff:
		b.attachEffect(actor, def, evAction, targets, EffectDebuff, true)
		b.attachTicking(actor, def, targets, EffectDoT, raw)
	case gamedata.ActionSummon:
		b.summon(actor, def, summon)
	default:
		return apperrors.WithMetadata(apperrors.CodeUnknownReference,
			fmt.Sprintf("action %q has unknown type %q", def.ID, def.Type),
			map[string]string{"actionId": def.ID, "field": "type"})
	}
	return nil
}

// targets resolves an action's targeting. For AoE the second return value
// is the index of the primary target among the returned combatants.
func (b *Battle) targets(actor *Combatant, def *gamedata.ActionDef, a Action) ([]*Combatant, int) {
	if def.Targeting == gamedata.TargetSelf || def.Type == gamedata.ActionSummon {
		return []*Combatant{actor}, 0
	}

	side := actor.Side
	if def.IsOffensive() {
		side = side.Opponent()
	}

	if def.Targeting == gamedata.TargetAoE {
		living := b.Living(side)
		primary := 0
		for i, c := range living {
			if c.ID == a.Target() {
				primary = i
				break
			}
		}
		return living, primary
	}

	target := b.singleTarget(side, a.Target())
	if target == nil {
		return nil, 0
	}
	return []*Combatant{target}, 0
}

// singleTarget returns the named combatant if it is active and on side.
func (b *Battle) singleTarget(side Side, id string) *Combatant {
	c := b.Combatant(id)
	if c == nil || !c.Active() || c.Side != side {
		return nil
	}
	return c
}

// checkCost reports why actor cannot pay cost, or nil.
func (b *Battle) checkCost(actor *Combatant, cost *gamedata.Cost) *apperrors.Error {
	if cost == nil {
		return nil
	}
	if actor.MP < cost.MP {
		return apperrors.New(apperrors.CodeInsufficientResource,
			fmt.Sprintf("%s doesn't have enough MP (%d/%d)", actor.Name, actor.MP, cost.MP))
	}
	if cost.HP > 0 && actor.HP <= cost.HP {
		return apperrors.New(apperrors.CodeInsufficientResource,
			fmt.Sprintf("%s doesn't have enough HP (%d/%d)", actor.Name, actor.HP, cost.HP))
	}
	if cost.ItemID != "" && (actor.Side != SidePlayer || b.Inventory.Count(cost.ItemID) < 1) {
		return apperrors.New(apperrors.CodeInsufficientResource,
			fmt.Sprintf("%s has no %s", actor.Name, cost.ItemID))
	}
	return nil
}

// payCost checks every cost component before paying any of them.
func (b *Battle) payCost(actor *Combatant, cost *gamedata.Cost) *apperrors.Error {
	if err := b.checkCost(actor, cost); err != nil {
		return err
	}
	if cost == nil {
		return nil
	}
	actor.SpendMP(cost.MP)
	actor.SpendHP(cost.HP)
	if cost.ItemID != "" {
		b.Inventory.Remove(cost.ItemID, 1)
		b.ItemsUsed[cost.ItemID]++
	}
	return nil
}

func (b *Battle) applyDamage(actor *Combatant, def *gamedata.ActionDef, evAction EventAction, targets []*Combatant, primary int, dtype gamedata.DamageType, raw float64) {
	ev := Event{
		ActorID:     actor.ID,
		Action:      evAction,
		RefID:       def.ID,
		ElementTags: tagKeys(def.Elements),
	}
	for i, t := range targets {
		in := b.damageInput(actor, t, raw, dtype, def.Elements, def.Crits(), AoeFalloff(aoeFalloff(def), abs(i-primary)))
		hit := ResolveDamage(in, b.roll)
		t.TakeDamage(hit.Final)

		ev.TargetIDs = append(ev.TargetIDs, t.ID)
		ev.Amounts = append(ev.Amounts, hit.Final)
		ev.Raw = append(ev.Raw, hit.Raw)
		ev.Crit = ev.Crit || hit.Crit
	}
	ev.Message = fmt.Sprintf("%s uses %s on %s for %d damage%s", actor.Name, def.Name, targetNames(targets), ev.TotalAmount(), critSuffix(ev.Crit))
	b.emit(ev)

	for _, t := range targets {
		b.noteDefeat(t)
	}
}

func (b *Battle) applyHeal(actor *Combatant, def *gamedata.ActionDef, evAction EventAction, targets []*Combatant, primary int, raw float64) {
	ev := Event{
		ActorID:     actor.ID,
		Action:      evAction,
		RefID:       def.ID,
		ElementTags: tagKeys(def.Elements),
	}
	actorDex := actor.Stats().Dex
	for i, t := range targets {
		chance := CritChance(actor.Base.CritBase, actor.Base.CritPerDex, actorDex, t.Stats().Dex)
		hit := ResolveHeal(raw, AoeFalloff(aoeFalloff(def), abs(i-primary)), def.Crits(), chance, b.roll)
		t.Heal(hit.Final)

		ev.TargetIDs = append(ev.TargetIDs, t.ID)
		ev.Amounts = append(ev.Amounts, hit.Final)
		ev.Raw = append(ev.Raw, hit.Raw)
		ev.Crit = ev.Crit || hit.Crit
	}
	ev.Message = fmt.Sprintf("%s uses %s on %s, restoring %d HP%s", actor.Name, def.Name, targetNames(targets), ev.TotalAmount(), critSuffix(ev.Crit))
	b.emit(ev)
}

// attachTicking adds the action's DoT or HoT to every target still active.
func (b *Battle) attachTicking(actor *Combatant, def *gamedata.ActionDef, targets []*Combatant, kind EffectKind, raw float64) {
	if def.Dot == nil || def.Dot.Ticks <= 0 {
		return
	}
	perTick := def.Dot.AmountPerTick
	if def.Dot.UsesScaling {
		perTick = roundNonNegative(raw)
	}
	for _, t := range targets {
		if !t.Active() {
			continue
		}
		t.AddEffect(Effect{
			ID:        def.ID,
			Kind:      kind,
			SourceID:  actor.ID,
			Remaining: def.Dot.Ticks,
			PerTick:   perTick,
		})
	}
}

// attachEffect adds the action's buff or debuff payload to every target
// still active. When logged is set the application gets its own event.
func (b *Battle) attachEffect(actor *Combatant, def *gamedata.ActionDef, evAction EventAction, targets []*Combatant, kind EffectKind, logged bool) {
	var hit []*Combatant
	for _, t := range targets {
		if !t.Active() {
			continue
		}
		if def.Effect != nil {
			t.AddEffect(effectFrom(def.ID, actor.ID, kind, def.Effect))
		}
		hit = append(hit, t)
	}
	if !logged {
		return
	}

	ev := Event{
		ActorID:     actor.ID,
		Action:      evAction,
		RefID:       def.ID,
		ElementTags: tagKeys(def.Elements),
		Message:     fmt.Sprintf("%s uses %s on %s", actor.Name, def.Name, targetNames(hit)),
	}
	for _, t := range hit {
		ev.TargetIDs = append(ev.TargetIDs, t.ID)
		ev.Amounts = append(ev.Amounts, 0)
	}
	b.emit(ev)
}

// summon adds a monster to the caster's side. It joins next round.
func (b *Battle) summon(actor *Combatant, def *gamedata.ActionDef, s *gamedata.Summon) {
	monster := b.content.Monster(s.MonsterID)

	if s.ReplacesExisting {
		for _, c := range b.Combatants {
			if c.Kind == KindSummon && c.SummonerID == actor.ID && c.TemplateID == monster.ID && !c.Removed {
				c.Removed = true
				msg := fmt.Sprintf("%s dismisses %s", actor.Name, c.Name)
				if left := c.SummonRemaining(); left > 0 {
					msg += fmt.Sprintf(" with %d rounds left", left)
				}
				b.emit(Event{
					ActorID:   actor.ID,
					Action:    EventDismiss,
					RefID:     def.ID,
					TargetIDs: []string{c.ID},
					Message:   msg,
				})
			}
		}
	}

	snap := rules.Aggregate(rules.MonsterSource(monster), b.content)
	c := NewCombatant(b.nextSummonID(monster.ID), monster.Name, actor.Side, KindSummon, snap)
	c.TemplateID = monster.ID
	c.SummonerID = actor.ID
	c.JoinRound = b.Round + 1
	if s.DurationTurns > 0 {
		c.AddEffect(Effect{ID: def.ID, Kind: EffectSummon, SourceID: actor.ID, Remaining: s.DurationTurns})
	}
	b.AddCombatant(c)

	msg := fmt.Sprintf("%s summons %s", actor.Name, c.Name)
	if left := c.SummonRemaining(); left > 0 {
		msg += fmt.Sprintf(" for %d rounds", left)
	}
	b.emit(Event{
		ActorID:   actor.ID,
		Action:    EventSummon,
		RefID:     def.ID,
		TargetIDs: []string{c.ID},
		Amounts:   []int{c.HP},
		Message:   msg,
	})
}

// resolveItem uses one consumable from the battle inventory.
func (b *Battle) resolveItem(actor *Combatant, a Action) error {
	item := b.content.Item(a.RefID)
	if item == nil {
		return unknownReference("item", a.RefID)
	}
	if actor.Side != SidePlayer || item.Potion == nil || !usableInBattle(item.Potion.EffectKind) {
		b.fail(actor.ID, a, EventItem, apperrors.WithMetadata(apperrors.CodeItemNotUsableInBattle,
			item.Name+" cannot be used in battle", map[string]string{"itemId": item.ID}))
		return nil
	}
	if b.Inventory.Count(item.ID) < 1 {
		b.fail(actor.ID, a, EventItem, apperrors.New(apperrors.CodeInsufficientResource, "no "+item.Name+" left"))
		return nil
	}

	target := actor
	if id := a.Target(); id != "" {
		target = b.singleTarget(actor.Side, id)
		if target == nil {
			b.fail(actor.ID, a, EventItem, invalidTarget(id))
			return nil
		}
	}

	key := cooldownKey(ActionItem, item.ID)
	if n := actor.Cooldown(key); n > 0 {
		b.fail(actor.ID, a, EventItem, apperrors.New(apperrors.CodeActionOnCooldown,
			fmt.Sprintf("%s is on cooldown for %d more rounds", item.Name, n)))
		return nil
	}

	b.Inventory.Remove(item.ID, 1)
	b.ItemsUsed[item.ID]++
	actor.startCooldown(key, item.Potion.Cooldown)

	p := item.Potion
	ev := Event{
		ActorID:   actor.ID,
		Action:    EventItem,
		RefID:     item.ID,
		TargetIDs: []string{target.ID},
		Amounts:   []int{0},
		Message:   fmt.Sprintf("%s uses %s on %s", actor.Name, item.Name, target.Name),
	}
	switch p.EffectKind {
	case gamedata.PotionHeal:
		ev.Amounts[0] = target.Heal(p.Amount)
	case gamedata.PotionMPHeal:
		ev.MPAmounts = []int{target.RestoreMP(p.Amount)}
	case gamedata.PotionStatBuff:
		target.AddEffect(Effect{ID: item.ID, Kind: EffectBuff, SourceID: actor.ID, Remaining: p.DurationTurns, Stats: p.PerStatMap})
	case gamedata.PotionElementBuff:
		target.AddEffect(Effect{ID: item.ID, Kind: EffectBuff, SourceID: actor.ID, Remaining: p.DurationTurns, Offense: p.PerElementMap})
	case gamedata.PotionRegenBuff:
		target.AddEffect(Effect{ID: item.ID, Kind: EffectHoT, SourceID: actor.ID, Remaining: p.DurationTurns, PerTick: p.Amount})
	}
	b.emit(ev)
	return nil
}

func usableInBattle(kind gamedata.PotionKind) bool {
	switch kind {
	case gamedata.PotionHeal, gamedata.PotionMPHeal, gamedata.PotionStatBuff,
		gamedata.PotionElementBuff, gamedata.PotionRegenBuff:
		return true
	default:
		return false
	}
}

// resolveDefend halves physical and magical damage taken until round end.
func (b *Battle) resolveDefend(actor *Combatant) {
	actor.AddEffect(Effect{
		ID:        string(ActionDefend),
		Kind:      EffectBuff,
		SourceID:  actor.ID,
		Remaining: 1,
		Multipliers: gamedata.Multipliers{
			PhysicalTaken: DefendPercent,
			MagicalTaken:  DefendPercent,
		},
	})
	b.emit(Event{
		ActorID:   actor.ID,
		Action:    EventDefend,
		TargetIDs: []string{actor.ID},
		Message:   actor.Name + " defends",
	})
}

// resolveEscape rolls the escape chance against the fastest living enemy.
func (b *Battle) resolveEscape(actor *Combatant, a Action) {
	if actor.Kind != KindPlayer {
		b.fail(actor.ID, a, EventEscape, apperrors.New(apperrors.CodeInvalidRequest, actor.Name+" cannot flee"))
		return
	}

	maxAgi := 0
	for _, e := range b.Living(actor.Side.Opponent()) {
		maxAgi = max(maxAgi, e.Stats().Agi)
	}
	chance := EscapeChance(actor.Base.EscapeBase, actor.Base.EscapePerAgi, actor.Stats().Agi, maxAgi)

	if b.roll(chance) {
		b.emit(Event{
			ActorID: actor.ID,
			Action:  EventEscape,
			Amounts: []int{chance},
			Message: fmt.Sprintf("%s escapes! (%d%%)", actor.Name, chance),
		})
		b.finish(OutcomeEscape, "You escaped the battle.")
		return
	}
	b.emit(Event{
		ActorID: actor.ID,
		Action:  EventEscape,
		Amounts: []int{chance},
		Failed:  true,
		Message: fmt.Sprintf("%s tries to escape but fails (%d%%)", actor.Name, chance),
	})
}

// damageInput gathers the attacker's and defender's modifiers.
func (b *Battle) damageInput(actor, target *Combatant, raw float64, dtype gamedata.DamageType, tags []gamedata.ElementTag, canCrit bool, falloff float64) DamageInput {
	am, tm := actor.Multipliers(), target.Multipliers()
	in := DamageInput{
		Raw:        raw,
		Falloff:    falloff,
		Type:       dtype,
		Tags:       tags,
		Offense:    actor.Offense(),
		Resistance: target.Resistance(),
		Armor:      tm.Armor,
		CanCrit:    canCrit,
		CritChance: CritChance(actor.Base.CritBase, actor.Base.CritPerDex, actor.Stats().Dex, target.Stats().Dex),
	}
	if dtype == gamedata.DamageMagical {
		in.Dealt, in.Taken = am.MagicalDealt, tm.MagicalTaken
	} else {
		in.Dealt, in.Taken = am.PhysicalDealt, tm.PhysicalTaken
	}
	return in
}

// noteDefeat logs a combatant reduced to 0 HP. Each combatant is logged
// once since dead combatants are never targeted again.
func (b *Battle) noteDefeat(c *Combatant) {
	if c.IsAlive() || c.Removed {
		return
	}
	for i := len(b.Log) - 1; i >= 0; i-- {
		if b.Log[i].Action == EventDefeat && b.Log[i].ActorID == c.ID {
			return
		}
	}
	b.emit(Event{ActorID: c.ID, Action: EventDefeat, Message: c.Name + " is defeated!"})
}

// fail logs a turn consumed without effect.
func (b *Battle) fail(actorID string, a Action, action EventAction, err *apperrors.Error) {
	b.emit(Event{
		ActorID:   actorID,
		Action:    action,
		RefID:     a.RefID,
		TargetIDs: append([]string(nil), a.TargetIDs...),
		Failed:    true,
		ErrorCode: string(err.Code),
		Message:   err.Message,
	})
}

func effectFrom(id, sourceID string, kind EffectKind, def *gamedata.EffectDef) Effect {
	e := Effect{
		ID:         id,
		Kind:       kind,
		SourceID:   sourceID,
		Remaining:  def.DurationTurns,
		Stats:      def.Stats,
		Offense:    def.Offense,
		Resistance: def.Resistance,
	}
	if def.Multipliers != nil {
		e.Multipliers = *def.Multipliers
	}
	return e
}

func unknownReference(kind, id string) *apperrors.Error {
	return apperrors.WithMetadata(apperrors.CodeUnknownReference,
		fmt.Sprintf("unknown %s %q", kind, id),
		map[string]string{"kind": kind, "id": id})
}

func invalidTarget(id string) *apperrors.Error {
	return apperrors.WithMetadata(apperrors.CodeInvalidTarget,
		fmt.Sprintf("invalid target %q", id),
		map[string]string{"targetId": id})
}

func aoeFalloff(def *gamedata.ActionDef) float64 {
	if def.Aoe == nil {
		return 0
	}
	return def.Aoe.Falloff
}

func tagKeys(tags []gamedata.ElementTag) []gamedata.ElementKey {
	keys := make([]gamedata.ElementKey, 0, len(tags))
	for _, t := range tags {
		keys = append(keys, t.Key)
	}
	return keys
}

func targetNames(targets []*Combatant) string {
	switch len(targets) {
	case 0:
		return "nobody"
	case 1:
		return targets[0].Name
	default:
		return fmt.Sprintf("%d targets", len(targets))
	}
}

func critSuffix(crit bool) string {
	if crit {
		return " (critical!)"
	}
	return ""
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
