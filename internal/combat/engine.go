package combat

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/questforge/internal/telemetry"
)

// DefaultMaxRounds bounds a battle that neither side can finish.
const DefaultMaxRounds = 100

// Engine is the turn scheduler. It drives a Battle from its first round
// to a terminal outcome.
type Engine struct {
	MaxRounds int

	// PlayerPolicy chooses for the player. AIPolicy chooses for everyone
	// else, including the player's summons.
	PlayerPolicy Policy
	AIPolicy     Policy
}

// NewEngine creates an engine with the default policies.
func NewEngine(maxRounds int) *Engine {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	return &Engine{
		MaxRounds:    maxRounds,
		PlayerPolicy: AutoPolicy{},
		AIPolicy:     RandomPolicy{},
	}
}

// Run simulates the battle synchronously until it is over. It returns an
// error only when content is broken or ctx is cancelled; the battle is
// then left unfinished.
func (e *Engine) Run(ctx context.Context, b *Battle) error {
	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.start")
	span.SetAttributes(
		attribute.Int("player_side", len(b.Living(SidePlayer))),
		attribute.Int("enemy_count", len(b.Living(SideEnemy))),
		attribute.Int("max_rounds", e.MaxRounds),
	)
	span.End()

	if len(b.Log) == 0 {
		ids := make([]string, 0, len(b.Combatants))
		for _, c := range b.Combatants {
			ids = append(ids, c.ID)
		}
		b.emit(Event{Action: EventStart, TargetIDs: ids, Message: "Battle begins!"})
	}

	// An encounter may start already decided, e.g. with no living enemies.
	for !b.CheckOutcome() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.runRound(ctx, tracer, b); err != nil {
			return err
		}
	}

	_, span = tracer.Start(ctx, "combat.end")
	span.SetAttributes(
		attribute.String("outcome", string(b.Outcome)),
		attribute.Int("rounds", b.Round),
		attribute.Int("events", len(b.Log)),
	)
	if p := b.Player(); p != nil {
		span.SetAttributes(attribute.Int("player_hp_remaining", p.HP))
	}
	span.End()
	return nil
}

// runRound plays one round: every active, joined combatant acts once in
// turn order, then round-end processing runs. The round stops as soon as
// the outcome is decided.
func (e *Engine) runRound(ctx context.Context, tracer trace.Tracer, b *Battle) error {
	ctx, span := tracer.Start(ctx, "combat.round")
	span.SetAttributes(attribute.Int("round", b.Round))
	defer span.End()

	b.Phase = PhaseRoundStart
	order := b.TurnOrder()

	b.Phase = PhaseActorTurn
	for _, c := range order {
		// killed or dismissed earlier this round
		if !c.Active() {
			continue
		}
		if err := e.turn(ctx, tracer, b, c); err != nil {
			span.RecordError(err)
			return err
		}
		if b.CheckOutcome() {
			return nil
		}
	}

	b.ProcessRoundEnd()
	if b.CheckOutcome() {
		return nil
	}

	if b.Round >= e.MaxRounds {
		b.emit(Event{Action: EventTimeout, Message: "The battle drags on too long and you are overwhelmed."})
		b.finish(OutcomeLose, "You have been defeated!")
		return nil
	}
	b.Round++
	return nil
}

func (e *Engine) turn(ctx context.Context, tracer trace.Tracer, b *Battle, c *Combatant) error {
	policy := e.AIPolicy
	if c.Kind == KindPlayer {
		policy = e.PlayerPolicy
	}
	action := policy.Choose(b, c)
	action.ActorID = c.ID

	_, span := tracer.Start(ctx, "combat.turn")
	span.SetAttributes(
		attribute.String("actor", c.ID),
		attribute.String("action", string(action.Kind)),
		attribute.String("ref", action.RefID),
		attribute.String("target", action.Target()),
		attribute.Int("round", b.Round),
	)
	defer span.End()

	before := len(b.Log)
	if err := b.Resolve(action); err != nil {
		span.RecordError(err)
		return err
	}

	damage := 0
	for _, ev := range b.Log[before:] {
		if ev.Failed {
			span.SetAttributes(attribute.Bool("failed", true))
		}
		if ev.ActorID == c.ID {
			damage += ev.TotalAmount()
		}
	}
	if damage > 0 {
		span.SetAttributes(attribute.Int("amount", damage))
	}
	return nil
}
