// Package game runs a complete battle for a stored player against a
// catalog encounter and writes the outcome back.
package game

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/questforge/internal/combat"
	"github.com/samdwyer/questforge/internal/entity"
	apperrors "github.com/samdwyer/questforge/internal/errors"
	"github.com/samdwyer/questforge/internal/gamedata"
	"github.com/samdwyer/questforge/internal/logger"
	"github.com/samdwyer/questforge/internal/progression"
	"github.com/samdwyer/questforge/internal/rewards"
	"github.com/samdwyer/questforge/internal/rules"
	"github.com/samdwyer/questforge/internal/telemetry"
)

//go:generate go tool mockgen -destination=./mocks/service_mock.go -package=mocks . PlayerStore,CatalogSource

// PlayerStore loads players and applies atomic read-modify-write updates.
type PlayerStore interface {
	Get(ctx context.Context, id string) (*entity.Player, error)
	UpdatePlayer(ctx context.Context, id string, fn func(*entity.Player) error) (*entity.Player, error)
}

// CatalogSource hands out the content snapshot for one battle.
type CatalogSource interface {
	Catalog(ctx context.Context) (*gamedata.Catalog, error)
}

// Result is everything a caller sees of a finished battle.
type Result struct {
	BattleID   string                `json:"battleId"`
	Seed       int64                 `json:"seed"`
	Log        []combat.Event        `json:"log"`
	Player     *entity.Player        `json:"player"`
	Outcome    combat.Outcome        `json:"outcome"`
	NextNodeID *string               `json:"nextNodeId"`
	Rewards    rewards.Bundle        `json:"rewards"`
	LevelUps   []progression.LevelUp `json:"levelUps,omitempty"`
}

// Service simulates battles.
type Service struct {
	players PlayerStore
	content CatalogSource
	cfg     Config

	// PlayerPolicy overrides the engine's player autopilot when set.
	PlayerPolicy combat.Policy
}

// NewService creates a battle service.
func NewService(players PlayerStore, content CatalogSource, cfg Config) *Service {
	return &Service{players: players, content: content, cfg: cfg}
}

// SimulateBattle runs the encounter to completion and persists the
// outcome exactly once. Any error leaves the stored player untouched.
func (s *Service) SimulateBattle(ctx context.Context, playerID, battleNodeID string) (*Result, error) {
	battleID := uuid.NewString()
	seed := s.seed()
	log := logger.Component("game").WithFields(logrus.Fields{
		"battle_id": battleID,
		"player_id": playerID,
		"node_id":   battleNodeID,
	})

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "battle.simulate")
	span.SetAttributes(telemetry.BattleAttributes(battleID, playerID, battleNodeID, seed)...)
	defer span.End()

	result, err := s.simulate(ctx, log, battleID, seed, playerID, battleNodeID)
	if err != nil {
		telemetry.Fail(span, err)
		log.WithError(err).WithField("kind", apperrors.KindOf(err).String()).Warn("battle failed")
		return nil, err
	}

	span.SetAttributes(
		attribute.String("outcome", string(result.Outcome)),
		attribute.Int("events", len(result.Log)),
	)
	log.WithFields(logrus.Fields{
		"outcome": result.Outcome,
		"events":  len(result.Log),
		"xp":      result.Rewards.XP,
		"gold":    result.Rewards.Gold,
	}).Info("battle finished")
	return result, nil
}

func (s *Service) simulate(ctx context.Context, log *logrus.Entry, battleID string, seed int64, playerID, battleNodeID string) (*Result, error) {
	catalog, err := s.content.Catalog(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeContentUnavailable, "load content", err)
	}

	node := catalog.Encounter(battleNodeID)
	if node == nil {
		return nil, apperrors.WithMetadata(apperrors.CodeEncounterNotFound, "encounter not found",
			map[string]string{"battleNodeId": battleNodeID})
	}

	player, err := s.players.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	battle, err := buildBattle(log, catalog, node, player, seed)
	if err != nil {
		return nil, err
	}

	engine := combat.NewEngine(s.cfg.MaxRounds)
	if s.PlayerPolicy != nil {
		engine.PlayerPolicy = s.PlayerPolicy
	}
	if err := engine.Run(ctx, battle); err != nil {
		return nil, err
	}

	if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		for _, ev := range battle.Log {
			log.WithFields(logrus.Fields{
				"round":  ev.Round,
				"actor":  ev.ActorID,
				"action": ev.Action,
			}).Debug(ev.Message)
		}
	}

	// Resolve the next node before any write so a content error leaves
	// the player untouched.
	next, err := rewards.NextNode(node, battle.Outcome)
	if err != nil {
		return nil, err
	}

	var bundle rewards.Bundle
	if battle.Outcome == combat.OutcomeWin {
		bundle = rewards.Compute(defeatedLoot(catalog, battle), node.Rewards, battle.Rand())
	} else {
		bundle = rewards.Bundle{Items: []gamedata.ItemQty{}}
	}
	penalty := rewards.PenaltyFor(node, battle.Outcome)

	var levelUps []progression.LevelUp
	ctx, saveSpan := telemetry.Tracer("game").Start(ctx, "player.save")
	saved, err := s.players.UpdatePlayer(ctx, playerID, func(p *entity.Player) error {
		survivor := battle.Player()
		p.MaxHP, p.MaxMP = survivor.MaxHP, survivor.MaxMP
		p.HP = max(survivor.HP, 1)
		p.MP = max(survivor.MP, 0)

		for itemID, n := range battle.ItemsUsed {
			p.Inventory.Remove(itemID, min(n, p.Inventory.Count(itemID)))
		}

		switch battle.Outcome {
		case combat.OutcomeWin:
			if err := rewards.Apply(p, bundle, catalog); err != nil {
				return err
			}
			levelUps = progression.Apply(p, catalog)
		default:
			bundle.GoldLost = rewards.ApplyPenalty(p, penalty)
		}

		p.CurrentStoryNodeID = next
		return nil
	})
	if err != nil {
		telemetry.Fail(saveSpan, err)
		saveSpan.End()
		return nil, err
	}
	saveSpan.End()

	return &Result{
		BattleID:   battleID,
		Seed:       seed,
		Log:        battle.Log,
		Player:     saved,
		Outcome:    battle.Outcome,
		NextNodeID: &next,
		Rewards:    bundle,
		LevelUps:   levelUps,
	}, nil
}

// buildBattle puts the player and the encounter's enemies on the roster.
// Enemy ids are "<template>#<n>" in encounter order.
func buildBattle(log *logrus.Entry, catalog *gamedata.Catalog, node *gamedata.BattleNodeDef, player *entity.Player, seed int64) (*combat.Battle, error) {
	if len(node.Enemies) == 0 {
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidEncounter, "encounter has no enemies",
			map[string]string{"battleNodeId": node.ID})
	}

	battle := combat.NewBattle(catalog, seed)
	battle.Inventory = player.Inventory.Clone()

	snap := rules.Aggregate(rules.PlayerSource(player), catalog)
	warnMissing(log, player.ID, snap.Missing)
	pc := combat.NewCombatant(player.ID, player.Name, combat.SidePlayer, combat.KindPlayer, snap)
	pc.TemplateID = player.ID
	battle.AddCombatant(pc)

	for i, ref := range node.Enemies {
		var (
			src  rules.Source
			name string
			kind combat.Kind
		)
		switch ref.Kind {
		case gamedata.EnemyMonster, "":
			def := catalog.Monster(ref.ID)
			if def == nil {
				return nil, unknownEnemy(node, ref)
			}
			src, name, kind = rules.MonsterSource(def), def.Name, combat.KindMonster
		case gamedata.EnemyVillain:
			def := catalog.Villain(ref.ID)
			if def == nil {
				return nil, unknownEnemy(node, ref)
			}
			src, name, kind = rules.VillainSource(def), def.Name, combat.KindVillain
		default:
			return nil, apperrors.WithMetadata(apperrors.CodeInvalidEncounter,
				fmt.Sprintf("unknown enemy kind %q", ref.Kind),
				map[string]string{"battleNodeId": node.ID, "field": "enemies"})
		}

		id := fmt.Sprintf("%s#%d", ref.ID, i+1)
		snap := rules.Aggregate(src, catalog)
		warnMissing(log, id, snap.Missing)
		c := combat.NewCombatant(id, name, combat.SideEnemy, kind, snap)
		c.TemplateID = ref.ID
		battle.AddCombatant(c)
	}
	return battle, nil
}

// defeatedLoot collects loot tables of defeated monsters and villains.
// Summons yield nothing.
func defeatedLoot(catalog *gamedata.Catalog, battle *combat.Battle) []gamedata.Loot {
	var loots []gamedata.Loot
	for _, c := range battle.Combatants {
		if c.Side != combat.SideEnemy || c.IsAlive() {
			continue
		}
		switch c.Kind {
		case combat.KindMonster:
			if def := catalog.Monster(c.TemplateID); def != nil {
				loots = append(loots, def.Loot)
			}
		case combat.KindVillain:
			if def := catalog.Villain(c.TemplateID); def != nil {
				loots = append(loots, def.Loot)
			}
		}
	}
	return loots
}

func unknownEnemy(node *gamedata.BattleNodeDef, ref gamedata.EnemyRef) error {
	return apperrors.WithMetadata(apperrors.CodeUnknownReference,
		fmt.Sprintf("battle node %q references unknown %s %q", node.ID, ref.Kind, ref.ID),
		map[string]string{"battleNodeId": node.ID, "kind": string(ref.Kind), "id": ref.ID})
}

func warnMissing(log *logrus.Entry, actorID string, missing []string) {
	for _, ref := range missing {
		log.WithFields(logrus.Fields{"actor": actorID, "ref": ref}).Warn("unresolved reference ignored")
	}
}

func (s *Service) seed() int64 {
	if s.cfg.Seed != 0 {
		return s.cfg.Seed
	}
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 1
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed
}
