package game

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/samdwyer/questforge/internal/combat"
	"github.com/samdwyer/questforge/internal/entity"
	apperrors "github.com/samdwyer/questforge/internal/errors"
	"github.com/samdwyer/questforge/internal/game/mocks"
	"github.com/samdwyer/questforge/internal/gamedata"
	"github.com/samdwyer/questforge/internal/logger"
)

func strongPlayer() *entity.Player {
	return &entity.Player{
		ID:        "p1",
		Name:      "Aria",
		RaceID:    "rac_human",
		ClassID:   "cls_warrior",
		Level:     1,
		Stats:     gamedata.StatBlock{Str: 1000, End: 1000, Agi: 1000, Wis: 1},
		Inventory: entity.Inventory{{ItemID: "itm_health_potion", Qty: 3}},
		Gold:      10,
	}
}

func weakPlayer() *entity.Player {
	return &entity.Player{
		ID:    "p1",
		Name:  "Pip",
		Level: 1,
		Stats: gamedata.StatBlock{End: 1},
		Gold:  100,
	}
}

// expectUpdate runs the update callback against a copy of the stored player.
func expectUpdate(store *mocks.MockPlayerStore, stored *entity.Player) *gomock.Call {
	return store.EXPECT().UpdatePlayer(gomock.Any(), stored.ID, gomock.Any()).
		DoAndReturn(func(ctx context.Context, id string, fn func(*entity.Player) error) (*entity.Player, error) {
			p := stored.Clone()
			if err := fn(p); err != nil {
				return nil, err
			}
			return p, nil
		})
}

func newTestService(t *testing.T, seed int64) (*Service, *mocks.MockPlayerStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockPlayerStore(ctrl)
	content := mocks.NewMockCatalogSource(ctrl)
	content.EXPECT().Catalog(gomock.Any()).Return(gamedata.MustLoadEmbeddedCatalog(), nil).AnyTimes()
	return NewService(store, content, Config{Seed: seed, MaxRounds: 100}), store
}

func TestSimulateBattleWin(t *testing.T) {
	svc, store := newTestService(t, 42)
	stored := strongPlayer()
	store.EXPECT().Get(gomock.Any(), "p1").Return(stored.Clone(), nil)
	expectUpdate(store, stored).Times(1)

	used := false
	svc.PlayerPolicy = combat.PolicyFunc(func(b *combat.Battle, self *combat.Combatant) combat.Action {
		if !used {
			used = true
			return combat.Action{ActorID: self.ID, Kind: combat.ActionItem, RefID: "itm_health_potion"}
		}
		return combat.Action{ActorID: self.ID, Kind: combat.ActionAttack, TargetIDs: []string{b.Living(combat.SideEnemy)[0].ID}}
	})

	result, err := svc.SimulateBattle(context.Background(), "p1", "btl_forest_ambush")
	if err != nil {
		t.Fatalf("SimulateBattle() error: %v", err)
	}

	if result.Outcome != combat.OutcomeWin {
		t.Fatalf("Expected win, got %s", result.Outcome)
	}
	if result.NextNodeID == nil || *result.NextNodeID != "sto_forest_clearing" {
		t.Errorf("Expected next node sto_forest_clearing, got %v", result.NextNodeID)
	}
	if result.Seed != 42 || result.BattleID == "" {
		t.Errorf("Expected seed 42 and a battle id, got %d/%q", result.Seed, result.BattleID)
	}
	last := result.Log[len(result.Log)-1]
	if last.Action != combat.EventOutcome || last.RefID != string(combat.OutcomeWin) {
		t.Errorf("Expected log to end with win outcome, got %+v", last)
	}

	// two goblins: 15 xp each, 2-6 gold each
	if result.Rewards.XP != 30 {
		t.Errorf("Expected 30 XP, got %d", result.Rewards.XP)
	}
	if result.Rewards.Gold < 4 || result.Rewards.Gold > 12 {
		t.Errorf("Expected 4-12 gold, got %d", result.Rewards.Gold)
	}

	p := result.Player
	if p.Gold != 10+result.Rewards.Gold {
		t.Errorf("Expected gold %d, got %d", 10+result.Rewards.Gold, p.Gold)
	}
	if p.CurrentXP != 30 || p.Level != 1 || p.NeededXP != 100 {
		t.Errorf("Expected level 1 with 30/100 XP, got level %d %d/%d", p.Level, p.CurrentXP, p.NeededXP)
	}
	if p.CurrentStoryNodeID != "sto_forest_clearing" {
		t.Errorf("Expected story node sto_forest_clearing, got %q", p.CurrentStoryNodeID)
	}
	if p.HP < 1 || p.HP > p.MaxHP {
		t.Errorf("Expected 1 <= HP <= MaxHP, got %d/%d", p.HP, p.MaxHP)
	}

	dropped := 0
	for _, it := range result.Rewards.Items {
		if it.ItemID == "itm_health_potion" {
			dropped += it.Qty
		}
	}
	if got := p.Inventory.Count("itm_health_potion"); got != 2+dropped {
		t.Errorf("Expected %d potions after using one, got %d", 2+dropped, got)
	}
}

func TestSimulateBattleDeterministic(t *testing.T) {
	run := func() *Result {
		svc, store := newTestService(t, 7)
		stored := strongPlayer()
		store.EXPECT().Get(gomock.Any(), "p1").Return(stored.Clone(), nil)
		expectUpdate(store, stored)
		result, err := svc.SimulateBattle(context.Background(), "p1", "btl_goblin_throne")
		if err != nil {
			t.Fatalf("SimulateBattle() error: %v", err)
		}
		return result
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a.Log, b.Log) {
		t.Error("Expected identical logs for the same seed")
	}
	if !reflect.DeepEqual(a.Rewards, b.Rewards) {
		t.Errorf("Expected identical rewards, got %+v and %+v", a.Rewards, b.Rewards)
	}
	if a.BattleID == b.BattleID {
		t.Error("Expected distinct battle ids")
	}
}

func TestSimulateBattleLoseAppliesPenalty(t *testing.T) {
	svc, store := newTestService(t, 3)
	stored := weakPlayer()
	store.EXPECT().Get(gomock.Any(), "p1").Return(stored.Clone(), nil)
	expectUpdate(store, stored)
	svc.PlayerPolicy = combat.PolicyFunc(func(b *combat.Battle, self *combat.Combatant) combat.Action {
		return combat.Action{ActorID: self.ID, Kind: combat.ActionDefend}
	})

	result, err := svc.SimulateBattle(context.Background(), "p1", "btl_wolf_den")
	if err != nil {
		t.Fatalf("SimulateBattle() error: %v", err)
	}

	if result.Outcome != combat.OutcomeLose {
		t.Fatalf("Expected lose, got %s", result.Outcome)
	}
	if result.Rewards.GoldLost != 10 || result.Player.Gold != 90 {
		t.Errorf("Expected 10%% gold penalty (90 left), lost %d with %d left", result.Rewards.GoldLost, result.Player.Gold)
	}
	if result.Player.HP != 1 {
		t.Errorf("Expected persisted HP floored at 1, got %d", result.Player.HP)
	}
	if result.Rewards.XP != 0 || len(result.LevelUps) != 0 {
		t.Errorf("Expected no rewards on a loss, got %+v", result.Rewards)
	}
	if result.Player.CurrentStoryNodeID != "sto_village_infirmary" {
		t.Errorf("Expected story node sto_village_infirmary, got %q", result.Player.CurrentStoryNodeID)
	}
}

func TestSimulateBattleEscapeWithoutTargetWritesNothing(t *testing.T) {
	svc, store := newTestService(t, 11)
	store.EXPECT().Get(gomock.Any(), "p1").Return(strongPlayer(), nil)
	// No UpdatePlayer expectation: any write fails the test.
	svc.PlayerPolicy = combat.PolicyFunc(func(b *combat.Battle, self *combat.Combatant) combat.Action {
		return combat.Action{ActorID: self.ID, Kind: combat.ActionEscape}
	})

	_, err := svc.SimulateBattle(context.Background(), "p1", "btl_imp_forge")
	if !apperrors.IsCode(err, apperrors.CodeMissingNextNode) {
		t.Fatalf("Expected MISSING_NEXT_NODE, got %v", err)
	}
	if !apperrors.Is(err, apperrors.KindDataIntegrity) {
		t.Errorf("Expected data integrity kind, got %s", apperrors.KindOf(err))
	}
	md := apperrors.GetMetadata(err)
	if md["battleNodeId"] != "btl_imp_forge" || md["field"] != "nextOnEscape" {
		t.Errorf("Expected btl_imp_forge/nextOnEscape metadata, got %v", md)
	}
}

func TestSimulateBattleLookupErrors(t *testing.T) {
	t.Run("unknown encounter", func(t *testing.T) {
		svc, _ := newTestService(t, 1)
		_, err := svc.SimulateBattle(context.Background(), "p1", "btl_nowhere")
		if !apperrors.IsCode(err, apperrors.CodeEncounterNotFound) {
			t.Fatalf("Expected ENCOUNTER_NOT_FOUND, got %v", err)
		}
	})

	t.Run("unknown player", func(t *testing.T) {
		svc, store := newTestService(t, 1)
		store.EXPECT().Get(gomock.Any(), "ghost").
			Return(nil, apperrors.New(apperrors.CodePlayerNotFound, "player not found"))
		_, err := svc.SimulateBattle(context.Background(), "ghost", "btl_forest_ambush")
		if !apperrors.Is(err, apperrors.KindNotFound) {
			t.Fatalf("Expected not found, got %v", err)
		}
	})

	t.Run("content unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		content := mocks.NewMockCatalogSource(ctrl)
		content.EXPECT().Catalog(gomock.Any()).Return(nil, errors.New("disk on fire"))
		svc := NewService(mocks.NewMockPlayerStore(ctrl), content, Config{Seed: 1})
		_, err := svc.SimulateBattle(context.Background(), "p1", "btl_forest_ambush")
		if !apperrors.IsCode(err, apperrors.CodeContentUnavailable) {
			t.Fatalf("Expected CONTENT_UNAVAILABLE, got %v", err)
		}
	})
}

func TestSimulateBattlePersistFailure(t *testing.T) {
	svc, store := newTestService(t, 5)
	store.EXPECT().Get(gomock.Any(), "p1").Return(strongPlayer(), nil)
	store.EXPECT().UpdatePlayer(gomock.Any(), "p1", gomock.Any()).
		Return(nil, apperrors.New(apperrors.CodePersistFailed, "database is locked"))

	result, err := svc.SimulateBattle(context.Background(), "p1", "btl_forest_ambush")
	if result != nil {
		t.Error("Expected no result when the write fails")
	}
	if !apperrors.Is(err, apperrors.KindResource) {
		t.Fatalf("Expected resource error, got %v", err)
	}
}

func TestBuildBattleRoster(t *testing.T) {
	catalog := gamedata.MustLoadEmbeddedCatalog()
	log := logger.Component("test")

	node := catalog.Encounter("btl_goblin_throne")
	battle, err := buildBattle(log, catalog, node, strongPlayer(), 1)
	if err != nil {
		t.Fatalf("buildBattle() error: %v", err)
	}

	var ids []string
	for _, c := range battle.Combatants {
		ids = append(ids, c.ID)
	}
	want := []string{"p1", "vil_goblin_king#1", "mon_goblin#2"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Expected roster %v, got %v", want, ids)
	}
	if battle.Combatant("vil_goblin_king#1").Kind != combat.KindVillain {
		t.Error("Expected the king to be a villain")
	}

	bad := &gamedata.BattleNodeDef{ID: "btl_bad", Enemies: []gamedata.EnemyRef{{Kind: gamedata.EnemyMonster, ID: "mon_missing"}}}
	if _, err := buildBattle(log, catalog, bad, strongPlayer(), 1); !apperrors.IsCode(err, apperrors.CodeUnknownReference) {
		t.Errorf("Expected UNKNOWN_REFERENCE for a missing monster, got %v", err)
	}

	empty := &gamedata.BattleNodeDef{ID: "btl_empty"}
	if _, err := buildBattle(log, catalog, empty, strongPlayer(), 1); !apperrors.IsCode(err, apperrors.CodeInvalidEncounter) {
		t.Errorf("Expected INVALID_ENCOUNTER for an empty encounter, got %v", err)
	}
}
