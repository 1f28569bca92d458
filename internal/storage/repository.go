package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/samdwyer/questforge/internal/entity"
	apperrors "github.com/samdwyer/questforge/internal/errors"
)

// PlayerRepository reads and writes player records.
type PlayerRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository wraps an opened database.
func NewSQLiteRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Get loads a player by id.
func (r *PlayerRepository) Get(ctx context.Context, id string) (*entity.Player, error) {
	return getPlayer(r.db.WithContext(ctx), id)
}

// Save inserts or fully replaces a player record.
func (r *PlayerRepository) Save(ctx context.Context, p *entity.Player) error {
	p.UpdatedAt = time.Now().UTC()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(p).Error
	if err != nil {
		return apperrors.Wrap(apperrors.CodePersistFailed, "save player "+p.ID, err)
	}
	return nil
}

// UpdatePlayer loads the player, passes it to fn and writes the result back
// in one transaction. An error from fn rolls the transaction back and is
// returned unchanged.
func (r *PlayerRepository) UpdatePlayer(ctx context.Context, id string, fn func(*entity.Player) error) (*entity.Player, error) {
	var updated *entity.Player
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := getPlayer(tx, id)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		p.ID = id
		p.UpdatedAt = time.Now().UTC()
		if err := tx.Save(p).Error; err != nil {
			return apperrors.Wrap(apperrors.CodePersistFailed, "save player "+id, err)
		}
		updated = p
		return nil
	})
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.CodePersistFailed, "update player "+id, err)
	}
	return updated, nil
}

func getPlayer(db *gorm.DB, id string) (*entity.Player, error) {
	var p entity.Player
	err := db.Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WithMetadata(apperrors.CodePlayerNotFound, "player not found", map[string]string{"playerId": id})
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeLoadFailed, "load player "+id, err)
	}
	return &p, nil
}
