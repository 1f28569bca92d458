// Package storage persists player records in SQLite through gorm.
package storage

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/samdwyer/questforge/internal/entity"
	"github.com/samdwyer/questforge/internal/logger"
)

//go:embed players.json
var seedFS embed.FS

// OpenAndMigrate opens the SQLite database at dataSourceName and brings the
// schema up to date.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dataSourceName, err)
	}

	if err := db.AutoMigrate(&entity.Player{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// SeedPlayers inserts players when the table is empty.
func SeedPlayers(ctx context.Context, db *gorm.DB, players []entity.Player) error {
	var count int64
	if err := db.WithContext(ctx).Model(&entity.Player{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || len(players) == 0 {
		return nil
	}
	if err := db.WithContext(ctx).Create(&players).Error; err != nil {
		return err
	}

	logger.Component("storage").WithFields(logrus.Fields{
		"players": len(players),
	}).Info("seeded default players")
	return nil
}

// DefaultPlayers returns the starter players shipped with the binary.
func DefaultPlayers() ([]entity.Player, error) {
	raw, err := seedFS.ReadFile("players.json")
	if err != nil {
		return nil, err
	}
	var file struct {
		Players []entity.Player `json:"players"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse players.json: %w", err)
	}
	return file.Players, nil
}
