// Package api exposes the battle service over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/questforge/internal/entity"
	apperrors "github.com/samdwyer/questforge/internal/errors"
	"github.com/samdwyer/questforge/internal/game"
	"github.com/samdwyer/questforge/internal/logger"
)

// Route paths.
const (
	RouteHealth       = "/healthz"
	RouteElements     = "/elements"
	RouteBattleStart  = "/battle/start"
	RouteBattleStream = "/battle/stream"
	RouteRequirements = "/requirements/check"
)

// BattleRunner runs one battle to completion.
type BattleRunner interface {
	SimulateBattle(ctx context.Context, playerID, battleNodeID string) (*game.Result, error)
}

// PlayerReader loads player records.
type PlayerReader interface {
	Get(ctx context.Context, id string) (*entity.Player, error)
}

// Handler groups the HTTP handlers.
type Handler struct {
	battles BattleRunner
	players PlayerReader
}

// NewHandler creates a Handler.
func NewHandler(battles BattleRunner, players PlayerReader) *Handler {
	return &Handler{battles: battles, players: players}
}

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET(RouteHealth, h.Health)
	router.GET(RouteElements, h.ListElements)
	router.POST(RouteBattleStart, h.StartBattle)
	router.GET(RouteBattleStream, h.StreamBattle)
	router.POST(RouteRequirements, h.CheckRequirements)
	return router
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error    string            `json:"error"`
	Code     apperrors.Code    `json:"code"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func newErrorBody(err error) errorBody {
	return errorBody{
		Error:    err.Error(),
		Code:     apperrors.GetCode(err),
		Metadata: apperrors.GetMetadata(err),
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), newErrorBody(err))
}

func requestLogger() gin.HandlerFunc {
	log := logger.Component("api")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("request")
	}
}
