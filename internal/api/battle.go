package api

import (
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"

	"github.com/samdwyer/questforge/internal/combat"
	apperrors "github.com/samdwyer/questforge/internal/errors"
	"github.com/samdwyer/questforge/internal/game"
	"github.com/samdwyer/questforge/internal/logger"
)

type startBattleRequest struct {
	PlayerID     string `json:"playerId"`
	BattleNodeID string `json:"battleNodeId"`
}

// StartBattle simulates a battle and returns the full result.
func (h *Handler) StartBattle(c *gin.Context) {
	var req startBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.Wrap(apperrors.CodeInvalidRequest, "invalid body", err))
		return
	}
	if req.PlayerID == "" || req.BattleNodeID == "" {
		writeError(c, apperrors.New(apperrors.CodeInvalidRequest, "playerId and battleNodeId are required"))
		return
	}

	result, err := h.battles.SimulateBattle(c.Request.Context(), req.PlayerID, req.BattleNodeID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Stream frame types.
const (
	FrameEvent  = "event"
	FrameResult = "result"
	FrameError  = "error"
)

// streamFrame is one websocket message of a battle stream.
type streamFrame struct {
	Type   string        `json:"type"`
	Event  *combat.Event `json:"event,omitempty"`
	Result *game.Result  `json:"result,omitempty"`
	Error  *errorBody    `json:"error,omitempty"`
}

// StreamBattle upgrades to a websocket, simulates the battle and sends
// each log event as its own frame followed by the result.
func (h *Handler) StreamBattle(c *gin.Context) {
	playerID, nodeID := c.Query("playerId"), c.Query("battleNodeId")
	if playerID == "" || nodeID == "" {
		writeError(c, apperrors.New(apperrors.CodeInvalidRequest, "playerId and battleNodeId are required"))
		return
	}

	log := logger.Component("api").WithField("player_id", playerID)
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.WithError(err).Error("failed to accept websocket")
		return
	}
	defer conn.CloseNow()

	ctx := c.Request.Context()
	result, err := h.battles.SimulateBattle(ctx, playerID, nodeID)
	if err != nil {
		body := newErrorBody(err)
		if werr := wsjson.Write(ctx, conn, streamFrame{Type: FrameError, Error: &body}); werr != nil {
			log.WithError(werr).Debug("stream write failed")
			return
		}
		conn.Close(websocket.StatusPolicyViolation, string(body.Code))
		return
	}

	for i := range result.Log {
		if err := wsjson.Write(ctx, conn, streamFrame{Type: FrameEvent, Event: &result.Log[i]}); err != nil {
			log.WithError(err).Debug("stream write failed")
			return
		}
	}
	if err := wsjson.Write(ctx, conn, streamFrame{Type: FrameResult, Result: result}); err != nil {
		log.WithError(err).Debug("stream write failed")
		return
	}
	conn.Close(websocket.StatusNormalClosure, "battle over")
}
