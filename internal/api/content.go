package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/samdwyer/questforge/internal/errors"
	"github.com/samdwyer/questforge/internal/gamedata"
	"github.com/samdwyer/questforge/internal/rules"
)

type elementInfo struct {
	Key gamedata.ElementKey `json:"key"`
	Hex string              `json:"hex"`
	RGB [3]int32            `json:"rgb"`
}

// ListElements returns the element table with display colours.
func (h *Handler) ListElements(c *gin.Context) {
	out := make([]elementInfo, 0, len(gamedata.Elements))
	for _, key := range gamedata.Elements {
		r, g, b := gamedata.ElementColor(key).RGB()
		out = append(out, elementInfo{Key: key, Hex: gamedata.ElementHex(key), RGB: [3]int32{r, g, b}})
	}
	c.JSON(http.StatusOK, out)
}

type requirementsRequest struct {
	PlayerID     string                 `json:"playerId"`
	Requirements *gamedata.Requirements `json:"requirements"`
}

// CheckRequirements evaluates a requirement block against a stored player.
func (h *Handler) CheckRequirements(c *gin.Context) {
	var req requirementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.Wrap(apperrors.CodeInvalidRequest, "invalid body", err))
		return
	}
	if req.PlayerID == "" {
		writeError(c, apperrors.New(apperrors.CodeInvalidRequest, "playerId is required"))
		return
	}

	p, err := h.players.Get(c.Request.Context(), req.PlayerID)
	if err != nil {
		writeError(c, err)
		return
	}

	unmet := rules.Unmet(p, req.Requirements)
	if unmet == nil {
		unmet = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"meets": rules.Meets(p, req.Requirements),
		"unmet": unmet,
	})
}
