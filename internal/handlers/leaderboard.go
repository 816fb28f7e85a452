package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brightclass/brightclass-backend/internal/services"
	"github.com/brightclass/brightclass-backend/internal/types"
)

type LeaderboardHandler struct {
	partitions services.PartitionService
}

func NewLeaderboardHandler(partitions services.PartitionService) *LeaderboardHandler {
	return &LeaderboardHandler{partitions: partitions}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	query := services.PartitionQuery{
		Kind: services.PartitionKind(c.Query("kind")),
	}
	if query.Kind == "" {
		query.Kind = services.PartitionGlobal
	}

	scopeID, ok := optionalUUIDQuery(c, "scope_id")
	if !ok {
		return
	}
	query.ScopeID = scopeID

	if raw := c.Query("level"); raw != "" {
		level := types.CognitiveLevel(raw)
		query.Level = &level
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		query.Limit = limit
	}

	requester, ok := optionalUUIDQuery(c, "requesting_user_id")
	if !ok {
		return
	}
	query.RequestingUserID = requester

	result, err := h.partitions.GetPartition(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetLeaderboards serves several partitions in one round trip; a failing
// partition surfaces as an error entry for its key only.
func (h *LeaderboardHandler) GetLeaderboards(c *gin.Context) {
	var req struct {
		Queries []services.PartitionQuery `json:"queries" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	outcomes := h.partitions.GetMultiplePartitions(c.Request.Context(), req.Queries)

	body := make(map[string]gin.H, len(outcomes))
	for key, outcome := range outcomes {
		if outcome.Err != nil {
			apiErr := respondableError(outcome.Err)
			body[key] = gin.H{"error": apiErr}
			continue
		}
		body[key] = gin.H{"result": outcome.Result}
	}
	c.JSON(http.StatusOK, gin.H{"partitions": body})
}
