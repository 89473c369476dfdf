package controller

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/canopy-network/chainstatus/app/query/types"
)

// HandleStatus returns per-chain indexing counts.
//
//	@Summary		Per-chain indexing status
//	@Description	Aggregates the *_count_by_chain tables into one summary per chain. Chains are listed in the order the blocks query returns them; metrics without rows for a chain are 0.
//	@Tags			status
//	@Produce		json
//	@Success		200	{object}	types.StatusResponse
//	@Failure		500	{object}	types.ErrorResponse
//	@Router			/status [get]
func (c *Controller) HandleStatus(w http.ResponseWriter, r *http.Request) {
	summaries, err := c.App.Aggregator.Summaries(r.Context())
	if err != nil {
		c.App.Logger.Error("Status aggregation failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, types.Failure(types.InternalErrorMessage))
		return
	}

	c.writeJSON(w, http.StatusOK, types.Success(summaries))
}
