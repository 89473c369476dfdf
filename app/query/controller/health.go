package controller

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/canopy-network/chainstatus/app/query/types"
)

// HandleHealth pings the count store.
//
//	@Summary	Health check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	types.HealthResponse
//	@Failure	500	{object}	types.HealthResponse
//	@Router		/health [get]
func (c *Controller) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.App.Store.Ping(r.Context()); err != nil {
		c.App.Logger.Warn("Health check failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, types.HealthResponse{Status: "errored", Error: "database connection error"})
		return
	}

	c.writeJSON(w, http.StatusOK, types.HealthResponse{Status: "ok"})
}
