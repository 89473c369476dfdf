package query

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/canopy-network/chainstatus/app/query/controller"
	"github.com/canopy-network/chainstatus/app/query/types"
)

// NewServer builds the router and attaches an http.Server to app.
func NewServer(app *types.App) error {
	ctler := controller.NewController(app)
	router, err := ctler.NewRouter()
	if err != nil {
		return err
	}

	// use <ip>:<port> to bind to a specific interface or :<port> to bind to all interfaces
	addr := app.Config.Addr
	if addr == "" {
		addr = ":3001"
	}

	app.Server = &http.Server{
		Addr:              addr,
		Handler:           controller.WithCORS(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.Logger.Info("Starting server", zap.String("addr", addr))

	return nil
}
