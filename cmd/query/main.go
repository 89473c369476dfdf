package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/canopy-network/chainstatus/app/query"
)

//go:generate swag init -g ../../app/query/controller/controller.go -d ../../app/query -o ../../app/query/docs

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	defer cancel()

	app := query.Initialize(ctx)

	serverErr := query.NewServer(app)
	if serverErr != nil {
		app.Logger.Fatal("Unable to initialize server", zap.Error(serverErr))
	}

	if err := app.Start(ctx); err != nil {
		app.Logger.Fatal("Server failed", zap.Error(err))
	}
}
