package main

import (
	"context"
	"time"

	"github.com/sanghtth/product-dashboard/config"
	"github.com/sanghtth/product-dashboard/internal/app"
	"github.com/sanghtth/product-dashboard/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	dashboardApp := app.New(sigCtx, cfg)

	dashboardApp.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	dashboardApp.Close(ctx)
}
