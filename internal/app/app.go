package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/sanghtth/product-dashboard/config"
	"github.com/sanghtth/product-dashboard/internal/adapter"
	"github.com/sanghtth/product-dashboard/internal/adapter/catalogapi"
	"github.com/sanghtth/product-dashboard/internal/adapter/httphandler"
	"github.com/sanghtth/product-dashboard/internal/adapter/kafka"
	"github.com/sanghtth/product-dashboard/internal/core/port"
	"github.com/sanghtth/product-dashboard/internal/core/service"
	"github.com/sanghtth/product-dashboard/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx              context.Context
	cfg              config.Config
	activitySerde    schema.Serde
	activityProducer kafka.ActivityProducer
	activityEnabled  bool
	dashboard        *service.Dashboard
	httpServer       httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initActivitySerde()
	app.initActivityProducer()
	app.initDashboard()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initActivitySerde() {
	const op = "App.initActivitySerde"

	// the activity stream is side traffic, the dashboard runs without
	// it when no broker is configured
	if len(app.cfg.Broker.SeedBrokers) == 0 {
		slog.Info("activity stream disabled: no seed brokers configured")
		return
	}

	srClient, err := sr.NewClient(sr.URLs(app.cfg.Broker.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	subject := app.cfg.Broker.ActivityTopic + "-value"
	activitySerde, err := schema.NewSerdeActivityV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.activitySerde = activitySerde
}

func (app *App) initActivityProducer() {
	const op = "App.initActivityProducer"

	if app.activitySerde == nil {
		return
	}

	clientConfig := kafka.ProducerClientConfig{
		SeedBrokers: app.cfg.Broker.SeedBrokers,
		Topic:       app.cfg.Broker.ActivityTopic,
	}
	if app.cfg.BrokerTLSEnabled() {
		tlsCfg := app.cfg.Broker.TLS
		clientConfig.TLSConfig = adapter.MakeTLSConfig(
			tlsCfg.CAFile, tlsCfg.CertFile, tlsCfg.KeyFile,
		)
	}

	producer, err := kafka.NewActivityProducer(
		kafka.ProducerClientOpt(app.ctx, clientConfig),
		kafka.ProducerEncoderOpt(app.activitySerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.activityProducer = producer
	app.activityEnabled = true
}

func (app *App) initDashboard() {
	catalog := catalogapi.New(
		app.cfg.CatalogAPI.BaseURL,
		app.cfg.CatalogAPI.Timeout,
	)

	var activity port.ActivityProducer
	if app.activityEnabled {
		activity = app.activityProducer
	}

	app.dashboard = service.New(
		catalog,
		activity,
		app.cfg.Dashboard.PageSize,
	)
}

func (app *App) initHTTPServer() {
	router := httphandler.NewRouter(app.dashboard, app.dashboard, app.dashboard)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, router)
}

func (app *App) Run(stopFn context.CancelFunc) {
	const op = "App.Run"

	go app.httpServer.Run(stopFn)

	// the dashboard starts empty, the store fills when the initial
	// load completes
	go func() {
		if err := app.dashboard.Load(app.ctx); err != nil {
			slog.With("op", op).Error("initial product load failed", "err", err)
		}
	}()

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.activityEnabled {
		app.activityProducer.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
