package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/twmb/franz-go/pkg/sr"

	"github.com/santeh/storefront/config"
	"github.com/santeh/storefront/internal/adapter/httphandler"
	"github.com/santeh/storefront/internal/adapter/kafka"
	"github.com/santeh/storefront/internal/adapter/storage"
	"github.com/santeh/storefront/internal/core/catalog"
	"github.com/santeh/storefront/internal/core/domain"
	"github.com/santeh/storefront/internal/core/port"
	"github.com/santeh/storefront/internal/core/service"
	"github.com/santeh/storefront/pkg/schema"
)

type App struct {
	ctx context.Context
	cfg config.Config

	snapshotStorage *storage.SnapshotStorage
	eventsProducer  kafka.ShopEventsProducer
	trendingProc    kafka.TrendingProcessor
	trendingView    *kafka.TrendingView

	service    *service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()

	cat := app.initCatalog()
	app.initSnapshotStorage()

	events, trending := app.initMessaging()
	app.service = service.New(cat, app.snapshotStorage, events, trending)

	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initCatalog() catalog.Catalog {
	const op = "App.initCatalog"

	ps, err := storage.LoadCatalogSeed(app.cfg.Catalog.SeedFile)
	if err != nil {
		app.fallDown(op, err)
	}
	return catalog.New(ps)
}

func (app *App) initSnapshotStorage() {
	const op = "App.initSnapshotStorage"

	s, err := storage.NewSnapshotStorage(app.ctx, app.cfg.Snapshot.Path)
	if err != nil {
		app.fallDown(op, err)
	}
	app.snapshotStorage = s
}

// initMessaging builds the kafka adapters when seed brokers are
// configured, no-op stand-ins otherwise.
func (app *App) initMessaging() (port.EventsProducer, port.TrendingReader) {
	const op = "App.initMessaging"

	if !app.cfg.MessagingEnabled() {
		slog.Info("messaging disabled, shop events are not published")
		return noopEventsProducer{}, noopTrendingReader{}
	}

	broker := app.cfg.Broker
	eventSerde := app.initEventSerde()

	producer, err := kafka.NewShopEventsProducer(
		kafka.ProducerClientOpt(app.ctx, broker.SeedBrokers, broker.Topics.ShopEvents),
		kafka.ProducerEncoderOpt(eventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.eventsProducer = producer

	proc, err := kafka.NewTrendingProcessor(
		broker.SeedBrokers,
		broker.Topics.ShopEvents,
		broker.Consumers.TrendingGroup,
		eventSerde,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.trendingProc = proc

	view, err := kafka.NewTrendingView(
		broker.SeedBrokers, broker.Consumers.TrendingGroup,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.trendingView = view

	return producer, view
}

func (app *App) initEventSerde() schema.Serde {
	const op = "App.initEventSerde"

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	subject := app.cfg.Broker.Topics.ShopEvents + "-value"
	eventSerde, err := schema.NewSerdeShopEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	return eventSerde
}

func (app *App) initHTTPServer() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.service)
	httphandler.RegisterCart(mux, app.service)
	httphandler.RegisterWishlist(mux, app.service)
	httphandler.RegisterContact(mux)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(addr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	if app.cfg.MessagingEnabled() {
		go app.trendingProc.Run(app.ctx)
		go app.trendingView.Run(app.ctx)
	}

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.cfg.MessagingEnabled() {
		app.eventsProducer.Close()
		app.trendingProc.Close()
	}
	app.snapshotStorage.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}

type noopEventsProducer struct{}

func (noopEventsProducer) ProduceEvent(context.Context, domain.ShopEvent) error {
	return nil
}

type noopTrendingReader struct{}

func (noopTrendingReader) Trending(context.Context) ([]domain.ProductTrend, error) {
	return nil, nil
}
