// Package app assembles the storefront service from its adapters.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/cheiadearte/storefront/config"
	"github.com/cheiadearte/storefront/internal/adapter/cep"
	"github.com/cheiadearte/storefront/internal/adapter/httphandler"
	"github.com/cheiadearte/storefront/internal/adapter/kafka"
	"github.com/cheiadearte/storefront/internal/adapter/payment"
	"github.com/cheiadearte/storefront/internal/adapter/shiprate"
	"github.com/cheiadearte/storefront/internal/adapter/storage"
	"github.com/cheiadearte/storefront/internal/core/service"
	"github.com/cheiadearte/storefront/pkg/schema"
)

type serdes struct {
	orderEvent schema.Serde
}

type outbound struct {
	sqldb       storage.SQLDB
	carts       storage.CartsRepository
	orders      storage.OrdersRepository
	products    storage.ProductsRepository
	profiles    storage.ProfilesRepository
	rates       shiprate.Client
	gateway     payment.Client
	postal      *cep.Client
	orderEvents kafka.OrderEventsProducer
	statusProc  *kafka.OrderStatusProcessor
	statusView  *kafka.OrderStatusView
}

type coreServices struct {
	cart     *service.CartService
	shipping service.ShippingService
	checkout service.CheckoutService
	orders   service.OrderService
	catalog  service.CatalogService
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	serdes     serdes
	outbound   outbound
	services   coreServices
	httpServer httphandler.HTTPServer
	wg         sync.WaitGroup
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initCoreServices()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"

	registry, err := schema.NewRegistry(app.cfg.Broker.SchemaRegistryURLs...)
	if err != nil {
		app.fallDown(op, err)
	}

	orderEventSS := app.cfg.Broker.Topics.OrderEvents + "-value"
	orderEventSerde, err := schema.NewSerdeOrderEventV1(
		app.ctx,
		schema.SubjectOpt(orderEventSS),
		schema.SchemaIdentifierOpt(registry),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.orderEvent = orderEventSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.sqldb = sqldb
	app.outbound.carts = storage.NewCartsRepository(sqldb)
	app.outbound.orders = storage.NewOrdersRepository(sqldb)
	app.outbound.products = storage.NewProductsRepository(sqldb)
	app.outbound.profiles = storage.NewProfilesRepository(sqldb)

	app.outbound.rates = shiprate.New(shiprate.Config{
		APIURL:    app.cfg.Carriers.MelhorEnvioURL,
		Token:     app.cfg.Carriers.MelhorEnvioToken,
		OriginCEP: app.cfg.Shop.OriginCEP,
	})

	app.outbound.gateway = payment.New(payment.Config{
		APIURL:        app.cfg.Payments.MercadoPagoURL,
		AccessToken:   app.cfg.Payments.MercadoPagoToken,
		WebhookSecret: app.cfg.Payments.WebhookSecret,
		BackURLBase:   app.cfg.Payments.BackURLBase,
		StatementDesc: app.cfg.Shop.StatementDescriptor,
	})

	postal, err := cep.New(cep.Config{APIURL: app.cfg.ViaCEPURL})
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.postal = postal

	seedBrokers := app.cfg.Broker.SeedBrokers
	orderEventsTopic := app.cfg.Broker.Topics.OrderEvents

	orderEvents, err := kafka.NewOrderEventsProducer(
		kafka.ProducerClientOpt(app.ctx, seedBrokers, orderEventsTopic),
		kafka.ProducerEncoderOpt(app.serdes.orderEvent),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.orderEvents = orderEvents

	statusProc, err := kafka.NewOrderStatusProc(
		seedBrokers,
		orderEventsTopic,
		app.cfg.Broker.Topics.OrderStatusTable,
		app.serdes.orderEvent,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.statusProc = statusProc

	statusView, err := kafka.NewOrderStatusView(
		seedBrokers, app.cfg.Broker.Topics.OrderStatusTable,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.statusView = statusView
}

func (app *App) initCoreServices() {
	app.services.cart = service.NewCartService(
		app.outbound.carts, app.outbound.products,
	)
	app.services.shipping = service.NewShippingService(
		app.services.cart, app.outbound.rates, app.shippingPolicy(),
	)
	app.services.checkout = service.NewCheckoutService(
		app.services.cart,
		app.outbound.profiles,
		app.outbound.orders,
		app.outbound.gateway,
		app.outbound.orderEvents,
	)
	app.services.orders = service.NewOrderService(
		app.outbound.orders,
		app.outbound.gateway,
		app.services.cart,
		app.outbound.orderEvents,
		app.outbound.statusView,
	)
	app.services.catalog = service.NewCatalogService(
		app.outbound.products, app.outbound.postal,
	)
}

// shippingPolicy overlays configured values on the shop defaults.
func (app *App) shippingPolicy() service.ShippingPolicy {
	const op = "App.shippingPolicy"

	policy := service.DefaultShippingPolicy()

	shop := app.cfg.Shop
	if len(shop.LocalCEPPrefixes) != 0 {
		policy.LocalPrefixes = shop.LocalCEPPrefixes
	}
	if shop.LocalDeliveryPrice != "" {
		price, err := decimal.NewFromString(shop.LocalDeliveryPrice)
		if err != nil {
			app.fallDown(op, err)
		}
		policy.LocalPrice = price
	}
	if shop.FreeShippingMinimum != "" {
		threshold, err := decimal.NewFromString(shop.FreeShippingMinimum)
		if err != nil {
			app.fallDown(op, err)
		}
		policy.FreeThreshold = threshold
	}
	return policy
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.services.catalog, app.services.catalog)
	httphandler.RegisterCart(
		mux,
		app.services.cart,
		app.services.cart,
		app.services.cart,
		app.services.cart,
		app.services.cart,
	)
	httphandler.RegisterShipping(mux, app.services.shipping)
	httphandler.RegisterCheckout(
		mux,
		app.services.checkout,
		app.services.orders,
		app.services.orders,
		app.services.orders,
	)

	handler := httphandler.WithSession(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	app.wg.Add(2)
	app.outbound.statusProc.Run(app.ctx, stopFn, &app.wg)
	app.outbound.statusView.Run(app.ctx, stopFn, &app.wg)
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.outbound.statusProc.Close()
	app.outbound.orderEvents.Close()
	app.outbound.sqldb.Close()
	app.wg.Wait()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
