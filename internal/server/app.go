// Package server initializes and runs the PrayLink server. It selects the
// storage backend and payment gateways, wires the services and runs the gRPC
// API next to the HTTP webhook server until shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/praylink/internal/logging"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/server/config"
	"github.com/dmitrijs2005/praylink/internal/server/guide"
	"github.com/dmitrijs2005/praylink/internal/server/payments"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/memory"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/praylink/internal/server/services"
	"github.com/dmitrijs2005/praylink/internal/server/webhook"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/praylink/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	grpc   *gs.GRPCServer
	http   *webhook.Server
}

var openPostgres = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
	return repomanager.OpenPostgres(ctx, dsn)
}

func NewApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {

	logger, err := logging.New(c.LogFormat, out)
	if err != nil {
		return nil, err
	}

	repos, err := openRepositories(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	gateways, err := buildGateways(c, logger)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	var gen guide.Generator
	g, err := guide.NewGenAIGenerator(ctx, c.GeminiAPIKey, c.GeminiModel)
	if err != nil {
		logger.Warn(ctx, "generative text disabled", "error", err)
	} else if g != nil {
		gen = g
	}

	var verses guide.VerseSource
	if c.VerseFeedURL != "" {
		verses = guide.NewRSSVerseSource(c.VerseFeedURL)
	}

	tithes := services.NewTitheService(repos, c.PremiumThreshold, gateways...)

	svc := gs.Services{
		Users:   services.NewUserService(repos, c),
		Feed:    services.NewFeedService(repos),
		Tithes:  tithes,
		Avatars: services.NewAvatarService(c),
		Guide:   guide.NewService(gen, verses, logger),
	}

	return &App{
		config: c,
		logger: logger,
		repos:  repos,
		grpc:   gs.NewGRPCServer(c.EndpointAddrGRPC, logger, svc, c.SecretKey),
		http:   webhook.NewServer(c.EndpointAddrHTTP, logger, tithes, c.StripeWebhookSecret),
	}, nil
}

func openRepositories(ctx context.Context, c *config.Config, logger logging.Logger) (repomanager.RepositoryManager, error) {
	switch c.Storage {
	case config.StoragePostgres:
		rm, err := openPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		if err := rm.RunMigrations(ctx); err != nil {
			_ = rm.Close()
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
		logger.Info(ctx, "Using PostgreSQL storage")
		return rm, nil

	case config.StorageMemory:
		store := memory.NewStore()
		if c.SeedDemo {
			if err := memory.Seed(ctx, store); err != nil {
				return nil, fmt.Errorf("seed failed: %w", err)
			}
			logger.Info(ctx, "Loaded demo members", "password", memory.DemoPassword)
		}
		logger.Info(ctx, "Using in-memory storage")
		return repomanager.NewMemoryRepositoryManager(store), nil

	default:
		return nil, fmt.Errorf("unknown storage %q", c.Storage)
	}
}

// buildGateways picks a live gateway per method when credentials exist and
// the sandbox otherwise.
func buildGateways(c *config.Config, logger logging.Logger) ([]payments.Gateway, error) {
	var card, pp payments.Gateway

	if c.StripeSecretKey != "" {
		card = payments.NewStripeGateway(c.StripeSecretKey)
	} else {
		card = payments.NewSandboxGateway(models.PaymentCreditCard)
		logger.Warn(context.Background(), "Stripe not configured, card tithes use the sandbox")
	}

	if c.PayPalClientID != "" && c.PayPalSecret != "" {
		g, err := payments.NewPayPalGateway(c.PayPalClientID, c.PayPalSecret, c.PayPalLive)
		if err != nil {
			return nil, fmt.Errorf("paypal init error: %w", err)
		}
		pp = g
	} else {
		pp = payments.NewSandboxGateway(models.PaymentPayPal)
		logger.Warn(context.Background(), "PayPal not configured, PayPal tithes use the sandbox")
	}

	return []payments.Gateway{card, pp}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled, a signal arrives or a server fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.grpc.Run(gctx) })
	g.Go(func() error { return app.http.Run(gctx) })

	err := g.Wait()

	if cerr := app.repos.Close(); cerr != nil {
		app.logger.Error(ctx, "failed to close storage", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
