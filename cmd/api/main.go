package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/TollFee-api/internal/application/auth"
	"github.com/jhoicas/TollFee-api/internal/application/tolling"
	"github.com/jhoicas/TollFee-api/internal/domain/repository"
	"github.com/jhoicas/TollFee-api/internal/infrastructure/postgres"
	"github.com/jhoicas/TollFee-api/internal/infrastructure/rulefile"
	httpRouter "github.com/jhoicas/TollFee-api/internal/interfaces/http"
	"github.com/jhoicas/TollFee-api/pkg/config"
	"github.com/jhoicas/TollFee-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("rules_source", cfg.Rules.Source).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		source tolling.RuleSetSource = tolling.DefaultSource{}
		repo   repository.RuleSetRepository
		pool   *pgxpool.Pool
	)
	switch cfg.Rules.Source {
	case config.RulesSourceFile:
		source = rulefile.NewSource(cfg.Rules.Path)
	case config.RulesSourcePostgres:
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		ruleSetRepo := postgres.NewRuleSetRepository(pool)
		repo = ruleSetRepo
		source = tolling.NewRepositorySource(ruleSetRepo)
	}

	tollUC, err := tolling.NewTollUseCase(ctx, source, repo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("catálogo de tarifarios")
	}
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: las rutas de administración quedan inaccesibles")
	}
	authUC := auth.NewAuthUseCase(
		auth.AdminCredentials{Username: cfg.Admin.Username, PasswordHash: cfg.Admin.PasswordHash},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 60,
		DisableStartupMessage: cfg.App.Env != "development",
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TollFee API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		TollUC:    tollUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listen(cfg.HTTP.Addr())
	})
	if cfg.Rules.Source == config.RulesSourceFile && cfg.Rules.Watch {
		watcher := rulefile.NewWatcher(cfg.Rules.Path, func(ctx context.Context) error {
			_, err := tollUC.Reload(ctx)
			return err
		}, log)
		g.Go(func() error { return watcher.Run(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("servidor HTTP finalizado")
	}
	log.Info().Msg("aplicación detenida")
}
