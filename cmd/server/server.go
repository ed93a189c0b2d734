package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"movision-server/internal/config"
	"movision-server/internal/domain/chat"
	"movision-server/internal/domain/library"
	"movision-server/internal/domain/movie"
	"movision-server/internal/domain/ratelimit"
	"movision-server/internal/domain/session"
	"movision-server/internal/infrastructure/crontab"
	"movision-server/internal/infrastructure/database"
	"movision-server/internal/infrastructure/database/repository/watchedrepo"
	"movision-server/internal/infrastructure/database/repository/watchlistrepo"
	"movision-server/internal/infrastructure/inference"
	"movision-server/internal/infrastructure/logger"
	"movision-server/internal/infrastructure/mailer"
	"movision-server/internal/infrastructure/tmdb"
	"movision-server/internal/interfaces/httpserver"
	"movision-server/internal/interfaces/httpserver/handlers/libraryhandler"
	"movision-server/internal/interfaces/httpserver/handlers/moviehandler"
	"movision-server/internal/interfaces/httpserver/handlers/sharehandler"
	"movision-server/internal/interfaces/httpserver/handlers/tmdbhandler"
	"movision-server/internal/interfaces/httpserver/middlewares"
	"movision-server/internal/interfaces/httpserver/routes/v1"
	"movision-server/internal/interfaces/httpserver/routes/v1/catalog"
	"movision-server/internal/interfaces/httpserver/routes/v1/movies"
	"movision-server/internal/interfaces/httpserver/routes/v1/share"
	"movision-server/internal/interfaces/httpserver/routes/v1/userlibrary"
)

type Application struct {
	httpServer  *httpserver.HTTPServer
	crontab     *crontab.Crontab
	metricsPort int
}

func (application *Application) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var eg errgroup.Group
	eg.Go(func() error {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		err := http.ListenAndServe(fmt.Sprintf(":%d", application.metricsPort), mux)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.crontab.Run(ctx)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.httpServer.Run()
		if err != nil {
			cancel()
		}
		return err
	})

	if err := eg.Wait(); err != nil {
		panic(err)
	}
}

func main() {
	log := logger.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	appLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal().Err(err).Msg("logger setup failed")
	}

	// Core domain services.
	sessions := session.NewStore(cfg.SessionIdleTimeout)
	generalLimiter := ratelimit.NewLimiter(ratelimit.Config{
		Window:      cfg.RateLimitWindow,
		MaxRequests: cfg.RateLimitMax,
	})
	aiLimiter := ratelimit.NewLimiter(ratelimit.Config{
		Window:      cfg.AIRateLimitWindow,
		MaxRequests: cfg.AIRateLimitMax,
	})

	engineOpts := chat.EngineOptions{
		Model:       cfg.AIModel,
		Temperature: cfg.AITemperature,
	}
	if profile := cfg.PromptProfile(); profile != nil {
		engineOpts.SystemPrompt = profile.SystemPrompt
		if profile.Model != "" {
			engineOpts.Model = profile.Model
		}
		if profile.Temperature != nil {
			engineOpts.Temperature = *profile.Temperature
		}
	}
	chatClient := inference.NewChatCompletionClient("ai-provider", cfg.AIBaseURL, cfg.AIAPIKey, cfg.AITimeout)
	engine := chat.NewEngine(chatClient, engineOpts)

	tmdbClient := tmdb.NewClient(cfg.TMDBBaseURL, cfg.TMDBImageBaseURL, cfg.TMDBAPIKey, cfg.TMDBTimeout)
	enricher := movie.NewEnricher(tmdbClient, cfg.EnrichConcurrency, appLogger)

	// Middlewares shared across route groups.
	generalRateLimit := middlewares.RateLimitMiddleware(generalLimiter, "general",
		"Too many requests. Please try again later.")
	aiRateLimit := middlewares.RateLimitMiddleware(aiLimiter, "ai",
		"Daily AI recommendation limit reached. Please try again tomorrow.")

	// Routes.
	moviesRoute := movies.NewMoviesRoute(
		moviehandler.NewMovieHandler(engine, sessions, enricher, appLogger),
		generalRateLimit, aiRateLimit,
	)
	catalogRoute := catalog.NewCatalogRoute(
		tmdbhandler.NewTMDBHandler(tmdbClient, appLogger),
		generalRateLimit,
	)

	// Library routes need both a database and an auth secret.
	var libraryRoute *userlibrary.LibraryRoute
	if cfg.DatabaseURL != "" && len(cfg.AuthSecret) > 0 {
		db, err := database.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("database connection failed")
		}
		if cfg.AutoMigrate {
			if err := database.AutoMigrate(db); err != nil {
				log.Fatal().Err(err).Msg("database migration failed")
			}
		}
		libraryService := library.NewService(
			watchlistrepo.NewWatchlistRepository(db),
			watchedrepo.NewWatchedRepository(db),
		)
		libraryRoute = userlibrary.NewLibraryRoute(
			libraryhandler.NewLibraryHandler(libraryService, appLogger),
			middlewares.AuthMiddleware(cfg.AuthSecret, appLogger),
			generalRateLimit,
		)
	} else {
		appLogger.Info().Msg("library routes disabled: no database or auth secret configured")
	}

	var shareRoute *share.ShareRoute
	mailerClient := mailer.NewClient(cfg.MailerBaseURL, cfg.MailerAPIKey, cfg.MailerSenderName, cfg.MailerSenderEmail, cfg.MailerTimeout)
	if mailerClient.Enabled() {
		shareRoute = share.NewShareRoute(
			sharehandler.NewShareHandler(mailerClient, appLogger),
			generalRateLimit,
		)
	} else {
		appLogger.Info().Msg("share route disabled: mailer not configured")
	}

	application := &Application{
		httpServer: httpserver.NewHttpServer(
			v1.NewV1Route(moviesRoute, catalogRoute, libraryRoute, shareRoute),
			cfg, appLogger,
		),
		crontab:     crontab.NewCrontab(sessions, generalLimiter, aiLimiter),
		metricsPort: cfg.MetricsPort,
	}

	appLogger.Info().
		Int("http_port", cfg.HTTPPort).
		Int("metrics_port", cfg.MetricsPort).
		Str("model", engineOpts.Model).
		Msg("movie api starting")

	application.Start()
}
