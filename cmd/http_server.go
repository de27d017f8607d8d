package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ulasan/company-review/internal"
	"github.com/ulasan/company-review/internal/application"
	applicationRepo "github.com/ulasan/company-review/internal/application/postgres"
	"github.com/ulasan/company-review/internal/auth"
	authRepo "github.com/ulasan/company-review/internal/auth/postgres"
	"github.com/ulasan/company-review/internal/claim"
	claimRepo "github.com/ulasan/company-review/internal/claim/postgres"
	"github.com/ulasan/company-review/internal/company"
	companyRepo "github.com/ulasan/company-review/internal/company/postgres"
	"github.com/ulasan/company-review/internal/companytype"
	companytypeRepo "github.com/ulasan/company-review/internal/companytype/postgres"
	"github.com/ulasan/company-review/internal/core/events"
	"github.com/ulasan/company-review/internal/job"
	jobRepo "github.com/ulasan/company-review/internal/job/postgres"
	"github.com/ulasan/company-review/internal/notification"
	"github.com/ulasan/company-review/internal/review"
	reviewRepo "github.com/ulasan/company-review/internal/review/postgres"
	"github.com/ulasan/company-review/internal/schema"
	"github.com/ulasan/company-review/internal/storage"
	"github.com/ulasan/company-review/internal/transport"
	"github.com/ulasan/company-review/internal/transport/rest"
	"github.com/ulasan/company-review/internal/user"
	userRepo "github.com/ulasan/company-review/internal/user/postgres"
	"github.com/ulasan/company-review/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	lg := deps.Logger

	ctx, cancel := internal.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	capabilities, err := schema.Discover(ctx, deps.DB, lg)
	if err != nil {
		return fmt.Errorf("discover schema capabilities: %w", err)
	}

	store := storage.NewStore(
		deps.Config.Uploads.BaseDir,
		deps.Config.Uploads.PublicPath,
		deps.Config.Uploads.MaxSizeBytes(),
		lg,
	)

	eventBus := events.NewEventBus(lg)
	mailer := notification.NewMailer(deps.Config.SMTP, lg)
	notification.RegisterHandlers(eventBus, mailer, lg)

	baseHandler := transport.NewBaseHandler(lg)

	tokenGen := auth.NewJWTTokenGenerator(
		deps.Config.Security.AccessTokenSecret,
		deps.Config.Security.RefreshTokenSecret,
	)
	authService := auth.NewService(authRepo.NewRepository(deps.GormDB), tokenGen)
	authHandler := auth.NewHandler(authService)
	resolver := auth.NewResolver(deps.DB, lg)

	userService := user.NewService(userRepo.NewRepository(deps.GormDB), lg)
	companyService := company.NewService(companyRepo.NewRepository(deps.GormDB), lg)
	typeService := companytype.NewService(companytypeRepo.NewRepository(deps.GormDB), lg)
	jobService := job.NewService(jobRepo.NewRepository(deps.GormDB), lg)
	reviewService := review.NewService(reviewRepo.NewRepository(deps.GormDB), capabilities, lg)
	applicationService := application.NewService(
		applicationRepo.NewRepository(deps.GormDB, capabilities.HasApplicationReviewTracking()),
		capabilities, eventBus, lg,
	)
	claimService := claim.NewService(claimRepo.NewRepository(deps.GormDB), eventBus, lg)

	handlers := rest.Handlers{
		Auth:        authHandler,
		Resolver:    resolver,
		User:        user.NewHandler(baseHandler, userService),
		Company:     company.NewHandler(baseHandler, companyService, store),
		CompanyType: companytype.NewHandler(baseHandler, typeService),
		Job:         job.NewHandler(baseHandler, jobService),
		Review:      review.NewHandler(baseHandler, reviewService),
		Application: application.NewHandler(baseHandler, applicationService, store),
		Claim:       claim.NewHandler(baseHandler, claimService, store),
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers, deps.Config.Uploads.BaseDir, lg)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
