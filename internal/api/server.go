// @title Scholarship Management API
// @version 1.0
// @description Catalog, applications, payments and reviews for the scholarship portal.
// @host localhost:5000
// @BasePath /
// @schemes http
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer <JWT>

package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SundayYogurt/scholarship_service/config"
	"github.com/SundayYogurt/scholarship_service/infra/queue"
	"github.com/SundayYogurt/scholarship_service/internal/api/rest"
	"github.com/SundayYogurt/scholarship_service/internal/api/rest/handlers"
	"github.com/SundayYogurt/scholarship_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/scholarship_service/internal/clients/stripe"
	"github.com/SundayYogurt/scholarship_service/internal/helper"
	"github.com/SundayYogurt/scholarship_service/internal/interfaces"
	"github.com/SundayYogurt/scholarship_service/internal/metrics"
	"github.com/SundayYogurt/scholarship_service/internal/repository"
	"github.com/SundayYogurt/scholarship_service/internal/repository/mongostore"
	"github.com/SundayYogurt/scholarship_service/internal/services"
	"github.com/SundayYogurt/scholarship_service/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deps is everything the HTTP app needs. Optional collaborators may be nil.
type Deps struct {
	Config   *config.Config
	Logger   *slog.Logger
	Store    *repository.Store
	Producer interfaces.ProducerHandler
	Payments interfaces.PaymentProvider
	Uploader interfaces.Uploader
}

// NewApp wires repositories, services and handlers into a fiber app.
func NewApp(d Deps) *fiber.App {
	cfg := d.Config
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		AppName:               "scholarship-api",
		DisableStartupMessage: cfg.IsProd(),
		ErrorHandler:          rest.ErrorHandler(logger),
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		BodyLimit:             6 * 1024 * 1024,
		UnescapePath:          true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.Observe(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	RegisterSwagger(app)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Service ----------
	userSvc := services.NewUserService(d.Store.Users, d.Producer, logger)
	scholarshipSvc := services.NewScholarshipService(d.Store.Scholarships)
	submissionSvc := services.NewSubmissionService(d.Store.Submissions, d.Producer, logger)
	paymentSvc := services.NewPaymentService(d.Store.Payments, d.Payments, cfg.PaymentCurrency, d.Producer, logger)
	reviewSvc := services.NewReviewService(d.Store.Reviews)

	// ---------- Handler ----------
	h := rest.Handlers{
		Health:      handlers.NewHealthHandler(d.Store),
		User:        handlers.NewUserHandler(userSvc, authHelper),
		Scholarship: handlers.NewScholarshipHandler(scholarshipSvc),
		Submission:  handlers.NewSubmissionHandler(submissionSvc, userSvc),
		Payment:     handlers.NewPaymentHandler(paymentSvc, userSvc),
		Review:      handlers.NewReviewHandler(reviewSvc, userSvc),
		Upload:      handlers.NewUploadHandler(d.Uploader, logger),
	}
	rest.Register(app, authHelper, userSvc, rest.Routes(h))

	return app
}

// OpenStore connects to the store DATABASE_URL names and prepares it.
func OpenStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	kind, err := cfg.Store()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.DatabasePingTimeout)
	defer cancel()

	switch kind {
	case config.StoreMongo:
		return mongostore.Open(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	case config.StorePostgres, config.StoreSQLite:
		db, err := openGorm(kind, cfg)
		if err != nil {
			return nil, err
		}
		store := repository.NewGormStore(db)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close(context.Background())
			return nil, fmt.Errorf("database ping: %w", err)
		}
		if err := repository.Migrate(ctx, db); err != nil {
			_ = store.Close(context.Background())
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported store %q", kind)
	}
}

func openGorm(kind config.StoreKind, cfg *config.Config) (*gorm.DB, error) {
	if kind == config.StoreSQLite {
		return repository.OpenSQLite(cfg.SQLitePath())
	}
	return repository.OpenPostgres(cfg.DatabaseURL)
}

// StartServer runs the API until ctx is cancelled, then drains requests and
// releases the store and the broker connection.
func StartServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("database connected", slog.String("store", store.Kind))
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Warn("database close error", slog.Any("error", err))
			return
		}
		logger.Info("database connection closed")
	}()

	// ---------- Infra ----------
	producer := queue.NewProducer(queue.ProducerConfig{
		Broker:   cfg.KafkaBroker,
		Topic:    cfg.KafkaTopic,
		Username: cfg.KafkaUsername,
		Password: cfg.KafkaPassword,
	}, logger)
	defer producer.Close()
	logger.Info("kafka", slog.String("broker", cfg.KafkaBroker), slog.String("topic", cfg.KafkaTopic), slog.Bool("enabled", producer != nil))

	deps := Deps{Config: cfg, Logger: logger, Store: store}
	if producer != nil {
		deps.Producer = producer
	}
	if sc := stripe.New(cfg.StripeSecretKey); sc != nil {
		deps.Payments = sc
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, payment intents disabled")
	}

	cld, err := cloudinary.New(cfg.CloudinaryUrl)
	if err != nil {
		return fmt.Errorf("cloudinary init error: %w", err)
	}
	if cld != nil {
		deps.Uploader = cloudinary.NewCloudinaryUploader(cld)
	}

	app := NewApp(deps)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("service listening",
			slog.String("environment", cfg.Environment),
			slog.String("address", cfg.Addr()))
		if err := app.Listen(cfg.Addr()); err != nil {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	logger.Info("shutting down HTTP server")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logger.Warn("HTTP server shutdown error", slog.Any("error", err))
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}
	logger.Info("HTTP server shutdown complete")
	return nil
}
