package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	api "github.com/rpupo63/portfolio-backend/api"
	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/content"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/locale"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rpupo63/portfolio-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	setupLogging(c)

	ctx := context.Background()
	if path := config.GetString(c, "SSM_PARAMETER_PATH", ""); path != "" {
		if err := config.LoadSSM(ctx, c, path); err != nil {
			log.Fatal().Str("error", fullError(errs.NewConfigError("SSM_PARAMETER_PATH", err))).Str("path", path).Msg("Error loading SSM parameters")
		}
		log.Info().Str("path", path).Msg("Loaded configuration from SSM")
	}

	db, err := openDatabase(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if strings.ToLower(config.GetString(c, "GENERATE_MODELS", "")) == "true" {
		fmt.Println("Generating models and query helpers...")
		models.GenerateModels(db)
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		fmt.Println("Generating column mismatch report...")
		models.GenerateColumnMismatchReportStandalone(db)
		return
	}

	if err := models.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Error migrating database")
	}

	currentDB := database.New(db)

	if email := config.GetString(c, "ADMIN_EMAIL", ""); email != "" {
		admin, err := currentDB.UserRepo().EnsureAdmin(ctx,
			config.GetString(c, "ADMIN_NAME", "Admin"), email, config.GetString(c, "ADMIN_PASSWORD", ""))
		if err != nil {
			log.Fatal().Err(err).Msg("Error ensuring admin user")
		}
		log.Info().Str("email", admin.Email).Msg("Admin user ready")
	}

	store, err := openStorage(ctx, c)
	if err != nil {
		log.Fatal().Str("error", fullError(err)).Msg("Error configuring storage")
	}

	siteCache, err := cache.New(ctx, cache.Config{
		Enabled:  config.GetBool(c, "CACHE_ENABLED", false),
		Addr:     config.GetString(c, "REDIS_ADDR", "localhost:6379"),
		Password: config.GetString(c, "REDIS_PASSWORD", ""),
		DB:       config.GetInt(c, "REDIS_DB", 0),
		Prefix:   config.GetString(c, "CACHE_PREFIX", "portfolio"),
		TTL:      config.GetDuration(c, "CACHE_TTL", 5*time.Minute),
	})
	if err != nil {
		log.Warn().Err(err).Msg("Running without cache")
		siteCache = nil
	}
	defer siteCache.Close()

	var notifier content.Notifier
	if n := services.NewContactNotifierFromConfig(c); n != nil {
		notifier = n
	} else {
		log.Info().Msg("No contact notification channel configured")
	}

	catalog, err := locale.Embedded()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading translations")
	}
	resolver := locale.NewResolver(
		config.GetString(c, "DEFAULT_LOCALE", locale.DefaultLocale),
		config.GetList(c, "SUPPORTED_LOCALES", catalog.Locales()),
	)

	maxUpload := int64(config.GetInt(c, "MAX_UPLOAD_KB", int(storage.DefaultMaxImageBytes/1024))) * 1024
	site := content.New(currentDB, store, content.Options{
		MaxUploadBytes: maxUpload,
		Cache:          siteCache,
		Notifier:       notifier,
	})

	errChannel := make(chan error)

	server, err := api.NewServer(api.Deps{
		Database:       currentDB,
		Content:        site,
		Storage:        store,
		Catalog:        catalog,
		Locales:        resolver,
		Cache:          siteCache,
		MaxUploadBytes: maxUpload,
	}, c)
	if err != nil {
		log.Fatal().Str("error", fullError(err)).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
	site.Inbox.Wait()
}

func setupLogging(c map[string]string) {
	level, err := zerolog.ParseLevel(config.GetString(c, "LOG_LEVEL", "info"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(c, "LOG_FORMAT", "console") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func openDatabase(c map[string]string) (*gorm.DB, error) {
	connStr := config.GetString(c, "DATABASE_URL", "")
	if connStr == "" {
		connStr = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			config.GetString(c, "DB_HOST", "localhost"),
			config.GetString(c, "DB_USER", "postgres"),
			config.GetString(c, "DB_PASSWORD", ""),
			config.GetString(c, "DB_NAME", "portfolio"),
			config.GetString(c, "DB_PORT", "5432"),
			config.GetString(c, "DB_SSLMODE", "disable"),
		)
	}

	newLogger := logger.New(
		stdlog.New(log.Logger, "", 0),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:    false,
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if replicas := config.GetList(c, "DB_REPLICA_URLS", nil); len(replicas) > 0 {
		dialectors := make([]gorm.Dialector, 0, len(replicas))
		for _, dsn := range replicas {
			dialectors = append(dialectors, postgres.Open(dsn))
		}
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: dialectors,
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replicas: %w", err)
		}
		log.Info().Int("replicas", len(dialectors)).Msg("Read replicas registered")
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}
	return db, nil
}

func openStorage(ctx context.Context, c map[string]string) (storage.Storage, error) {
	switch driver := config.GetString(c, "STORAGE_DRIVER", "local"); driver {
	case "local":
		return storage.NewLocal(
			config.GetString(c, "STORAGE_ROOT", "./public/storage"),
			config.GetString(c, "STORAGE_PUBLIC_URL", "/storage"),
		)
	case "s3":
		return storage.NewS3(ctx, storage.S3Config{
			Bucket:    config.GetString(c, "S3_BUCKET", ""),
			Region:    config.GetString(c, "S3_REGION", "us-east-1"),
			Endpoint:  config.GetString(c, "S3_ENDPOINT", ""),
			AccessKey: config.GetString(c, "S3_ACCESS_KEY", ""),
			SecretKey: config.GetString(c, "S3_SECRET_KEY", ""),
			PathStyle: config.GetBool(c, "S3_PATH_STYLE", false),
			PublicURL: config.GetString(c, "S3_PUBLIC_URL", ""),
		})
	default:
		return nil, errs.NewConfigError("STORAGE_DRIVER", fmt.Errorf("unsupported driver %q", driver))
	}
}

// fullError includes the cause chain of API errors, which Error() leaves out.
func fullError(err error) string {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.GetFullError()
	}
	return err.Error()
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
