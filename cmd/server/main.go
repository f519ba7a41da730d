package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcustomer "github.com/stackfood/customers/internal/application/customer"
	"github.com/stackfood/customers/internal/domain/shared"
	"github.com/stackfood/customers/internal/infrastructure/config"
	"github.com/stackfood/customers/internal/infrastructure/event"
	"github.com/stackfood/customers/internal/infrastructure/identity"
	"github.com/stackfood/customers/internal/infrastructure/logger"
	"github.com/stackfood/customers/internal/infrastructure/persistence"
	"github.com/stackfood/customers/internal/interfaces/http/handler"
	"github.com/stackfood/customers/internal/interfaces/http/middleware"
	"github.com/stackfood/customers/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting customer service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()
	log.Info("database connected")

	identityGateway := buildIdentityGateway(cfg, log)
	publisher := buildEventPublisher(cfg, log)

	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	customerService := appcustomer.NewCustomerService(customerRepo, identityGateway, publisher, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewCustomerHandler(customerService)).
		Register(handler.NewSystemHandler(db, cfg.App.Name, version)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited gracefully")
}

// buildIdentityGateway wires the Cognito gateway when a user pool is
// configured, and falls back to the in-memory stub for local development.
func buildIdentityGateway(cfg *config.Config, log *zap.Logger) appcustomer.IdentityGateway {
	if cfg.Cognito.UserPoolID == "" || cfg.Cognito.ClientID == "" {
		log.Warn("cognito not configured, using in-memory identity stub")
		return identity.NewStubGateway(log)
	}

	awsCfg := mustAWSConfig(cfg, log)
	client := cognitoidentityprovider.NewFromConfig(awsCfg, func(o *cognitoidentityprovider.Options) {
		if cfg.AWS.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
		}
	})
	log.Info("cognito identity gateway configured",
		zap.String("user_pool_id", cfg.Cognito.UserPoolID),
		zap.String("region", cfg.AWS.Region),
	)
	return identity.NewCognitoGateway(client, cfg.Cognito, log)
}

// buildEventPublisher wires the SNS publisher when event publishing is
// enabled, and a no-op publisher otherwise.
func buildEventPublisher(cfg *config.Config, log *zap.Logger) shared.EventPublisher {
	if !cfg.Events.Enabled {
		log.Info("event publishing disabled")
		return event.NewNoopPublisher()
	}

	awsCfg := mustAWSConfig(cfg, log)
	client := sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		if cfg.AWS.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
		}
	})
	log.Info("sns event publisher configured", zap.String("topic_arn", cfg.Events.TopicARN))
	return event.NewSNSPublisher(client, cfg.Events.TopicARN, log)
}

// mustAWSConfig loads the shared AWS client configuration. Static
// credentials from config take precedence over the default provider
// chain so local emulators need no real account.
func mustAWSConfig(cfg *config.Config, log *zap.Logger) aws.Config {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWS.Region),
	}
	if cfg.AWS.AccessKeyID != "" && cfg.AWS.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Fatal("failed to load aws configuration", zap.Error(err))
	}
	return awsCfg
}
