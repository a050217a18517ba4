package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/cp-portal/internal/application/activity"
	"github.com/cp-portal/internal/config"
	"github.com/cp-portal/internal/infrastructure/codeforces"
	"github.com/cp-portal/internal/infrastructure/dynamo"
	jwtinfra "github.com/cp-portal/internal/infrastructure/jwt"
	kafkainfra "github.com/cp-portal/internal/infrastructure/kafka"
	"github.com/cp-portal/internal/infrastructure/llm"
	s3infra "github.com/cp-portal/internal/infrastructure/s3"
	"github.com/cp-portal/internal/infrastructure/smtp"
	snsinfra "github.com/cp-portal/internal/infrastructure/sns"
	transporthttp "github.com/cp-portal/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsCfg, err := dynamo.LoadAWSConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("aws config: %v", err)
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(awsCfg, cfg)
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}

	s3Store := s3infra.NewStore(s3infra.NewClient(awsCfg, cfg), cfg.S3BucketName)

	publisher, closePublisher := newActivityPublisher(awsCfg, cfg)
	defer closePublisher()

	tables := cfg.DynamoTables
	accounts := dynamo.NewAccountRepo(dynamoClient, tables.Accounts, tables.AccountEmails)
	deps := &transporthttp.Deps{
		Accounts: accounts,
		Links:    dynamo.NewLinkRepo(dynamoClient, tables.ExternalAccounts, tables.Accounts),
		Ratings:  dynamo.NewRatingRepo(dynamoClient, tables.RatingHistory, tables.Accounts),
		Events:   dynamo.NewEventRepo(dynamoClient, tables.Events),
		Info:     dynamo.NewInfoRepo(dynamoClient, tables.Info),
		Objects:  s3Store,
		Mailer:   smtp.NewMailer(cfg),
		Activity: publisher,
		Tokens:   jwtProvider,
		Profiles: codeforces.NewClient(cfg.CodeforcesBaseURL, cfg.CodeforcesInterval),
		Model:    llm.NewClient(cfg),

		Readiness: accounts,
	}

	router := transporthttp.NewRouter(ctx, cfg, deps)

	// WriteTimeout is left unset: chat replies stream for as long as the model talks.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// newActivityPublisher selects the activity backend from cfg. The returned
// func releases any connections it holds.
func newActivityPublisher(awsCfg aws.Config, cfg *config.Config) (activity.Publisher, func()) {
	switch cfg.ActivityBackend {
	case "sns":
		if cfg.SNSTopicARN == "" {
			log.Println("WARN: ACTIVITY_BACKEND=sns without SNS_TOPIC_ARN, activity events disabled")
			return activity.Noop{}, func() {}
		}
		return snsinfra.NewPublisher(snsinfra.NewClient(awsCfg, cfg), cfg.SNSTopicARN), func() {}
	case "kafka":
		if len(cfg.KafkaBrokers) == 0 {
			log.Println("WARN: ACTIVITY_BACKEND=kafka without KAFKA_BROKERS, activity events disabled")
			return activity.Noop{}, func() {}
		}
		p := kafkainfra.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		return p, func() {
			if err := p.Close(); err != nil {
				slog.Warn("failed to close kafka writer", "err", err)
			}
		}
	default:
		return activity.Noop{}, func() {}
	}
}
