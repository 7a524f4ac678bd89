package main

import (
	"log"

	"github.com/sazonlab/campus-bff/internal/certificate"
	"github.com/sazonlab/campus-bff/internal/checkout"
	"github.com/sazonlab/campus-bff/internal/course"
	infra "github.com/sazonlab/campus-bff/internal/infrastructure"
	"github.com/sazonlab/campus-bff/internal/infrastructure/driver"
	"github.com/sazonlab/campus-bff/internal/infrastructure/logging"
	"github.com/sazonlab/campus-bff/internal/infrastructure/uuid"
	ihttp "github.com/sazonlab/campus-bff/internal/interfaces/http"
	"github.com/sazonlab/campus-bff/internal/progress"
	"github.com/sazonlab/campus-bff/internal/quiz"
	"github.com/sazonlab/campus-bff/internal/teachable"
	"go.uber.org/zap"
)

func main() {
	log.SetFlags(log.Lshortfile | log.Ldate | log.Ltime)
	option, err := infra.InitConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(&logging.Config{
		FilePath: option.Logging.FilePath,
		Level:    option.Logging.Level,
		AppID:    option.AppID,
		Env:      option.Env,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %s\n", err)
	}
	defer logger.Sync()

	rdb := driver.NewRedisClient(option.KVStore.Host, option.KVStore.Port, option.KVStore.Password)
	upstream := teachable.NewClient(&teachable.Config{
		BaseURL:    option.Upstream.BaseURL,
		APIKey:     option.Upstream.APIKey,
		Timeout:    option.Upstream.Timeout,
		RetryCount: option.Upstream.RetryCount,
	}, logger)
	logger.Debug("Create upstream course API client",
		zap.String("url.full", option.Upstream.BaseURL),
		zap.Duration("timeout", option.Upstream.Timeout),
	)

	CourseUseCase := course.NewCourseUseCase(upstream, option.Catalog.PlaceholderCount)

	sessions := progress.NewSessionManager()
	broker := progress.NewBroker()
	ProgressUseCase := progress.NewProgressUseCase(upstream, upstream, sessions, broker)

	QuizUseCase := quiz.NewQuizUseCase(upstream, ProgressUseCase)
	CertificateUseCase := certificate.NewCertificateUseCase(upstream, ProgressUseCase)

	IDGenerator := uuid.NewNanoIDGenerator(option.Security.IDLength)
	CheckoutUseCase := checkout.NewCheckoutUseCase(rdb, IDGenerator, option.Checkout.TTL)

	ihttp.Serve(rdb, upstream, option,
		CourseUseCase, ProgressUseCase, QuizUseCase, CertificateUseCase, CheckoutUseCase,
		broker, logger)
}
