package main

import (
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/interview-radar/internal/chart"
	"github.com/fadilmartias/interview-radar/internal/config"
	"github.com/fadilmartias/interview-radar/internal/domain/fiber/handler"
	"github.com/fadilmartias/interview-radar/internal/errs"
	"github.com/fadilmartias/interview-radar/internal/metrics"
	"github.com/fadilmartias/interview-radar/internal/middleware"
	"github.com/fadilmartias/interview-radar/internal/service"
	"github.com/fadilmartias/interview-radar/internal/usecase"
	"github.com/fadilmartias/interview-radar/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	setupLogger(appConfig)

	m := metrics.New()
	app := newApp(appConfig, m)

	chartConfig := config.LoadChartConfig()
	format, err := chart.ParseFormat(chartConfig.Format)
	if err != nil {
		log.Warnf("%v, using png", err)
		format = chart.FormatPNG
	}
	uc := usecase.NewEvaluationUsecase(
		service.NewDefaultRegistry(),
		chart.NewRenderer(chartConfig),
		format,
		m,
	)
	handler.NewEvaluateHandler(uc, appConfig, config.LoadLimiterConfig()).RegisterRoutes(app)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			log.Debugf("Active goroutines: %d", runtime.NumGoroutine())
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.WithError(err).Error("shutdown failed")
		}
	}()

	log.Infof("Server running on %s", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(cfg *config.AppConfig) {
	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Invalid LOG_LEVEL %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func newApp(appConfig *config.AppConfig, m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appConfig.Name,
		BodyLimit:    appConfig.BodyLimit,
		ErrorHandler: errorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.Metrics(m))

	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	limits := config.LoadLimiterConfig()
	app.Use(middleware.RateLimiter(limits.GlobalMax, limits.GlobalWindow))
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	var e *fiber.Error
	if errors.As(err, &e) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    e.Code,
			Message: e.Message,
		}, err)
	}
	code := errs.CodeOf(err)
	if code == errs.SystemError {
		log.WithError(err).WithField("requestid", c.Locals("requestid")).Error("unhandled error")
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    code.Status,
		Message: code.Msg,
	}, err)
}
