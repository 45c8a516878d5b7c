package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/mansoorceksport/liftlog/internal/config"
	"github.com/mansoorceksport/liftlog/internal/handler"
	"github.com/mansoorceksport/liftlog/internal/middleware"
	"github.com/mansoorceksport/liftlog/internal/repository"
	"github.com/mansoorceksport/liftlog/internal/service"
	"github.com/mansoorceksport/liftlog/internal/telemetry"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config      *config.Config
	MongoDB     *mongo.Database
	RedisClient *redis.Client
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	cache := repository.NewRedisCacheRepository(deps.RedisClient)
	planRepo := repository.NewCachedPlanRepository(
		repository.NewMongoPlanRepository(deps.MongoDB),
		cache,
		deps.Config.Cache.PlanTTL,
	)
	sessionRepo := repository.NewMongoSessionRecordRepository(deps.MongoDB)
	prefsRepo := repository.NewMongoPreferencesRepository(deps.MongoDB)

	ghostService := service.NewGhostService(planRepo, sessionRepo)
	sessionService := service.NewSessionService(planRepo, sessionRepo)
	streakService := service.NewStreakService(prefsRepo)

	planHandler := handler.NewPlanHandler(planRepo)
	sessionHandler := handler.NewSessionHandler(sessionService)
	ghostHandler := handler.NewGhostHandler(ghostService)
	streakHandler := handler.NewStreakHandler(streakService)

	bodyLimit := int(deps.Config.Server.BodyLimitKB * 1024)
	if bodyLimit <= 0 {
		bodyLimit = fiber.DefaultBodyLimit
	}

	app := fiber.New(fiber.Config{
		AppName:      "liftlog API",
		BodyLimit:    bodyLimit,
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Correlation-ID",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	if deps.Config.OTEL.Enabled {
		app.Use(telemetry.FiberMiddleware())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "liftlog",
		})
	})

	v1 := app.Group("/v1")

	// ===========================================
	// USER API - /v1/me/*
	// ===========================================
	me := v1.Group("/me")
	me.Use(middleware.VerifyToken(deps.Config.JWT.Secret))
	me.Use(middleware.IdempotencyMiddleware(deps.RedisClient, deps.Config.Cache.IdempotencyTTL))

	mePlans := me.Group("/plans")
	mePlans.Get("/", planHandler.ListPlans)
	mePlans.Get("/:plan_id", planHandler.GetPlan)
	mePlans.Put("/:plan_id", planHandler.PutPlan)
	mePlans.Delete("/:plan_id", planHandler.DeletePlan)

	day := mePlans.Group("/:plan_id/weeks/:week_id/days/:day_id")
	day.Get("/ghosts", ghostHandler.DayGhosts)
	day.Get("/ghosts/resolve", ghostHandler.ResolveGhost)
	day.Post("/session/merge", sessionHandler.MergeSession)

	me.Post("/sessions", sessionHandler.SaveSession)

	meStreak := me.Group("/streak")
	meStreak.Get("/", streakHandler.GetStreak)
	meStreak.Put("/config", streakHandler.UpdateConfig)
	meStreak.Post("/complete", streakHandler.CompleteWorkout)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	logrus.WithError(err).WithField("status", code).Warn("unhandled request error")
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
