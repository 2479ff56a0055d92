// @title QuizRoom API
// @version 1.0
// @description Timed quiz sessions with per-question countdowns, scoring, and leaderboards.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizroom/internal/adapter"
	"quizroom/internal/cache"
	"quizroom/internal/config"
	"quizroom/internal/database"
	"quizroom/internal/handler"
	"quizroom/internal/logger"
	"quizroom/internal/middleware"
	"quizroom/internal/notify"
	"quizroom/internal/repository"
	"quizroom/internal/service"
	"quizroom/internal/session"

	_ "quizroom/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger logs every HTTP request with its status and duration.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	quizRepository := repository.NewSQLXQuizRepository(db)
	attemptRepository := repository.NewSQLXAttemptRepository(db)
	userRepository := repository.NewSQLXUserRepository(db)

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Session infrastructure
	registry := session.NewRegistry()
	countdowns := session.CountdownsFromConfig(cfg.Session.Countdowns)
	hub := notify.NewHub()

	// Initialize services
	sessionService := service.NewSessionService(quizRepository, attemptRepository, registry, countdowns, hub, cacheAdapter)
	resultService := service.NewResultService(attemptRepository, quizRepository, cacheAdapter, cfg.Leaderboard.CacheTTL, cfg.Leaderboard.Limit)
	quizService := service.NewQuizService(quizRepository)
	authService := service.NewAuthService(userRepository, cfg.GoogleOAuth, cfg.JWT)
	userService := service.NewUserService(userRepository)

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(sessionService)
	quizHandler := handler.NewQuizHandler(quizService)
	resultHandler := handler.NewResultHandler(resultService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())
	app.Use(middleware.ErrorHandler())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// User routes
	userGroup := apiGroup.Group("/users", middleware.Protected(authService))
	userGroup.Get("/me", userHandler.GetMyProfile)
	userGroup.Put("/me", userHandler.UpdateMyProfile)

	// Quiz routes
	quizGroup := apiGroup.Group("/quizzes", middleware.Protected(authService))
	quizGroup.Get("/", quizHandler.ListQuizzes)
	quizGroup.Get("/mine", quizHandler.ListMyQuizzes)
	quizGroup.Get("/:id", quizHandler.GetQuiz)
	quizGroup.Get("/:id/leaderboard", resultHandler.GetLeaderboard)
	quizGroup.Get("/:id/attempts/latest", resultHandler.GetLatestAttempt)
	quizGroup.Get("/:id/attempts/best", resultHandler.GetBestAttempt)

	// Authoring routes (teacher role)
	quizGroup.Post("/", middleware.RequireTeacher(), quizHandler.CreateQuiz)
	quizGroup.Get("/:id/detail", middleware.RequireTeacher(), quizHandler.GetQuizDetail)
	quizGroup.Put("/:id", middleware.RequireTeacher(), quizHandler.UpdateQuiz)
	quizGroup.Delete("/:id", middleware.RequireTeacher(), quizHandler.DeleteQuiz)
	quizGroup.Post("/:id/questions", middleware.RequireTeacher(), quizHandler.AddQuestion)
	quizGroup.Delete("/:id/questions/:questionId", middleware.RequireTeacher(), quizHandler.RemoveQuestion)
	quizGroup.Get("/:id/results", middleware.RequireTeacher(), resultHandler.GetQuizResults)

	// Session routes
	sessionGroup := apiGroup.Group("/sessions", middleware.Protected(authService))
	sessionGroup.Post("/", sessionHandler.StartSession)
	sessionGroup.Get("/:id", sessionHandler.GetSession)
	sessionGroup.Post("/:id/answers", sessionHandler.RecordAnswer)
	sessionGroup.Post("/:id/next", sessionHandler.NextQuestion)
	sessionGroup.Post("/:id/previous", sessionHandler.PreviousQuestion)
	sessionGroup.Post("/:id/submit", sessionHandler.SubmitSession)
	sessionGroup.Delete("/:id", sessionHandler.AbandonSession)

	// Result routes
	attemptGroup := apiGroup.Group("/attempts", middleware.Protected(authService))
	attemptGroup.Get("/", resultHandler.GetMyAttempts)
	attemptGroup.Get("/:id", resultHandler.GetAttempt)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
