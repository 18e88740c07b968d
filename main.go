package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
		"REDIS_URL",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	// Initialize JWT
	utils.InitJWT()
	// Initialize MongoDB connection
	utils.InitMongoClient()
}

func setupRouter(deps *appDeps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(2 << 20)) // 2 MiB

	router.GET("/health", func(c *gin.Context) {
		handler.HealthHandler(c, utils.MongoClient, deps.clock)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", func(c *gin.Context) {
				handler.RegistrationHandler(c, deps.usersService)
			})
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, deps.usersService, deps.usersRepo, deps.manager)
			})
			auth.POST("/refresh", func(c *gin.Context) {
				handler.RefreshTokenHandler(c, deps.usersRepo)
			})
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		auth := protected.Group("/auth")
		{
			auth.POST("/logout", func(c *gin.Context) {
				handler.LogoutHandler(c, deps.manager)
			})
		}

		user := protected.Group("/user")
		{
			user.GET("/profile", func(c *gin.Context) {
				handler.GetProfileHandler(c, deps.usersService)
			})
			user.PUT("/profile", func(c *gin.Context) {
				handler.UpdateProfileHandler(c, deps.usersService)
			})
			user.PUT("/settings", func(c *gin.Context) {
				handler.UpdateSettingsHandler(c, deps.usersService)
			})
			user.DELETE("/data", func(c *gin.Context) {
				handler.DeleteAccountDataHandler(c, deps.usersService)
			})
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("/", func(c *gin.Context) {
				handler.GetTasksHandler(c, deps.tasksService, deps.clock)
			})
			tasks.POST("/", func(c *gin.Context) {
				handler.CreateTaskHandler(c, deps.tasksService)
			})
			tasks.PUT("/:id", func(c *gin.Context) {
				handler.UpdateTaskHandler(c, deps.tasksService)
			})
			tasks.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteTaskHandler(c, deps.tasksService)
			})
			tasks.POST("/:id/complete", func(c *gin.Context) {
				handler.MarkTaskCompleteHandler(c, deps.tasksService)
			})
			tasks.GET("/:id/proofs", func(c *gin.Context) {
				handler.GetTaskProofsHandler(c, deps.tasksService)
			})
		}

		challenges := protected.Group("/challenges")
		{
			challenges.GET("/", func(c *gin.Context) {
				handler.GetChallengesHandler(c, deps.challengesService)
			})
			challenges.POST("/", func(c *gin.Context) {
				handler.CreateChallengeHandler(c, deps.challengesService)
			})
			challenges.POST("/:id/mark", func(c *gin.Context) {
				handler.MarkChallengeTodayHandler(c, deps.challengesService)
			})
			challenges.POST("/:id/rescue", func(c *gin.Context) {
				handler.UseChallengeRescueHandler(c, deps.challengesService)
			})
			challenges.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteChallengeHandler(c, deps.challengesService)
			})
		}

		journal := protected.Group("/journal")
		{
			journal.GET("/", func(c *gin.Context) {
				handler.GetJournalHandler(c, deps.journalService)
			})
			journal.POST("/", func(c *gin.Context) {
				handler.CreateJournalEntryHandler(c, deps.journalService)
			})
			journal.PUT("/:id", func(c *gin.Context) {
				handler.UpdateJournalEntryHandler(c, deps.journalService)
			})
			journal.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteJournalEntryHandler(c, deps.journalService)
			})
		}

		todos := protected.Group("/todos")
		{
			todos.GET("/", func(c *gin.Context) {
				handler.GetTodosHandler(c, deps.todosService)
			})
			todos.POST("/", func(c *gin.Context) {
				handler.CreateTodoHandler(c, deps.todosService)
			})
			todos.POST("/:id/toggle", func(c *gin.Context) {
				handler.ToggleTodoHandler(c, deps.todosService)
			})
			todos.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteTodoHandler(c, deps.todosService)
			})
		}

		expenses := protected.Group("/expenses")
		{
			expenses.GET("/", func(c *gin.Context) {
				handler.GetExpensesHandler(c, deps.expensesService)
			})
			expenses.POST("/", func(c *gin.Context) {
				handler.CreateExpenseHandler(c, deps.expensesService)
			})
			expenses.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteExpenseHandler(c, deps.expensesService)
			})
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", func(c *gin.Context) {
				handler.GetActiveSessionsHandler(c, deps.sessionsService)
			})
			sessions.POST("/logout-all", func(c *gin.Context) {
				handler.LogoutAllSessionsHandler(c, deps.sessionsService)
			})
		}

		protected.GET("/insights", func(c *gin.Context) {
			handler.GetInsightsHandler(c, deps.insightsService)
		})
		protected.GET("/notifications", func(c *gin.Context) {
			handler.GetNotificationsHandler(c, deps.manager)
		})
	}

	return router
}

type appDeps struct {
	clock             *services.TrustedClock
	manager           *usecase.SpaceManager
	usersRepo         *repository.UsersRepo
	usersService      *usecase.UsersService
	tasksService      *usecase.TasksService
	challengesService *usecase.ChallengesService
	journalService    *usecase.JournalService
	todosService      *usecase.TodosService
	expensesService   *usecase.ExpensesService
	sessionsService   *usecase.SessionsService
	insightsService   *usecase.InsightsService
}

func buildDeps() *appDeps {
	dbConfig := config.LoadDatabaseConfig()
	redisConfig := config.LoadRedisConfig()
	clockConfig := config.LoadClockConfig()
	cryptoConfig := config.LoadCryptoConfig()

	db := utils.MongoClient.Database(dbConfig.DatabaseName)
	if err := repository.SetupIndexes(db); err != nil {
		log.Printf("index setup: %v", err)
	}

	clock := services.NewTrustedClock(clockConfig.OriginURL, clockConfig.TimeAPIURL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	clock.Resolve(ctx)
	cancel()
	if !clock.Resolved() {
		log.Println("trusted time unresolved at startup, using device time until a probe succeeds")
	}

	codec := services.NewFieldCodec(cryptoConfig.AppSecret)

	backup, err := repository.NewBackupStore(redisConfig.URL)
	if err != nil {
		log.Fatalf("Failed to connect backup store: %v", err)
	}

	blacklist, err := services.NewTokenBlacklist(redisConfig.URL)
	if err != nil {
		log.Fatalf("Failed to connect token blacklist: %v", err)
	}
	services.TokenBlacklist = blacklist

	store := repository.GetDocStore(utils.MongoClient, dbConfig.DatabaseName)
	manager := usecase.NewSpaceManager(store, codec, backup, clock)

	usersRepo := repository.GetUsersRepo(utils.MongoClient, dbConfig.DatabaseName)

	return &appDeps{
		clock:             clock,
		manager:           manager,
		usersRepo:         usersRepo,
		usersService:      usecase.NewUsersService(usersRepo, codec, manager, backup, db, clock),
		tasksService:      usecase.NewTasksService(manager, clock),
		challengesService: usecase.NewChallengesService(manager, clock),
		journalService:    usecase.NewJournalService(manager, clock),
		todosService:      usecase.NewTodosService(manager, clock),
		expensesService:   usecase.NewExpensesService(manager, clock),
		sessionsService:   usecase.NewSessionsService(manager),
		insightsService:   usecase.NewInsightsService(manager),
	}
}

func main() {
	deps := buildDeps()
	router := setupRouter(deps)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
