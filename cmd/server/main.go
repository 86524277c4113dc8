package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/nmaslov/taskcrew/internal/config"
	"github.com/nmaslov/taskcrew/internal/database"
	"github.com/nmaslov/taskcrew/internal/handlers"
	"github.com/nmaslov/taskcrew/internal/middleware"
	"github.com/nmaslov/taskcrew/internal/repository"
	"github.com/nmaslov/taskcrew/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(db); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo)
	tokenService, err := services.NewTokenService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}
	userService := services.NewUserService(userRepo, authService)
	taskService := services.NewTaskService(taskRepo, userRepo)

	// Initialize handlers
	loginHandler := handlers.NewLoginHandler(authService, tokenService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)

	requireAuth := middleware.RequireAuth(tokenService, userRepo)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task management API is running",
		})
	})

	// Login routes (public)
	login := r.Group("/login")
	{
		login.POST("/token", loginHandler.Token)
	}

	// User routes (registration is public, the rest require a token)
	user := r.Group("/user")
	{
		user.POST("/", userHandler.CreateUser)
		user.GET("/", requireAuth, userHandler.GetUser)
		user.PATCH("/", requireAuth, userHandler.UpdateUser)
		user.DELETE("/", requireAuth, userHandler.DeleteUser)
	}

	// Task routes (protected)
	task := r.Group("/task")
	task.Use(requireAuth)
	{
		task.POST("/", taskHandler.CreateTask)
		task.GET("/", taskHandler.GetTask)
		task.PATCH("/", taskHandler.UpdateTask)
		task.PATCH("/status", taskHandler.UpdateTaskStatus)
		task.DELETE("/", taskHandler.DeleteTask)
		task.POST("/restore", taskHandler.RestoreTask)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
