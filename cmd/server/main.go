package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FbcGa/sparkTasks-backend/internal/auth"
	"github.com/FbcGa/sparkTasks-backend/internal/config"
	"github.com/FbcGa/sparkTasks-backend/internal/database"
	"github.com/FbcGa/sparkTasks-backend/internal/handlers"
	"github.com/FbcGa/sparkTasks-backend/internal/middleware"
	"github.com/FbcGa/sparkTasks-backend/internal/repository"
	"github.com/FbcGa/sparkTasks-backend/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Token issuer for bearer auth
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	listRepo := repository.NewListRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, tokens)
	listService := services.NewListService(listRepo)
	taskService := services.NewTaskService(taskRepo, listRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, listService)
	listHandler := handlers.NewListHandler(listService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()

	// Greeting endpoint
	hello := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello! I'm a message from the backend",
		})
	}
	r.GET("/hello", hello)
	r.POST("/hello", hello)

	// Auth routes (public)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// Board routes (protected)
	board := r.Group("")
	board.Use(middleware.RequireAuth(tokens))
	{
		board.POST("/list", listHandler.CreateList)
		board.GET("/list", listHandler.GetAllLists)
		board.DELETE("/list/delete", listHandler.DeleteList)
		board.PUT("/list/change", listHandler.ChangeListTitle)
		board.PUT("/list/reorder", listHandler.ReorderLists)

		board.POST("/task", taskHandler.CreateTask)
		board.DELETE("/task/delete", taskHandler.DeleteTask)
		board.PUT("/task/change", taskHandler.ChangeTaskText)
		board.PUT("/tasks/reorder", taskHandler.ReorderTasks)
		board.PUT("/task/move", taskHandler.MoveTask)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
