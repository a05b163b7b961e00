package main

import (
	"context"                         // context package is needed for Redis operations
	"log"                             // log package is needed for logging
	"obra_system/internal/api"        // Custom package for API handlers
	"obra_system/internal/cep"        // Custom package for postal code lookup
	"obra_system/internal/config"     // Custom package for configuration
	"obra_system/internal/directory"  // Custom package for the supplier directory
	"obra_system/internal/middleware" // Custom package for middleware
	"obra_system/internal/storage"    // Custom package for object storage

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Setup object storage for task photos and avatars
	store, err := storage.NewDisk(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		logrus.Fatalf("failed to prepare upload dir: %v", err)
	}

	// Load the static supplier directory
	dir, err := directory.Load(cfg.DirectoryCSV)
	if err != nil {
		logrus.Fatalf("failed to load supplier directory: %v", err)
	}
	logrus.Infof("supplier directory loaded with %d entries", dir.Len())

	// Postal code lookup client
	lookup := cep.NewClient(cfg.ViaCEPBaseURL)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Serve uploaded objects as static files
	r.Static(cfg.UploadBaseURL, cfg.UploadDir)

	// Auth routes
	r.POST("/auth/register", api.RegisterHandler(db))          // Registration endpoint
	r.POST("/auth/login", api.LoginHandler(db, cfg.JWTSecret)) // Login endpoint

	// Everything below requires a valid JWT
	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	// Profile routes
	auth.GET("/profile", api.GetProfileHandler(db))                  // Get profile endpoint
	auth.PUT("/profile", api.UpdateProfileHandler(db))               // Update display name endpoint
	auth.POST("/profile/avatar", api.UploadAvatarHandler(db, store)) // Avatar upload endpoint
	auth.PUT("/profile/email", api.UpdateEmailHandler(db))           // Email change endpoint
	auth.PUT("/profile/password", api.UpdatePasswordHandler(db))     // Password change endpoint

	// Customer registry routes
	auth.GET("/customers", api.ListCustomersHandler(db))
	auth.POST("/customers", api.CreateCustomerHandler(db, lookup))
	auth.PUT("/customers/:id", api.UpdateCustomerHandler(db, lookup))
	auth.DELETE("/customers/:id", api.DeleteCustomerHandler(db))

	// Supplier registry routes
	auth.GET("/suppliers", api.ListSuppliersHandler(db))
	auth.POST("/suppliers", api.CreateSupplierHandler(db, lookup))
	auth.PUT("/suppliers/:id", api.UpdateSupplierHandler(db, lookup))
	auth.DELETE("/suppliers/:id", api.DeleteSupplierHandler(db))

	// Employee registry routes
	auth.GET("/employees", api.ListEmployeesHandler(db))
	auth.POST("/employees", api.CreateEmployeeHandler(db, lookup))
	auth.PUT("/employees/:id", api.UpdateEmployeeHandler(db, lookup))
	auth.DELETE("/employees/:id", api.DeleteEmployeeHandler(db))

	// Project routes
	auth.GET("/projects", api.ListProjectsHandler(db))
	auth.POST("/projects", api.CreateProjectHandler(db, redisClient))
	auth.GET("/projects/:id", api.GetProjectHandler(db))
	auth.PUT("/projects/:id", api.UpdateProjectHandler(db, redisClient))
	auth.DELETE("/projects/:id", api.DeleteProjectHandler(db, redisClient))

	// Task routes (kanban board of one project)
	auth.GET("/projects/:id/tasks", api.ListTasksHandler(db))
	auth.POST("/projects/:id/tasks", api.CreateTaskHandler(db, store))
	auth.PUT("/projects/:id/tasks/:taskID", api.UpdateTaskHandler(db, store))
	auth.DELETE("/projects/:id/tasks/:taskID", api.DeleteTaskHandler(db, store))

	// Finance ledger routes
	auth.GET("/transactions", api.ListTransactionsHandler(db, redisClient))
	auth.POST("/transactions", api.CreateTransactionHandler(db, redisClient))
	auth.PUT("/transactions/:id", api.UpdateTransactionHandler(db, redisClient))
	auth.POST("/transactions/:id/toggle", api.ToggleTransactionHandler(db, redisClient))
	auth.DELETE("/transactions/:id", api.DeleteTransactionHandler(db, redisClient))

	// Dashboard route
	auth.GET("/dashboard", api.DashboardHandler(db, redisClient))

	// Supplier directory routes
	auth.GET("/directory", api.DirectoryHandler(dir))
	auth.GET("/directory/facets", api.DirectoryFacetsHandler(dir))

	// Postal code lookup route
	auth.GET("/address/:cep", api.AddressLookupHandler(lookup))

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
