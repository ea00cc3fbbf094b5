package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"driver-apply/pkg/api"
	"driver-apply/pkg/clients/kana"
	"driver-apply/pkg/clients/microcms"
	"driver-apply/pkg/clients/notify"
	"driver-apply/pkg/clients/sheets"
	"driver-apply/pkg/config"
	"driver-apply/pkg/middleware"
	"driver-apply/pkg/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize API clients
	notifyClient := notify.NewClient()
	sheetsClient := sheets.NewClient()
	cmsClient := microcms.NewClient(cfg.MicroCMSServiceDomain, cfg.MicroCMSAPIKey)
	kanaClient := kana.NewClient(cfg.KanaAPIAppID)

	// Initialize services
	submissionService := services.NewSubmissionService(notifyClient, sheetsClient, cfg)
	jobCountService := services.NewJobCountService(cmsClient)
	locationService := services.NewLocationService(cmsClient, cfg.MicroCMSServiceDomain == "")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create a new Gin router with default middleware
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Initialize handlers
	api.RegisterValidations()
	handlers := api.NewHandlers(submissionService, jobCountService, locationService, kanaClient, cfg.Environment)

	// Register routes
	router.POST("/api/applicants", handlers.HandleApplicantSubmission)
	router.POST("/api/coupang/applicants", handlers.HandleCoupangSubmission)
	router.POST("/api/kana", handlers.HandleKanaConvert)
	router.GET("/api/jobs-count", handlers.HandleJobsCount)
	router.GET("/api/location/prefectures", handlers.HandlePrefectures)
	router.GET("/api/location/municipalities", handlers.HandleMunicipalities)
	router.GET("/health", handlers.HealthCheck)

	// Get port from environment or default to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start the server
	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
