package main

import (
	"log"
	"os"
	"strconv"

	"nagarseva-be/config"
	"nagarseva-be/controllers"
	"nagarseva-be/repositories"
	"nagarseva-be/routes"
	"nagarseva-be/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := config.ConnectDB()
	config.ConnectRedis()

	// Wire repositories: Mongo when reachable, in-memory otherwise.
	storageMode := "memory"
	var complaintRepo repositories.ComplaintRepository
	var identityRepo repositories.IdentityRepository
	if db != nil {
		mongoComplaints, err := repositories.NewMongoComplaintRepository(db.Collection("complaints"))
		if err != nil {
			log.Fatalf("Failed to prepare complaint collection: %v", err)
		}
		complaintRepo = mongoComplaints
		identityRepo = repositories.NewMongoIdentityRepository(db.Collection("identities"))
		storageMode = "mongo"
	} else {
		complaintRepo = repositories.NewMemoryComplaintRepository()
		identityRepo = repositories.NewMemoryIdentityRepository()
	}

	var otpStore repositories.OTPStore
	if config.RedisClient != nil {
		otpStore = repositories.NewRedisOTPStore(config.RedisClient)
	} else {
		otpStore = repositories.NewMemoryOTPStore()
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	vision := services.NewOpenAIVisionClassifier()
	intakeService := services.NewIntakeService(complaintRepo, vision, uploadDir)
	complaintService := services.NewComplaintService(complaintRepo, uploadDir)
	otpService := services.NewOTPService(identityRepo, otpStore, services.LogNotifier{})

	otpSendLimit := 5
	if raw := os.Getenv("OTP_SEND_LIMIT_PER_HOUR"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			otpSendLimit = parsed
		}
	}

	r := gin.Default()
	r.Use(cors.Default())
	r.Static("/uploads", uploadDir)

	routes.ComplaintRoutes(r, controllers.NewComplaintController(intakeService, complaintService))
	routes.AuthRoutes(r, controllers.NewAuthController(otpService), otpSendLimit)

	health := controllers.NewHealthController(storageMode)
	r.GET("/api/health", health.Health)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on :%s (storage: %s)", port, storageMode)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
