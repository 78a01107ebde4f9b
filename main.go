package main

import (
	"context"
	"log"

	"bughub/config"
	"bughub/controllers"
	"bughub/database"
	"bughub/gcs"
	"bughub/routes"
	"bughub/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	database, err := db.Connect(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer database.Disconnect()
	log.Println("Connected to MongoDB")

	storage, err := gcs.New(context.Background(), cfg.GCSBucket, cfg.GoogleCredentials)
	if err != nil {
		log.Fatal("Failed to connect to Google Cloud Storage: ", err)
	}
	defer storage.Close()
	log.Printf("Bucket %s ready", cfg.GCSBucket)

	mailer := utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailFrom, cfg.EmailPass, cfg.EmailTo)
	if !mailer.Enabled() {
		log.Println("Mailer not configured, report notifications disabled")
	}

	auth := controllers.NewAuthController(database.Users(), []byte(cfg.JWTSecret))
	reports := controllers.NewReportController(database.Reports(), storage, mailer)

	r := gin.Default()
	routes.Setup(r, cfg, auth, reports)

	log.Println("Starting server on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
