// @title SmartExam API
// @version 1.0
// @description Exam portal backend for question banks, multiple choice exams and their results.

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"smartexam_backend/internal/app"
	"smartexam_backend/internal/config"
	"smartexam_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer logger.Log.Sync()

	if err := application.Run(); err != nil {
		logger.Log.Error("Server stopped with error", zap.Error(err))
		logger.Log.Sync()
		log.Fatal(err)
	}
}
