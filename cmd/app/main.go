package main

import (
	"flag"
	"log"
	"os"

	"FinDoc/internal/di"
	"FinDoc/pkg/config"

	"github.com/joho/godotenv"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	envPath := flag.String("env", ".env", "dotenv file path")
	flag.Parse()

	// .env is optional; real environment variables win.
	if err := godotenv.Load(*envPath); err != nil && !os.IsNotExist(err) {
		log.Printf("dotenv: %v", err)
	}

	path := *configPath
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("config %s not found, using defaults", path)
		path = ""
	}

	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
