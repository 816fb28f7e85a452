package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/brightclass/brightclass-backend/internal/app"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	application, err := app.New()
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}
	defer application.Close()

	if err := application.Run(); err != nil {
		application.Log.Fatal("server exited", "error", err)
	}
}
