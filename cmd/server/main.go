package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/bankd/internal/server"
	"github.com/dmitrijs2005/bankd/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {

	// .env is for local development; in production env vars are set directly.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
