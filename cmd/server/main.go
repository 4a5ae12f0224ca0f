package main

import (
	"context"
	"log"

	"github.com/akshatj27/signspeak/internal/server"
	"github.com/akshatj27/signspeak/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
