package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/trustbot/internal/bot"
	"github.com/dmitrijs2005/trustbot/internal/bot/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := bot.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
