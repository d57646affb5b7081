package main

import (
	"context"
	"fmt"
	"log"

	corebootstrap "github.com/NogiBatia/BOT2/core/bootstrap"
	corecmd "github.com/NogiBatia/BOT2/core/cmd"
	"github.com/NogiBatia/BOT2/internal/bot"
	"github.com/NogiBatia/BOT2/internal/config"
	"github.com/NogiBatia/BOT2/internal/seed"
	"github.com/NogiBatia/BOT2/internal/store"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return config.Load(path)
		},
		Bootstrap: bootstrapApp,
	})
	if err != nil {
		log.Fatalf("bot exited with error: %v", err)
	}
}

func bootstrapApp(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*config.Config)
	if !ok {
		return nil, fmt.Errorf("unexpected config type %T", carrier)
	}

	res, err := corebootstrap.Run(corebootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	st := store.NewSQLStore(res.DB)
	if err := seed.Run(context.Background(), st, seed.PrimaryAdmin(cfg.Telegram.AdminID)); err != nil {
		return nil, err
	}

	return bot.New(cfg.CoreConfig(), st), nil
}
