package main

import (
	"context"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"line-kakeibo-bot/internal/clients/line"
	"line-kakeibo-bot/internal/clients/sheets"
	"line-kakeibo-bot/internal/config"
	"line-kakeibo-bot/internal/logger"
	"line-kakeibo-bot/internal/model/ledger"
	"line-kakeibo-bot/internal/model/messages"
	"line-kakeibo-bot/internal/model/storage"
	"line-kakeibo-bot/internal/server"
	"line-kakeibo-bot/internal/tracing"
)

func main() {
	logger.Info("Bot init - start")

	// .env is a development convenience; deployments set real env vars
	_ = godotenv.Load()

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	closer, err := tracing.Init(conf.App())
	if err != nil {
		logger.Fatal("failed to init tracing:", zap.Error(err))
	}
	defer closer.Close()

	db, err := storage.NewPostgresStorage(conf.Postgres())
	if err != nil {
		logger.Fatal("failed to init postgres:", zap.Error(err))
	}
	defer db.Close()

	sheetsClient, err := sheets.New(context.Background(), conf.Sheets())
	if err != nil {
		logger.Fatal("failed to init sheets:", zap.Error(err))
	}

	backends := ledger.NewSelector(db)
	backends.Route(
		conf.App().PrivilegedUserID(),
		ledger.NewSheetLedger(sheetsClient, conf.Sheets()),
	)

	dispatcher := messages.NewService(line.New(conf.Line()), backends)

	logger.Info("Bot init - end")

	srv := server.New(conf.Line(), conf.App(), dispatcher)
	if err = srv.Run(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
