package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/app"
)

// setupLogger пишет логи в stderr, чтобы они не смешивались с диалогом в stdout.
func setupLogger(lookup envLookup) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.WarnLevel)

	if raw, ok := lookup(envLogLevel); ok && raw != "" {
		level, err := log.ParseLevel(raw)
		if err != nil {
			log.WithError(err).Warnf("invalid %s, keeping %s", envLogLevel, log.GetLevel())
			return
		}
		log.SetLevel(level)
	}
}

func main() {
	setupLogger(os.LookupEnv)

	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	for _, w := range warnings {
		log.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"storage": cfg.StorageDriver,
		"events":  cfg.EventsDriver,
	}).Info("запускаем shop")

	if err := app.Run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}
}
