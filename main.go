package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/imasse-dev/browser-ios/internal/config"
	"github.com/imasse-dev/browser-ios/internal/decoder"
	delivery "github.com/imasse-dev/browser-ios/internal/delivery/http"
	"github.com/imasse-dev/browser-ios/internal/logger"
	"github.com/imasse-dev/browser-ios/internal/notify"
	"github.com/imasse-dev/browser-ios/internal/profile"
	"github.com/imasse-dev/browser-ios/internal/pushclient"
	"github.com/imasse-dev/browser-ios/internal/telegram"
	"github.com/imasse-dev/browser-ios/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, cfgMutex, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("loadConfig error: %v", err)
	}

	logg := logger.New(logger.FromConfig(cfg.Log.Level, cfg.Log.Format))

	var sink notify.Sink
	if cfg.Main.TelegramToken != "" && cfg.Main.TelegramChatID != 0 {
		bot, err := telegram.InitTelegram(cfg)
		if err != nil {
			logg.Error("telegram init failed", "error", err)
			os.Exit(1)
		}
		sink = telegram.NewSink(bot, cfg.Main.TelegramChatID)
		logg.Info("presenting notifications via telegram")
	} else {
		sink = &notify.LogSink{Log: logg}
		logg.Info("no telegram chat configured, presenting notifications to the log")
	}

	profilePath := cfg.Profile.Path
	openProfile := func() (profile.Profile, error) {
		store, err := profile.Open(profilePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	coordinator := usecase.New(
		decoder.NewCommandDecoder(),
		openProfile,
		sink,
		cfg.Notify.Mode,
		time.Duration(cfg.Notify.DeadlineSeconds)*time.Second,
		logg,
	)

	client := pushclient.New(cfg, cfgMutex, func() error {
		return config.SaveConfig(*configPath, cfg)
	}, coordinator, logg)
	client.Start()

	handler := delivery.NewPushHandler(coordinator, logg)
	delivery.StartWebServer(handler, cfg.Main.ListenPort)
}
