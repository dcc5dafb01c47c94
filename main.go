package main

import (
	"context"
	"flag"
	"log/slog"

	"FoodScout/bot"
	"FoodScout/bot/dialog"
	"FoodScout/bot/dialog/restaurant"
	"FoodScout/bot/dialog/weather"
	"FoodScout/impl/core"
	"FoodScout/internal/config"
	repository "FoodScout/internal/database"
	"FoodScout/internal/http-server/api"
	"FoodScout/internal/lib/logger"
	"FoodScout/internal/lib/sl"
	"FoodScout/internal/service/yelp"
	"FoodScout/internal/ws"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	lg.Info("starting foodscout", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	handler := core.New(lg)
	handler.SetAuthKey(conf.Listen.ApiKey)

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}
	if db != nil {
		handler.SetRepository(db)
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	}

	hub := ws.NewHub(lg)
	go hub.Run()
	handler.SetHub(hub)

	engine := dialog.NewEngine(lg)

	yelpService := yelp.NewService(conf, lg)
	if yelpService != nil {
		engine.Register(restaurant.New(yelpService, lg))
		lg.With(
			sl.Secret("api_key", conf.Yelp.ApiKey),
			slog.String("url", conf.Yelp.BaseURL),
		).Info("yelp service initialized")
	} else {
		lg.Warn("yelp api key missing, restaurant dialog disabled")
	}
	engine.Register(weather.New())

	handler.SetEngine(engine)
	go engine.Run(context.Background(), conf.Dialog.SweepInterval, conf.Dialog.SessionTimeout)

	if conf.Telegram.Enabled {
		userBot, err := bot.NewUserBot(conf.Telegram.BotName, conf.Telegram.ApiKey, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			userBot.SetEngine(engine)
			userBot.SetTranscriptListener(handler)
			handler.SetInjector(userBot)

			go func() {
				if err := userBot.Start(); err != nil {
					lg.Error("telegram bot error", sl.Err(err))
				}
			}()
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")
		}
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
